package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// GetByStatus retrieves all drivers with the given status.
	GetByStatus(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error)

	// UpdateStatus updates the status of a driver unconditionally.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// MarkOnDuty sets the driver's status to OnDuty only if the driver is not
	// suspended. Returns ErrConflict if the driver is suspended.
	MarkOnDuty(ctx context.Context, id string) error
}
