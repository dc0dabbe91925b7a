package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByPlate retrieves a vehicle by license plate.
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// GetByStatus retrieves all vehicles with the given status.
	GetByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error)

	// UpdateStatusFrom sets the vehicle's status to "to" only if it is
	// currently "from". Returns ErrConflict if the status has changed.
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error

	// ReleaseFromTrip frees a vehicle at trip completion: status back to
	// Available and the odometer advanced, conditional on the vehicle being
	// OnTrip and the new reading strictly greater than the stored one.
	// Returns ErrConflict if either condition no longer holds.
	ReleaseFromTrip(ctx context.Context, id string, finalOdometer float64) error
}
