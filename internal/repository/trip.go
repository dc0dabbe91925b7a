package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves recent trips, newest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetActive retrieves all dispatched trips joined with their vehicle
	// plate, vehicle odometer, and driver name.
	GetActive(ctx context.Context) ([]*domain.ActiveTrip, error)

	// CountByStatus counts trips with the given status.
	CountByStatus(ctx context.Context, status domain.TripStatus) (int, error)

	// Close marks a dispatched trip as completed. The write is conditional on
	// the trip still being Dispatched; returns ErrConflict otherwise.
	Close(ctx context.Context, id string) error

	// CargoDeliveredByVehicle sums the cargo weight of completed trips,
	// grouped by vehicle ID.
	CargoDeliveredByVehicle(ctx context.Context) (map[string]float64, error)
}
