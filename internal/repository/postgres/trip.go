package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, vehicle_id, driver_id, cargo_weight, status, dispatched_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var completedAt sql.NullTime
	if !trip.CompletedAt.IsZero() {
		completedAt = sql.NullTime{Time: trip.CompletedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.VehicleID,
		trip.DriverID,
		trip.CargoWeight,
		trip.Status,
		trip.DispatchedAt,
		completedAt,
	)
	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, vehicle_id, driver_id, cargo_weight, status, dispatched_at, completed_at
		FROM trips WHERE id = $1
	`

	var trip domain.Trip
	var completedAt sql.NullTime

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.VehicleID,
		&trip.DriverID,
		&trip.CargoWeight,
		&trip.Status,
		&trip.DispatchedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if completedAt.Valid {
		trip.CompletedAt = completedAt.Time
	}
	return &trip, nil
}

// GetAll retrieves recent trips, newest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `
		SELECT id, vehicle_id, driver_id, cargo_weight, status, dispatched_at, completed_at
		FROM trips ORDER BY dispatched_at DESC LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		var completedAt sql.NullTime

		if err := rows.Scan(
			&trip.ID,
			&trip.VehicleID,
			&trip.DriverID,
			&trip.CargoWeight,
			&trip.Status,
			&trip.DispatchedAt,
			&completedAt,
		); err != nil {
			return nil, err
		}

		if completedAt.Valid {
			trip.CompletedAt = completedAt.Time
		}
		trips = append(trips, &trip)
	}
	return trips, rows.Err()
}

// GetActive retrieves all dispatched trips with vehicle and driver joined.
func (r *TripRepository) GetActive(ctx context.Context) ([]*domain.ActiveTrip, error) {
	query := `
		SELECT t.id, t.vehicle_id, t.driver_id, t.cargo_weight, t.status, t.dispatched_at,
		       v.license_plate, v.odometer, COALESCE(d.name, '')
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN drivers d ON d.id = t.driver_id
		WHERE t.status = $1
		ORDER BY t.dispatched_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, domain.TripStatusDispatched)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.ActiveTrip
	for rows.Next() {
		var at domain.ActiveTrip
		if err := rows.Scan(
			&at.ID,
			&at.VehicleID,
			&at.DriverID,
			&at.CargoWeight,
			&at.Status,
			&at.DispatchedAt,
			&at.VehiclePlate,
			&at.VehicleOdometer,
			&at.DriverName,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &at)
	}
	return trips, rows.Err()
}

// CountByStatus counts trips with the given status.
func (r *TripRepository) CountByStatus(ctx context.Context, status domain.TripStatus) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE status = $1`, status).Scan(&count)
	return count, err
}

// Close marks a dispatched trip as completed. Conditional on the trip still
// being Dispatched so a second completion cannot re-apply side effects.
func (r *TripRepository) Close(ctx context.Context, id string) error {
	query := `
		UPDATE trips SET status = $1, completed_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := r.q.ExecContext(ctx, query, domain.TripStatusCompleted, id, domain.TripStatusDispatched)
	if err != nil {
		return err
	}
	return conflictOnZeroRows(result)
}

// CargoDeliveredByVehicle sums completed-trip cargo per vehicle.
func (r *TripRepository) CargoDeliveredByVehicle(ctx context.Context) (map[string]float64, error) {
	query := `
		SELECT vehicle_id, COALESCE(SUM(cargo_weight), 0)
		FROM trips WHERE status = $1
		GROUP BY vehicle_id
	`

	rows, err := r.q.QueryContext(ctx, query, domain.TripStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var vehicleID string
		var cargo float64
		if err := rows.Scan(&vehicleID, &cargo); err != nil {
			return nil, err
		}
		totals[vehicleID] = cargo
	}
	return totals, rows.Err()
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
