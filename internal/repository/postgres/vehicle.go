package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, model, license_plate, max_capacity, odometer, acquisition_cost, status`

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, model, license_plate, max_capacity, odometer, acquisition_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Model,
		vehicle.LicensePlate,
		vehicle.MaxCapacity,
		vehicle.Odometer,
		vehicle.AcquisitionCost,
		vehicle.Status,
	)
	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByPlate retrieves a vehicle by license plate.
func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE license_plate = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, plate))
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY license_plate`
	return r.queryMany(ctx, query)
}

// GetByStatus retrieves all vehicles with the given status.
func (r *VehicleRepository) GetByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = $1 ORDER BY license_plate`
	return r.queryMany(ctx, query, status)
}

// UpdateStatusFrom sets the vehicle's status to "to" only if it is currently
// "from". The condition makes the write a compare-and-set: a concurrent
// transition since the precondition read leaves zero rows affected.
func (r *VehicleRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	return conflictOnZeroRows(result)
}

// ReleaseFromTrip frees a vehicle at trip completion. Conditional on the
// vehicle still being OnTrip and the odometer strictly increasing.
func (r *VehicleRepository) ReleaseFromTrip(ctx context.Context, id string, finalOdometer float64) error {
	query := `
		UPDATE vehicles SET status = $1, odometer = $2
		WHERE id = $3 AND status = $4 AND odometer < $2
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.VehicleStatusAvailable,
		finalOdometer,
		id,
		domain.VehicleStatusOnTrip,
	)
	if err != nil {
		return err
	}
	return conflictOnZeroRows(result)
}

func (r *VehicleRepository) scanOne(row *sql.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Model,
		&v.LicensePlate,
		&v.MaxCapacity,
		&v.Odometer,
		&v.AcquisitionCost,
		&v.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.Model,
			&v.LicensePlate,
			&v.MaxCapacity,
			&v.Odometer,
			&v.AcquisitionCost,
			&v.Status,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

// conflictOnZeroRows maps a no-op conditional update to ErrConflict.
func conflictOnZeroRows(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrConflict
	}
	return nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
