package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, license_expiry, safety_score, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.LicenseExpiry,
		driver.SafetyScore,
		driver.Status,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT id, COALESCE(name, ''), license_expiry, safety_score, status FROM drivers WHERE id = $1`

	var driver domain.Driver
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&driver.LicenseExpiry,
		&driver.SafetyScore,
		&driver.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT id, COALESCE(name, ''), license_expiry, safety_score, status FROM drivers ORDER BY name`
	return r.queryMany(ctx, query)
}

// GetByStatus retrieves all drivers with the given status.
func (r *DriverRepository) GetByStatus(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	query := `SELECT id, COALESCE(name, ''), license_expiry, safety_score, status FROM drivers WHERE status = $1 ORDER BY name`
	return r.queryMany(ctx, query, status)
}

// UpdateStatus updates the status of a driver unconditionally.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	query := `UPDATE drivers SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkOnDuty sets the driver's status to OnDuty unless the driver is
// suspended. A suspension applied after the precondition read leaves zero
// rows affected and surfaces as ErrConflict.
func (r *DriverRepository) MarkOnDuty(ctx context.Context, id string) error {
	query := `UPDATE drivers SET status = $1 WHERE id = $2 AND status <> $3`

	result, err := r.q.ExecContext(ctx, query, domain.DriverStatusOnDuty, id, domain.DriverStatusSuspended)
	if err != nil {
		return err
	}
	return conflictOnZeroRows(result)
}

func (r *DriverRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Driver, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(
			&driver.ID,
			&driver.Name,
			&driver.LicenseExpiry,
			&driver.SafetyScore,
			&driver.Status,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}
	return drivers, rows.Err()
}

// Ensure DriverRepository implements repository.DriverRepository.
var _ repository.DriverRepository = (*DriverRepository)(nil)
