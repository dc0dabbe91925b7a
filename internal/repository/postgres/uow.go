package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetflow/internal/repository"
)

// UnitOfWork runs closures inside a single database transaction, handing them
// transaction-scoped repositories so every write commits or rolls back as one
// unit.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a UnitOfWork backed by the given database.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithinTx begins a transaction, runs fn against repositories bound to it,
// and commits. Any error from fn rolls the transaction back and is returned
// unwrapped so business errors keep their identity.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := repository.Repositories{
		Vehicles:    NewVehicleRepositoryWithTx(tx),
		Drivers:     NewDriverRepositoryWithTx(tx),
		Trips:       NewTripRepositoryWithTx(tx),
		Maintenance: NewMaintenanceRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ensure UnitOfWork implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*UnitOfWork)(nil)
