package postgres

import (
	"context"
	"database/sql"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// MaintenanceRepository is a PostgreSQL implementation of repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

// NewMaintenanceRepositoryWithTx creates a maintenance repository using a transaction.
func NewMaintenanceRepositoryWithTx(tx *sql.Tx) *MaintenanceRepository {
	return &MaintenanceRepository{q: tx}
}

// Create appends a new cost log.
func (r *MaintenanceRepository) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	query := `
		INSERT INTO maintenance_logs (id, vehicle_id, type, cost, logged_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query,
		log.ID,
		log.VehicleID,
		log.Type,
		log.Cost,
		log.LoggedAt,
	)
	return err
}

// Recent retrieves the most recent logs of the given type with the vehicle
// plate joined, newest first.
func (r *MaintenanceRepository) Recent(ctx context.Context, logType domain.LogType, limit int) ([]*domain.MaintenanceEntry, error) {
	query := `
		SELECT m.id, m.vehicle_id, m.type, m.cost, m.logged_at, v.license_plate
		FROM maintenance_logs m
		JOIN vehicles v ON v.id = m.vehicle_id
		WHERE m.type = $1
		ORDER BY m.logged_at DESC
		LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, logType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.MaintenanceEntry
	for rows.Next() {
		var e domain.MaintenanceEntry
		if err := rows.Scan(
			&e.ID,
			&e.VehicleID,
			&e.Type,
			&e.Cost,
			&e.LoggedAt,
			&e.VehiclePlate,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// CostByVehicle sums log costs of the given type per vehicle.
func (r *MaintenanceRepository) CostByVehicle(ctx context.Context, logType domain.LogType) (map[string]float64, error) {
	query := `
		SELECT vehicle_id, COALESCE(SUM(cost), 0)
		FROM maintenance_logs WHERE type = $1
		GROUP BY vehicle_id
	`

	rows, err := r.q.QueryContext(ctx, query, logType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var vehicleID string
		var cost float64
		if err := rows.Scan(&vehicleID, &cost); err != nil {
			return nil, err
		}
		totals[vehicleID] = cost
	}
	return totals, rows.Err()
}

// Ensure MaintenanceRepository implements repository.MaintenanceRepository.
var _ repository.MaintenanceRepository = (*MaintenanceRepository)(nil)
