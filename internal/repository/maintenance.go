package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// MaintenanceRepository defines the persistence operations for maintenance
// logs. Logs are append-only; there are no update or delete operations.
type MaintenanceRepository interface {
	// Create appends a new cost log.
	Create(ctx context.Context, log *domain.MaintenanceLog) error

	// Recent retrieves the most recent logs of the given type, newest first,
	// joined with the vehicle's license plate.
	Recent(ctx context.Context, logType domain.LogType, limit int) ([]*domain.MaintenanceEntry, error)

	// CostByVehicle sums the cost of logs of the given type, grouped by
	// vehicle ID.
	CostByVehicle(ctx context.Context, logType domain.LogType) (map[string]float64, error)
}
