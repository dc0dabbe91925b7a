package domain

import "time"

// LogType distinguishes the two kinds of cost entries recorded against a vehicle.
type LogType string

const (
	LogTypeService LogType = "Service"
	LogTypeFuel    LogType = "Fuel"
)

// MaintenanceLog is an append-only cost record for a vehicle.
type MaintenanceLog struct {
	ID        string
	VehicleID string
	Type      LogType
	Cost      float64
	LoggedAt  time.Time
}

// MaintenanceEntry is a maintenance log joined with the vehicle's plate for
// the service-history listing.
type MaintenanceEntry struct {
	MaintenanceLog
	VehiclePlate string
}
