package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusDispatched TripStatus = "Dispatched"
	TripStatusCompleted  TripStatus = "Completed"
)

// tripTransitions is the closed set of allowed trip status changes.
// Completed is terminal; there is no cancellation transition.
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusDispatched: {TripStatusCompleted},
	TripStatusCompleted:  {},
}

// CanTransition reports whether moving from s to the given status is allowed.
func (s TripStatus) CanTransition(to TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Trip represents a cargo trip assigned to one vehicle and one driver.
type Trip struct {
	ID           string
	VehicleID    string
	DriverID     string
	CargoWeight  float64 // kg
	Status       TripStatus
	DispatchedAt time.Time
	CompletedAt  time.Time
}

// ActiveTrip is a dispatched trip joined with the vehicle and driver fields
// the dashboard shows alongside it.
type ActiveTrip struct {
	Trip
	VehiclePlate    string
	VehicleOdometer float64
	DriverName      string
}
