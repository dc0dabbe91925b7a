package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusOffDuty   DriverStatus = "OffDuty"
	DriverStatusOnDuty    DriverStatus = "OnDuty"
	DriverStatusSuspended DriverStatus = "Suspended"
)

// driverTransitions is the closed set of allowed driver status changes.
// Suspended is terminal here: suspensions are imposed by fleet management
// outside the trip lifecycle, never produced by dispatch or completion.
var driverTransitions = map[DriverStatus][]DriverStatus{
	DriverStatusOffDuty:   {DriverStatusOnDuty},
	DriverStatusOnDuty:    {DriverStatusOffDuty},
	DriverStatusSuspended: {},
}

// CanTransition reports whether moving from s to the given status is allowed.
func (s DriverStatus) CanTransition(to DriverStatus) bool {
	for _, allowed := range driverTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Driver represents a driver in the fleet.
type Driver struct {
	ID            string
	Name          string
	LicenseExpiry time.Time
	SafetyScore   int
	Status        DriverStatus
}

// LicenseValidAt reports whether the driver's license is unexpired at t.
func (d *Driver) LicenseValidAt(t time.Time) bool {
	return !d.LicenseExpiry.Before(t)
}
