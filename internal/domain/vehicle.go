package domain

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusOnTrip    VehicleStatus = "OnTrip"
	VehicleStatusInShop    VehicleStatus = "InShop"
)

// vehicleTransitions is the closed set of allowed vehicle status changes.
// OnTrip -> InShop is deliberately absent: a vehicle on a dispatched trip
// must complete the trip before it can be pulled into the shop.
var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehicleStatusAvailable: {VehicleStatusOnTrip, VehicleStatusInShop},
	VehicleStatusOnTrip:    {VehicleStatusAvailable},
	VehicleStatusInShop:    {VehicleStatusAvailable},
}

// CanTransition reports whether moving from s to the given status is allowed.
func (s VehicleStatus) CanTransition(to VehicleStatus) bool {
	for _, allowed := range vehicleTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID              string
	Model           string
	LicensePlate    string
	MaxCapacity     float64 // kg
	Odometer        float64 // km, never decreases
	AcquisitionCost float64
	Status          VehicleStatus
}
