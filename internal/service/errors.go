package service

import "errors"

var (
	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidCargoWeight is returned when cargo weight is not a positive finite number.
	ErrInvalidCargoWeight = errors.New("invalid cargo weight")

	// ErrInvalidOdometer is returned when the odometer reading is not a positive finite number.
	ErrInvalidOdometer = errors.New("invalid odometer reading")

	// ErrInvalidCost is returned when a cost is not a positive finite number.
	ErrInvalidCost = errors.New("invalid cost")

	// ErrCapacityExceeded is returned when cargo weight exceeds the vehicle's max capacity.
	ErrCapacityExceeded = errors.New("cargo weight exceeds vehicle capacity")

	// ErrLicenseExpired is returned when the driver's license has expired.
	ErrLicenseExpired = errors.New("driver license expired")

	// ErrVehicleUnavailable is returned when the vehicle is not Available for dispatch.
	ErrVehicleUnavailable = errors.New("vehicle unavailable")

	// ErrDriverSuspended is returned when the driver is suspended.
	ErrDriverSuspended = errors.New("driver suspended")

	// ErrOdometerRegression is returned when the final odometer reading does not
	// strictly exceed the vehicle's current reading.
	ErrOdometerRegression = errors.New("odometer reading must increase")

	// ErrTripAlreadyCompleted is returned when completing a trip that is no longer dispatched.
	ErrTripAlreadyCompleted = errors.New("trip already completed")

	// ErrVehicleOnTrip is returned when logging maintenance against a vehicle
	// that is out on a dispatched trip.
	ErrVehicleOnTrip = errors.New("vehicle is on a trip")

	// ErrVehicleNotInShop is returned when returning a vehicle to service that is not in the shop.
	ErrVehicleNotInShop = errors.New("vehicle is not in the shop")

	// ErrInvalidUserRole is returned when a user role is not Manager or Dispatcher.
	ErrInvalidUserRole = errors.New("invalid user role")

	// ErrTransactionFailed is returned when the atomic commit could not be
	// applied. The persisted state is unchanged.
	ErrTransactionFailed = errors.New("transaction failed")
)

// businessErrors are the recoverable error kinds callers correct themselves.
var businessErrors = []error{
	ErrInvalidVehicleID,
	ErrInvalidDriverID,
	ErrInvalidTripID,
	ErrInvalidCargoWeight,
	ErrInvalidOdometer,
	ErrInvalidCost,
	ErrCapacityExceeded,
	ErrLicenseExpired,
	ErrVehicleUnavailable,
	ErrDriverSuspended,
	ErrOdometerRegression,
	ErrTripAlreadyCompleted,
	ErrVehicleOnTrip,
	ErrVehicleNotInShop,
	ErrInvalidUserRole,
}

// wrapTxErr passes business errors through untouched and wraps anything else
// (driver failures, broken connections, commit rejection) as ErrTransactionFailed.
func wrapTxErr(err error) error {
	if err == nil {
		return nil
	}
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return err
		}
	}
	return errors.Join(ErrTransactionFailed, err)
}
