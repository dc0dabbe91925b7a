package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/domain"
	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

// vehicleLockTTL bounds how long a dispatch holds the contention lock.
const vehicleLockTTL = 5 * time.Second

// DispatchService assigns a vehicle and driver to a new trip, enforcing
// capacity, compliance, and availability rules before the atomic effect.
type DispatchService struct {
	uow                 repository.UnitOfWork
	vehicleRepo         repository.VehicleRepository
	driverRepo          repository.DriverRepository
	lockStore           redis.LockStoreInterface
	listingCache        redis.ListingCacheInterface
	notificationService *NotificationService

	// now is swappable for tests of the license-expiry gate.
	now func() time.Time
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(
	uow repository.UnitOfWork,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	lockStore redis.LockStoreInterface,
	listingCache redis.ListingCacheInterface,
	notificationService *NotificationService,
) *DispatchService {
	return &DispatchService{
		uow:                 uow,
		vehicleRepo:         vehicleRepo,
		driverRepo:          driverRepo,
		lockStore:           lockStore,
		listingCache:        listingCache,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// DispatchRequest contains the parameters for dispatching a trip.
type DispatchRequest struct {
	VehicleID   string
	DriverID    string
	CargoWeight float64
}

// Dispatch validates the request against the fleet's business rules and, if
// every precondition holds, atomically creates the trip, puts the vehicle
// OnTrip, and puts the driver OnDuty. Preconditions are evaluated in order;
// the first failure wins and nothing is written.
func (s *DispatchService) Dispatch(ctx context.Context, req DispatchRequest) (*domain.Trip, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !isFinitePositive(req.CargoWeight) {
		return nil, ErrInvalidCargoWeight
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	if req.CargoWeight > vehicle.MaxCapacity {
		return nil, ErrCapacityExceeded
	}

	if !driver.LicenseValidAt(s.now()) {
		return nil, ErrLicenseExpired
	}

	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, ErrVehicleUnavailable
	}

	if driver.Status == domain.DriverStatusSuspended {
		return nil, ErrDriverSuspended
	}

	// Shed concurrent dispatches of the same vehicle before they contend on
	// the database. Losing the lock reads as the vehicle being taken.
	if s.lockStore != nil {
		acquired, err := s.lockStore.AcquireVehicleLock(ctx, req.VehicleID, vehicleLockTTL)
		if err == nil && !acquired {
			return nil, ErrVehicleUnavailable
		}
		if err == nil {
			defer func() {
				_ = s.lockStore.ReleaseVehicleLock(ctx, req.VehicleID)
			}()
		}
	}

	trip := &domain.Trip{
		ID:           uuid.New().String(),
		VehicleID:    req.VehicleID,
		DriverID:     req.DriverID,
		CargoWeight:  req.CargoWeight,
		Status:       domain.TripStatusDispatched,
		DispatchedAt: s.now(),
	}

	err = s.uow.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Trips.Create(ctx, trip); err != nil {
			return err
		}

		// Conditional writes re-validate the availability precondition inside
		// the transaction; a concurrent dispatch leaves zero rows and aborts.
		err := repos.Vehicles.UpdateStatusFrom(ctx, req.VehicleID,
			domain.VehicleStatusAvailable, domain.VehicleStatusOnTrip)
		if errors.Is(err, repository.ErrConflict) {
			return ErrVehicleUnavailable
		}
		if err != nil {
			return err
		}

		err = repos.Drivers.MarkOnDuty(ctx, req.DriverID)
		if errors.Is(err, repository.ErrConflict) {
			return ErrDriverSuspended
		}
		return err
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	if s.listingCache != nil {
		_ = s.listingCache.InvalidateListings(ctx)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripDispatched(ctx, trip, vehicle.LicensePlate, driver.Name)
	}

	return trip, nil
}

// isFinitePositive reports whether f is a usable positive quantity.
func isFinitePositive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
