package service

import (
	"context"
	"errors"

	"fleetflow/internal/domain"
	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

// TripService closes out dispatched trips and serves trip queries.
type TripService struct {
	uow                 repository.UnitOfWork
	tripRepo            repository.TripRepository
	vehicleRepo         repository.VehicleRepository
	listingCache        redis.ListingCacheInterface
	notificationService *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	uow repository.UnitOfWork,
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	listingCache redis.ListingCacheInterface,
	notificationService *NotificationService,
) *TripService {
	return &TripService{
		uow:                 uow,
		tripRepo:            tripRepo,
		vehicleRepo:         vehicleRepo,
		listingCache:        listingCache,
		notificationService: notificationService,
	}
}

// CompleteRequest contains the parameters for completing a trip.
type CompleteRequest struct {
	TripID        string
	FinalOdometer float64
}

// Complete ends a dispatched trip: the trip becomes Completed, the vehicle
// returns to Available with the odometer advanced, and the driver goes
// OffDuty, all in one transaction. The final reading must strictly exceed
// the vehicle's current odometer.
func (s *TripService) Complete(ctx context.Context, req CompleteRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if !isFinitePositive(req.FinalOdometer) {
		return nil, ErrInvalidOdometer
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusDispatched {
		return nil, ErrTripAlreadyCompleted
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, trip.VehicleID)
	if err != nil {
		return nil, err
	}

	if req.FinalOdometer <= vehicle.Odometer {
		return nil, ErrOdometerRegression
	}

	err = s.uow.WithinTx(ctx, func(repos repository.Repositories) error {
		// Conditional on the trip still being Dispatched; a concurrent
		// completion aborts here instead of re-applying side effects.
		err := repos.Trips.Close(ctx, trip.ID)
		if errors.Is(err, repository.ErrConflict) {
			return ErrTripAlreadyCompleted
		}
		if err != nil {
			return err
		}

		// Conditional on odometer strictly increasing.
		err = repos.Vehicles.ReleaseFromTrip(ctx, trip.VehicleID, req.FinalOdometer)
		if errors.Is(err, repository.ErrConflict) {
			return ErrOdometerRegression
		}
		if err != nil {
			return err
		}

		return repos.Drivers.UpdateStatus(ctx, trip.DriverID, domain.DriverStatusOffDuty)
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	trip.Status = domain.TripStatusCompleted

	if s.listingCache != nil {
		_ = s.listingCache.InvalidateListings(ctx)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCompleted(ctx, trip, vehicle.LicensePlate, req.FinalOdometer)
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// GetAllTrips retrieves recent trips.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}

// GetActiveTrips retrieves dispatched trips with vehicle and driver joined,
// read through the listing cache.
func (s *TripService) GetActiveTrips(ctx context.Context) ([]*domain.ActiveTrip, error) {
	if s.listingCache != nil {
		cached, err := s.listingCache.GetActiveTrips(ctx)
		if err == nil && cached != nil {
			return activeTripsFromCache(cached), nil
		}
	}

	trips, err := s.tripRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.listingCache != nil {
		_ = s.listingCache.SetActiveTrips(ctx, activeTripsToCache(trips))
	}
	return trips, nil
}

func activeTripsToCache(trips []*domain.ActiveTrip) []redis.CachedActiveTrip {
	cached := make([]redis.CachedActiveTrip, 0, len(trips))
	for _, t := range trips {
		cached = append(cached, redis.CachedActiveTrip{
			ID:              t.ID,
			VehicleID:       t.VehicleID,
			DriverID:        t.DriverID,
			VehiclePlate:    t.VehiclePlate,
			VehicleOdometer: t.VehicleOdometer,
			DriverName:      t.DriverName,
			CargoWeight:     t.CargoWeight,
			DispatchedAt:    t.DispatchedAt.Format(timeFormat),
		})
	}
	return cached
}

func activeTripsFromCache(cached []redis.CachedActiveTrip) []*domain.ActiveTrip {
	trips := make([]*domain.ActiveTrip, 0, len(cached))
	for _, c := range cached {
		at := &domain.ActiveTrip{
			VehiclePlate:    c.VehiclePlate,
			VehicleOdometer: c.VehicleOdometer,
			DriverName:      c.DriverName,
		}
		at.ID = c.ID
		at.VehicleID = c.VehicleID
		at.DriverID = c.DriverID
		at.CargoWeight = c.CargoWeight
		at.Status = domain.TripStatusDispatched
		at.DispatchedAt = parseCachedTime(c.DispatchedAt)
		trips = append(trips, at)
	}
	return trips
}
