package service

import (
	"context"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

// timeFormat is the wire format for timestamps in cached listings and responses.
const timeFormat = time.RFC3339

// FleetService serves vehicle and driver listings, read through the Redis
// listing cache when no status filter narrows the result.
type FleetService struct {
	vehicleRepo  repository.VehicleRepository
	driverRepo   repository.DriverRepository
	listingCache redis.ListingCacheInterface
}

// NewFleetService creates a new FleetService.
func NewFleetService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	listingCache redis.ListingCacheInterface,
) *FleetService {
	return &FleetService{
		vehicleRepo:  vehicleRepo,
		driverRepo:   driverRepo,
		listingCache: listingCache,
	}
}

// ListVehicles retrieves vehicles, optionally filtered by status. Only the
// unfiltered listing is cached.
func (s *FleetService) ListVehicles(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	if status != "" {
		return s.vehicleRepo.GetByStatus(ctx, status)
	}

	if s.listingCache != nil {
		cached, err := s.listingCache.GetVehicles(ctx)
		if err == nil && cached != nil {
			return vehiclesFromCache(cached), nil
		}
	}

	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.listingCache != nil {
		_ = s.listingCache.SetVehicles(ctx, vehiclesToCache(vehicles))
	}
	return vehicles, nil
}

// ListDrivers retrieves drivers, optionally filtered by status. Only the
// unfiltered listing is cached.
func (s *FleetService) ListDrivers(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	if status != "" {
		return s.driverRepo.GetByStatus(ctx, status)
	}

	if s.listingCache != nil {
		cached, err := s.listingCache.GetDrivers(ctx)
		if err == nil && cached != nil {
			return driversFromCache(cached), nil
		}
	}

	drivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.listingCache != nil {
		_ = s.listingCache.SetDrivers(ctx, driversToCache(drivers))
	}
	return drivers, nil
}

func vehiclesToCache(vehicles []*domain.Vehicle) []redis.CachedVehicle {
	cached := make([]redis.CachedVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		cached = append(cached, redis.CachedVehicle{
			ID:              v.ID,
			Model:           v.Model,
			LicensePlate:    v.LicensePlate,
			MaxCapacity:     v.MaxCapacity,
			Odometer:        v.Odometer,
			AcquisitionCost: v.AcquisitionCost,
			Status:          string(v.Status),
		})
	}
	return cached
}

func vehiclesFromCache(cached []redis.CachedVehicle) []*domain.Vehicle {
	vehicles := make([]*domain.Vehicle, 0, len(cached))
	for _, c := range cached {
		vehicles = append(vehicles, &domain.Vehicle{
			ID:              c.ID,
			Model:           c.Model,
			LicensePlate:    c.LicensePlate,
			MaxCapacity:     c.MaxCapacity,
			Odometer:        c.Odometer,
			AcquisitionCost: c.AcquisitionCost,
			Status:          domain.VehicleStatus(c.Status),
		})
	}
	return vehicles
}

func driversToCache(drivers []*domain.Driver) []redis.CachedDriver {
	cached := make([]redis.CachedDriver, 0, len(drivers))
	for _, d := range drivers {
		cached = append(cached, redis.CachedDriver{
			ID:            d.ID,
			Name:          d.Name,
			LicenseExpiry: d.LicenseExpiry.Format(timeFormat),
			SafetyScore:   d.SafetyScore,
			Status:        string(d.Status),
		})
	}
	return cached
}

func driversFromCache(cached []redis.CachedDriver) []*domain.Driver {
	drivers := make([]*domain.Driver, 0, len(cached))
	for _, c := range cached {
		drivers = append(drivers, &domain.Driver{
			ID:            c.ID,
			Name:          c.Name,
			LicenseExpiry: parseCachedTime(c.LicenseExpiry),
			SafetyScore:   c.SafetyScore,
			Status:        domain.DriverStatus(c.Status),
		})
	}
	return drivers
}

// parseCachedTime decodes a cached timestamp; a zero time on malformed input
// is acceptable for display listings.
func parseCachedTime(s string) time.Time {
	t, _ := time.Parse(timeFormat, s)
	return t
}
