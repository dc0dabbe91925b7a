package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListingCache caches the dashboard listings (vehicles, drivers, active
// trips) in Redis. Mutating operations call InvalidateListings after a
// successful commit, which is the refresh signal for every downstream view.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache creates a new ListingCache.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Cache TTL constants
const (
	VehicleListTTL    = 30 * time.Second // registry changes rarely between mutations
	DriverListTTL     = 30 * time.Second
	ActiveTripListTTL = 10 * time.Second // dispatch/complete churn is highest here
)

// Listing keys
const (
	vehicleListKey    = "listing:vehicles"
	driverListKey     = "listing:drivers"
	activeTripListKey = "listing:trips:active"
)

// CachedVehicle represents a vehicle row in a cached listing.
type CachedVehicle struct {
	ID              string  `json:"id"`
	Model           string  `json:"model"`
	LicensePlate    string  `json:"license_plate"`
	MaxCapacity     float64 `json:"max_capacity"`
	Odometer        float64 `json:"odometer"`
	AcquisitionCost float64 `json:"acquisition_cost"`
	Status          string  `json:"status"`
}

// CachedDriver represents a driver row in a cached listing.
type CachedDriver struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LicenseExpiry string `json:"license_expiry"`
	SafetyScore   int    `json:"safety_score"`
	Status        string `json:"status"`
}

// CachedActiveTrip represents an active trip row in a cached listing.
type CachedActiveTrip struct {
	ID              string  `json:"id"`
	VehicleID       string  `json:"vehicle_id"`
	DriverID        string  `json:"driver_id"`
	VehiclePlate    string  `json:"vehicle_plate"`
	VehicleOdometer float64 `json:"vehicle_odometer"`
	DriverName      string  `json:"driver_name"`
	CargoWeight     float64 `json:"cargo_weight"`
	DispatchedAt    string  `json:"dispatched_at"`
}

// GetVehicles retrieves the cached vehicle listing. Returns nil on a miss.
func (c *ListingCache) GetVehicles(ctx context.Context) ([]CachedVehicle, error) {
	var vehicles []CachedVehicle
	ok, err := c.get(ctx, vehicleListKey, &vehicles)
	if err != nil || !ok {
		return nil, err
	}
	return vehicles, nil
}

// SetVehicles stores the vehicle listing.
func (c *ListingCache) SetVehicles(ctx context.Context, vehicles []CachedVehicle) error {
	return c.set(ctx, vehicleListKey, vehicles, VehicleListTTL)
}

// GetDrivers retrieves the cached driver listing. Returns nil on a miss.
func (c *ListingCache) GetDrivers(ctx context.Context) ([]CachedDriver, error) {
	var drivers []CachedDriver
	ok, err := c.get(ctx, driverListKey, &drivers)
	if err != nil || !ok {
		return nil, err
	}
	return drivers, nil
}

// SetDrivers stores the driver listing.
func (c *ListingCache) SetDrivers(ctx context.Context, drivers []CachedDriver) error {
	return c.set(ctx, driverListKey, drivers, DriverListTTL)
}

// GetActiveTrips retrieves the cached active trip listing. Returns nil on a miss.
func (c *ListingCache) GetActiveTrips(ctx context.Context) ([]CachedActiveTrip, error) {
	var trips []CachedActiveTrip
	ok, err := c.get(ctx, activeTripListKey, &trips)
	if err != nil || !ok {
		return nil, err
	}
	return trips, nil
}

// SetActiveTrips stores the active trip listing.
func (c *ListingCache) SetActiveTrips(ctx context.Context, trips []CachedActiveTrip) error {
	return c.set(ctx, activeTripListKey, trips, ActiveTripListTTL)
}

// InvalidateListings drops every cached listing. Called after each committed
// state transition.
func (c *ListingCache) InvalidateListings(ctx context.Context) error {
	return c.client.Del(ctx, vehicleListKey, driverListKey, activeTripListKey).Err()
}

func (c *ListingCache) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ListingCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
