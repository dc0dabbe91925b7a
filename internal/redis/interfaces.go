package redis

import (
	"context"
	"time"
)

// ListingCacheInterface defines the interface for listing cache operations.
type ListingCacheInterface interface {
	GetVehicles(ctx context.Context) ([]CachedVehicle, error)
	SetVehicles(ctx context.Context, vehicles []CachedVehicle) error
	GetDrivers(ctx context.Context) ([]CachedDriver, error)
	SetDrivers(ctx context.Context, drivers []CachedDriver) error
	GetActiveTrips(ctx context.Context) ([]CachedActiveTrip, error)
	SetActiveTrips(ctx context.Context, trips []CachedActiveTrip) error
	InvalidateListings(ctx context.Context) error
}

// LockStoreInterface defines the interface for dispatch locking.
type LockStoreInterface interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ ListingCacheInterface = (*ListingCache)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
)
