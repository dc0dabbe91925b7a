package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount           int32
	UpdateStatusFromCallCount int32
	ReleaseFromTripCallCount  int32

	// Error injection
	CreateError           error
	UpdateStatusFromError error
	ReleaseFromTripError  error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.LicensePlate == plate {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LicensePlate < result[j].LicensePlate })
	return result, nil
}

func (m *MockVehicleRepository) GetByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0)
	for _, v := range m.vehicles {
		if v.Status == status {
			copy := *v
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error {
	atomic.AddInt32(&m.UpdateStatusFromCallCount, 1)
	if m.UpdateStatusFromError != nil {
		return m.UpdateStatusFromError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrConflict
	}
	if vehicle.Status != from {
		return repository.ErrConflict
	}
	vehicle.Status = to
	return nil
}

func (m *MockVehicleRepository) ReleaseFromTrip(ctx context.Context, id string, finalOdometer float64) error {
	atomic.AddInt32(&m.ReleaseFromTripCallCount, 1)
	if m.ReleaseFromTripError != nil {
		return m.ReleaseFromTripError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrConflict
	}
	if vehicle.Status != domain.VehicleStatusOnTrip || vehicle.Odometer >= finalOdometer {
		return repository.ErrConflict
	}
	vehicle.Status = domain.VehicleStatusAvailable
	vehicle.Odometer = finalOdometer
	return nil
}

// GetVehicle returns the vehicle by ID for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

func (m *MockVehicleRepository) snapshot() map[string]*domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.Vehicle, len(m.vehicles))
	for id, v := range m.vehicles {
		copy := *v
		snap[id] = &copy
	}
	return snap
}

func (m *MockVehicleRepository) restore(snap map[string]*domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = snap
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32
	MarkOnDutyCallCount   int32

	// Error injection
	CreateError       error
	UpdateStatusError error
	MarkOnDutyError   error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) GetByStatus(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0)
	for _, d := range m.drivers {
		if d.Status == status {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Status = status
	return nil
}

func (m *MockDriverRepository) MarkOnDuty(ctx context.Context, id string) error {
	atomic.AddInt32(&m.MarkOnDutyCallCount, 1)
	if m.MarkOnDutyError != nil {
		return m.MarkOnDutyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrConflict
	}
	if driver.Status == domain.DriverStatusSuspended {
		return repository.ErrConflict
	}
	driver.Status = domain.DriverStatusOnDuty
	return nil
}

// GetDriver returns the driver by ID for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

func (m *MockDriverRepository) snapshot() map[string]*domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.Driver, len(m.drivers))
	for id, d := range m.drivers {
		copy := *d
		snap[id] = &copy
	}
	return snap
}

func (m *MockDriverRepository) restore(snap map[string]*domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = snap
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	CloseCallCount  int32

	// Error injection
	CreateError error
	CloseError  error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DispatchedAt.After(result[j].DispatchedAt) })
	return result, nil
}

func (m *MockTripRepository) GetActive(ctx context.Context) ([]*domain.ActiveTrip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.ActiveTrip, 0)
	for _, t := range m.trips {
		if t.Status == domain.TripStatusDispatched {
			at := &domain.ActiveTrip{Trip: *t}
			result = append(result, at)
		}
	}
	return result, nil
}

func (m *MockTripRepository) CountByStatus(ctx context.Context, status domain.TripStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, t := range m.trips {
		if t.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MockTripRepository) Close(ctx context.Context, id string) error {
	atomic.AddInt32(&m.CloseCallCount, 1)
	if m.CloseError != nil {
		return m.CloseError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrConflict
	}
	if trip.Status != domain.TripStatusDispatched {
		return repository.ErrConflict
	}
	trip.Status = domain.TripStatusCompleted
	trip.CompletedAt = time.Now()
	return nil
}

func (m *MockTripRepository) CargoDeliveredByVehicle(ctx context.Context) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cargo := make(map[string]float64)
	for _, t := range m.trips {
		if t.Status == domain.TripStatusCompleted {
			cargo[t.VehicleID] += t.CargoWeight
		}
	}
	return cargo, nil
}

// GetTrip returns the trip by ID for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func (m *MockTripRepository) snapshot() map[string]*domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]*domain.Trip, len(m.trips))
	for id, t := range m.trips {
		copy := *t
		snap[id] = &copy
	}
	return snap
}

func (m *MockTripRepository) restore(snap map[string]*domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips = snap
}

// ──────────────────────────────────────────────
// MOCK MAINTENANCE REPOSITORY
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu   sync.RWMutex
	logs []*domain.MaintenanceLog

	// Plates for the Recent join, keyed by vehicle ID.
	plates map[string]string

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{
		plates: make(map[string]string),
	}
}

// SetPlate registers the plate returned by the Recent join for a vehicle.
func (m *MockMaintenanceRepository) SetPlate(vehicleID, plate string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plates[vehicleID] = plate
}

// AddLog adds a log to the mock repository.
func (m *MockMaintenanceRepository) AddLog(log *domain.MaintenanceLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockMaintenanceRepository) Recent(ctx context.Context, logType domain.LogType, limit int) ([]*domain.MaintenanceEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	filtered := make([]*domain.MaintenanceLog, 0)
	for _, l := range m.logs {
		if l.Type == logType {
			filtered = append(filtered, l)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].LoggedAt.After(filtered[j].LoggedAt) })
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	result := make([]*domain.MaintenanceEntry, 0, len(filtered))
	for _, l := range filtered {
		result = append(result, &domain.MaintenanceEntry{
			MaintenanceLog: *l,
			VehiclePlate:   m.plates[l.VehicleID],
		})
	}
	return result, nil
}

func (m *MockMaintenanceRepository) CostByVehicle(ctx context.Context, logType domain.LogType) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	costs := make(map[string]float64)
	for _, l := range m.logs {
		if l.Type == logType {
			costs[l.VehicleID] += l.Cost
		}
	}
	return costs, nil
}

// CountLogs returns the number of logs for test assertions.
func (m *MockMaintenanceRepository) CountLogs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.logs)
}

func (m *MockMaintenanceRepository) snapshot() []*domain.MaintenanceLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make([]*domain.MaintenanceLog, 0, len(m.logs))
	for _, l := range m.logs {
		copy := *l
		snap = append(snap, &copy)
	}
	return snap
}

func (m *MockMaintenanceRepository) restore(snap []*domain.MaintenanceLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = snap
}

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWork runs the closure against the mock repositories. On error it
// restores every repository to its pre-closure state so rollback semantics
// can be asserted in tests.
type MockUnitOfWork struct {
	Vehicles    *MockVehicleRepository
	Drivers     *MockDriverRepository
	Trips       *MockTripRepository
	Maintenance *MockMaintenanceRepository

	// Counters for verification
	WithinTxCallCount int32
	RollbackCount     int32

	// Error injection
	BeginError error
}

// NewMockUnitOfWork creates a mock unit of work over the given mocks.
func NewMockUnitOfWork(
	vehicles *MockVehicleRepository,
	drivers *MockDriverRepository,
	trips *MockTripRepository,
	maintenance *MockMaintenanceRepository,
) *MockUnitOfWork {
	return &MockUnitOfWork{
		Vehicles:    vehicles,
		Drivers:     drivers,
		Trips:       trips,
		Maintenance: maintenance,
	}
}

func (m *MockUnitOfWork) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	atomic.AddInt32(&m.WithinTxCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}

	vehicleSnap := m.Vehicles.snapshot()
	driverSnap := m.Drivers.snapshot()
	tripSnap := m.Trips.snapshot()
	maintenanceSnap := m.Maintenance.snapshot()

	err := fn(repository.Repositories{
		Vehicles:    m.Vehicles,
		Drivers:     m.Drivers,
		Trips:       m.Trips,
		Maintenance: m.Maintenance,
	})
	if err != nil {
		m.Vehicles.restore(vehicleSnap)
		m.Drivers.restore(driverSnap)
		m.Trips.restore(tripSnap)
		m.Maintenance.restore(maintenanceSnap)
		atomic.AddInt32(&m.RollbackCount, 1)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of the dispatch lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:vehicle:" + vehicleID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:vehicle:"+vehicleID)
	return nil
}

// IsLocked checks whether a vehicle lock is held (for test assertions).
func (m *MockLockStore) IsLocked(vehicleID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:vehicle:"+vehicleID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK LISTING CACHE
// ──────────────────────────────────────────────

// MockListingCache is a mock implementation of the listing cache. Unset
// listings return nil so services fall through to the repository.
type MockListingCache struct {
	mu          sync.RWMutex
	vehicles    []redis.CachedVehicle
	drivers     []redis.CachedDriver
	activeTrips []redis.CachedActiveTrip

	// Counters for verification
	InvalidateCallCount int32

	// Error injection
	GetError error
}

// NewMockListingCache creates a new mock listing cache.
func NewMockListingCache() *MockListingCache {
	return &MockListingCache{}
}

func (m *MockListingCache) GetVehicles(ctx context.Context) ([]redis.CachedVehicle, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles, nil
}

func (m *MockListingCache) SetVehicles(ctx context.Context, vehicles []redis.CachedVehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = vehicles
	return nil
}

func (m *MockListingCache) GetDrivers(ctx context.Context) ([]redis.CachedDriver, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers, nil
}

func (m *MockListingCache) SetDrivers(ctx context.Context, drivers []redis.CachedDriver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = drivers
	return nil
}

func (m *MockListingCache) GetActiveTrips(ctx context.Context) ([]redis.CachedActiveTrip, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeTrips, nil
}

func (m *MockListingCache) SetActiveTrips(ctx context.Context, trips []redis.CachedActiveTrip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeTrips = trips
	return nil
}

func (m *MockListingCache) InvalidateListings(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = nil
	m.drivers = nil
	m.activeTrips = nil
	return nil
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
