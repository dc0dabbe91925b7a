package tests

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// 2. TRIP COMPLETION EDGE CASES
// ──────────────────────────────────────────────

type tripFixture struct {
	vehicleRepo *MockVehicleRepository
	driverRepo  *MockDriverRepository
	tripRepo    *MockTripRepository
	uow         *MockUnitOfWork
	cache       *MockListingCache
	svc         *service.TripService
}

func newTripFixture() *tripFixture {
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	tripRepo := NewMockTripRepository()
	maintenanceRepo := NewMockMaintenanceRepository()
	uow := NewMockUnitOfWork(vehicleRepo, driverRepo, tripRepo, maintenanceRepo)
	cache := NewMockListingCache()

	return &tripFixture{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		tripRepo:    tripRepo,
		uow:         uow,
		cache:       cache,
		svc:         service.NewTripService(uow, tripRepo, vehicleRepo, cache, nil),
	}
}

// seedActiveTrip puts a dispatched trip with its OnTrip vehicle and OnDuty
// driver into the fixture.
func (f *tripFixture) seedActiveTrip() {
	f.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:           "vehicle-1",
		Model:        "Mercedes Actros",
		LicensePlate: "TRK-002",
		MaxCapacity:  18000,
		Odometer:     89000,
		Status:       domain.VehicleStatusOnTrip,
	})
	f.driverRepo.AddDriver(&domain.Driver{
		ID:            "driver-1",
		Name:          "James Okafor",
		LicenseExpiry: time.Now().AddDate(1, 0, 0),
		Status:        domain.DriverStatusOnDuty,
	})
	f.tripRepo.AddTrip(&domain.Trip{
		ID:           "trip-1",
		VehicleID:    "vehicle-1",
		DriverID:     "driver-1",
		CargoWeight:  5000,
		Status:       domain.TripStatusDispatched,
		DispatchedAt: time.Now().Add(-2 * time.Hour),
	})
}

func TestComplete_Success(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()

	trip, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		TripID:        "trip-1",
		FinalOdometer: 89450,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.Status != domain.TripStatusCompleted {
		t.Errorf("expected trip %s, got %s", domain.TripStatusCompleted, trip.Status)
	}

	vehicle := f.vehicleRepo.GetVehicle("vehicle-1")
	if vehicle.Status != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle Available, got %s", vehicle.Status)
	}
	if vehicle.Odometer != 89450 {
		t.Errorf("expected odometer 89450, got %f", vehicle.Odometer)
	}

	if got := f.driverRepo.GetDriver("driver-1").Status; got != domain.DriverStatusOffDuty {
		t.Errorf("expected driver OffDuty, got %s", got)
	}

	if f.tripRepo.GetTrip("trip-1").CompletedAt.IsZero() {
		t.Error("expected CompletedAt set")
	}

	if f.cache.InvalidateCallCount == 0 {
		t.Error("expected listing cache invalidation")
	}
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()

	if _, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		TripID:        "trip-1",
		FinalOdometer: 89450,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second completion must be rejected, not re-applied.
	_, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		TripID:        "trip-1",
		FinalOdometer: 89500,
	})
	if !errors.Is(err, service.ErrTripAlreadyCompleted) {
		t.Fatalf("expected ErrTripAlreadyCompleted, got %v", err)
	}

	// Odometer untouched by the rejected retry.
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Odometer; got != 89450 {
		t.Errorf("expected odometer 89450, got %f", got)
	}
}

func TestComplete_OdometerMustIncrease(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()

	// Equal to the current reading is a regression too.
	for _, reading := range []float64{89000, 88000} {
		_, err := f.svc.Complete(context.Background(), service.CompleteRequest{
			TripID:        "trip-1",
			FinalOdometer: reading,
		})
		if !errors.Is(err, service.ErrOdometerRegression) {
			t.Errorf("reading %f: expected ErrOdometerRegression, got %v", reading, err)
		}
	}

	if got := f.tripRepo.GetTrip("trip-1").Status; got != domain.TripStatusDispatched {
		t.Errorf("trip must stay Dispatched, got %s", got)
	}
}

func TestComplete_InvalidInput(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()

	if _, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		FinalOdometer: 90000,
	}); !errors.Is(err, service.ErrInvalidTripID) {
		t.Errorf("expected ErrInvalidTripID, got %v", err)
	}

	for _, reading := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := f.svc.Complete(context.Background(), service.CompleteRequest{
			TripID:        "trip-1",
			FinalOdometer: reading,
		})
		if !errors.Is(err, service.ErrInvalidOdometer) {
			t.Errorf("reading %f: expected ErrInvalidOdometer, got %v", reading, err)
		}
	}
}

func TestComplete_UnknownTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture()

	_, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		TripID:        "missing",
		FinalOdometer: 100,
	})
	if err == nil {
		t.Fatal("expected error for unknown trip")
	}
}

func TestComplete_ConcurrentCompletion_RollsBack(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()
	f.tripRepo.CloseError = repository.ErrConflict

	_, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		TripID:        "trip-1",
		FinalOdometer: 89450,
	})
	if !errors.Is(err, service.ErrTripAlreadyCompleted) {
		t.Fatalf("expected ErrTripAlreadyCompleted, got %v", err)
	}

	if f.uow.RollbackCount != 1 {
		t.Errorf("expected 1 rollback, got %d", f.uow.RollbackCount)
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Status; got != domain.VehicleStatusOnTrip {
		t.Errorf("vehicle must stay OnTrip, got %s", got)
	}
}

func TestComplete_InfrastructureFailure_WrapsTransactionError(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()
	f.driverRepo.UpdateStatusError = ErrMockTimeout

	_, err := f.svc.Complete(context.Background(), service.CompleteRequest{
		TripID:        "trip-1",
		FinalOdometer: 89450,
	})
	if !errors.Is(err, service.ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}

	// Partial effects inside the transaction were rolled back.
	if got := f.tripRepo.GetTrip("trip-1").Status; got != domain.TripStatusDispatched {
		t.Errorf("trip must roll back to Dispatched, got %s", got)
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Odometer; got != 89000 {
		t.Errorf("odometer must roll back to 89000, got %f", got)
	}
}

// ──────────────────────────────────────────────
// 3. ACTIVE TRIP LISTING CACHE
// ──────────────────────────────────────────────

func TestGetActiveTrips_PopulatesAndReadsCache(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.seedActiveTrip()

	first, err := f.svc.GetActiveTrips(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 active trip, got %d", len(first))
	}

	// Mutate the repository behind the cache; the cached listing still serves.
	f.tripRepo.AddTrip(&domain.Trip{
		ID:           "trip-2",
		VehicleID:    "vehicle-1",
		DriverID:     "driver-1",
		Status:       domain.TripStatusDispatched,
		DispatchedAt: time.Now(),
	})

	second, err := f.svc.GetActiveTrips(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 {
		t.Errorf("expected cached listing of 1 trip, got %d", len(second))
	}

	// Invalidation drops back to the repository.
	if err := f.cache.InvalidateListings(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, err := f.svc.GetActiveTrips(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(third) != 2 {
		t.Errorf("expected 2 active trips after invalidation, got %d", len(third))
	}
}
