package tests

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// 4. MAINTENANCE AND FUEL LOGGING
// ──────────────────────────────────────────────

type maintenanceFixture struct {
	vehicleRepo     *MockVehicleRepository
	maintenanceRepo *MockMaintenanceRepository
	uow             *MockUnitOfWork
	cache           *MockListingCache
	svc             *service.MaintenanceService
}

func newMaintenanceFixture() *maintenanceFixture {
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	tripRepo := NewMockTripRepository()
	maintenanceRepo := NewMockMaintenanceRepository()
	uow := NewMockUnitOfWork(vehicleRepo, driverRepo, tripRepo, maintenanceRepo)
	cache := NewMockListingCache()

	return &maintenanceFixture{
		vehicleRepo:     vehicleRepo,
		maintenanceRepo: maintenanceRepo,
		uow:             uow,
		cache:           cache,
		svc:             service.NewMaintenanceService(uow, vehicleRepo, maintenanceRepo, cache, nil),
	}
}

func (f *maintenanceFixture) addVehicle(id string, status domain.VehicleStatus) {
	f.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:           id,
		Model:        "Ford Transit",
		LicensePlate: "VAN-003",
		MaxCapacity:  1500,
		Odometer:     45000,
		Status:       status,
	})
}

func TestLogMaintenance_PullsVehicleIntoShop(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.addVehicle("vehicle-1", domain.VehicleStatusAvailable)

	log, err := f.svc.LogMaintenance(context.Background(), service.LogMaintenanceRequest{
		VehicleID: "vehicle-1",
		Cost:      450.75,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if log.Type != domain.LogTypeService {
		t.Errorf("expected Service log, got %s", log.Type)
	}
	if f.maintenanceRepo.CountLogs() != 1 {
		t.Errorf("expected 1 log, got %d", f.maintenanceRepo.CountLogs())
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Status; got != domain.VehicleStatusInShop {
		t.Errorf("expected vehicle InShop, got %s", got)
	}
	if f.cache.InvalidateCallCount == 0 {
		t.Error("expected listing cache invalidation")
	}
}

func TestLogMaintenance_VehicleOnTripRejected(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.addVehicle("vehicle-1", domain.VehicleStatusOnTrip)

	_, err := f.svc.LogMaintenance(context.Background(), service.LogMaintenanceRequest{
		VehicleID: "vehicle-1",
		Cost:      100,
	})
	if !errors.Is(err, service.ErrVehicleOnTrip) {
		t.Fatalf("expected ErrVehicleOnTrip, got %v", err)
	}

	if f.maintenanceRepo.CountLogs() != 0 {
		t.Errorf("expected no logs, got %d", f.maintenanceRepo.CountLogs())
	}
}

func TestLogMaintenance_AlreadyInShopJustLogs(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.addVehicle("vehicle-1", domain.VehicleStatusInShop)

	if _, err := f.svc.LogMaintenance(context.Background(), service.LogMaintenanceRequest{
		VehicleID: "vehicle-1",
		Cost:      200,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.maintenanceRepo.CountLogs() != 1 {
		t.Errorf("expected 1 log, got %d", f.maintenanceRepo.CountLogs())
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Status; got != domain.VehicleStatusInShop {
		t.Errorf("expected vehicle still InShop, got %s", got)
	}
}

func TestLogMaintenance_InvalidCost(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.addVehicle("vehicle-1", domain.VehicleStatusAvailable)

	for _, cost := range []float64{0, -10, math.NaN(), math.Inf(-1)} {
		_, err := f.svc.LogMaintenance(context.Background(), service.LogMaintenanceRequest{
			VehicleID: "vehicle-1",
			Cost:      cost,
		})
		if !errors.Is(err, service.ErrInvalidCost) {
			t.Errorf("cost %f: expected ErrInvalidCost, got %v", cost, err)
		}
	}
}

func TestLogFuel_NoStatusChange(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.addVehicle("vehicle-1", domain.VehicleStatusOnTrip)

	// Fuel can be logged even mid-trip.
	log, err := f.svc.LogFuel(context.Background(), service.LogFuelRequest{
		VehicleID: "vehicle-1",
		Cost:      120.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if log.Type != domain.LogTypeFuel {
		t.Errorf("expected Fuel log, got %s", log.Type)
	}
	if got := f.vehicleRepo.GetVehicle("vehicle-1").Status; got != domain.VehicleStatusOnTrip {
		t.Errorf("fuel log must not change status, got %s", got)
	}
}

func TestReturnToService(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.addVehicle("vehicle-1", domain.VehicleStatusInShop)

	vehicle, err := f.svc.ReturnToService(context.Background(), "vehicle-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		t.Errorf("expected Available, got %s", vehicle.Status)
	}

	// Only InShop vehicles can return.
	_, err = f.svc.ReturnToService(context.Background(), "vehicle-1")
	if !errors.Is(err, service.ErrVehicleNotInShop) {
		t.Fatalf("expected ErrVehicleNotInShop, got %v", err)
	}
}

func TestRecentServices(t *testing.T) {
	t.Parallel()

	f := newMaintenanceFixture()
	f.maintenanceRepo.SetPlate("vehicle-1", "TRK-001")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		f.maintenanceRepo.AddLog(&domain.MaintenanceLog{
			ID:        "log-" + string(rune('a'+i)),
			VehicleID: "vehicle-1",
			Type:      domain.LogTypeService,
			Cost:      float64(100 + i),
			LoggedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	// Fuel logs never show in the service feed.
	f.maintenanceRepo.AddLog(&domain.MaintenanceLog{
		ID:        "fuel-1",
		VehicleID: "vehicle-1",
		Type:      domain.LogTypeFuel,
		Cost:      60,
		LoggedAt:  time.Now(),
	})

	entries, err := f.svc.RecentServices(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Zero limit falls back to the default of 5, newest first.
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	if entries[0].Cost != 107 {
		t.Errorf("expected newest entry first (cost 107), got %f", entries[0].Cost)
	}
	if entries[0].VehiclePlate != "TRK-001" {
		t.Errorf("expected joined plate TRK-001, got %q", entries[0].VehiclePlate)
	}
	for _, e := range entries {
		if e.Type != domain.LogTypeService {
			t.Errorf("expected only Service logs, got %s", e.Type)
		}
	}
}
