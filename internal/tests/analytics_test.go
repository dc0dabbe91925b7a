package tests

import (
	"context"
	"testing"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// 5. DASHBOARD KPIS AND FINANCIALS
// ──────────────────────────────────────────────

type analyticsFixture struct {
	vehicleRepo     *MockVehicleRepository
	tripRepo        *MockTripRepository
	maintenanceRepo *MockMaintenanceRepository
	svc             *service.AnalyticsService
}

func newAnalyticsFixture() *analyticsFixture {
	vehicleRepo := NewMockVehicleRepository()
	tripRepo := NewMockTripRepository()
	maintenanceRepo := NewMockMaintenanceRepository()

	return &analyticsFixture{
		vehicleRepo:     vehicleRepo,
		tripRepo:        tripRepo,
		maintenanceRepo: maintenanceRepo,
		svc:             service.NewAnalyticsService(vehicleRepo, tripRepo, maintenanceRepo),
	}
}

func TestSummary_KPIs(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture()
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "v1", LicensePlate: "TRK-001", Status: domain.VehicleStatusOnTrip})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "v2", LicensePlate: "TRK-002", Status: domain.VehicleStatusAvailable})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: "v3", LicensePlate: "VAN-003", Status: domain.VehicleStatusInShop})
	f.tripRepo.AddTrip(&domain.Trip{ID: "t1", VehicleID: "v1", Status: domain.TripStatusDispatched, DispatchedAt: time.Now()})
	f.tripRepo.AddTrip(&domain.Trip{ID: "t2", VehicleID: "v2", Status: domain.TripStatusCompleted, DispatchedAt: time.Now().Add(-time.Hour)})

	summary, err := f.svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalVehicles != 3 {
		t.Errorf("expected 3 total vehicles, got %d", summary.TotalVehicles)
	}
	if summary.ActiveFleet != 1 {
		t.Errorf("expected 1 active, got %d", summary.ActiveFleet)
	}
	if summary.MaintenanceAlerts != 1 {
		t.Errorf("expected 1 maintenance alert, got %d", summary.MaintenanceAlerts)
	}
	// 1 of 3 OnTrip rounds to 33%.
	if summary.UtilizationRate != 33 {
		t.Errorf("expected utilization 33, got %d", summary.UtilizationRate)
	}
	if summary.PendingCargo != 1 {
		t.Errorf("expected 1 pending trip, got %d", summary.PendingCargo)
	}
}

func TestSummary_EmptyFleet(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture()

	summary, err := f.svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalVehicles != 0 || summary.UtilizationRate != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}
}

func TestFinancials_ROIPerVehicle(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture()
	f.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:              "v1",
		Model:           "Volvo FH16",
		LicensePlate:    "TRK-001",
		AcquisitionCost: 100000,
		Status:          domain.VehicleStatusAvailable,
	})

	// 4000 kg delivered at 5 per kg = 20000 revenue.
	f.tripRepo.AddTrip(&domain.Trip{ID: "t1", VehicleID: "v1", CargoWeight: 2500, Status: domain.TripStatusCompleted})
	f.tripRepo.AddTrip(&domain.Trip{ID: "t2", VehicleID: "v1", CargoWeight: 1500, Status: domain.TripStatusCompleted})
	// Dispatched cargo earns nothing yet.
	f.tripRepo.AddTrip(&domain.Trip{ID: "t3", VehicleID: "v1", CargoWeight: 9999, Status: domain.TripStatusDispatched})

	f.maintenanceRepo.AddLog(&domain.MaintenanceLog{ID: "m1", VehicleID: "v1", Type: domain.LogTypeService, Cost: 3000})
	f.maintenanceRepo.AddLog(&domain.MaintenanceLog{ID: "m2", VehicleID: "v1", Type: domain.LogTypeFuel, Cost: 2000})

	report, err := f.svc.Financials(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle row, got %d", len(report.Vehicles))
	}

	row := report.Vehicles[0]
	if row.Revenue != 20000 {
		t.Errorf("expected revenue 20000, got %f", row.Revenue)
	}
	if row.OperationalCost != 5000 {
		t.Errorf("expected operational cost 5000, got %f", row.OperationalCost)
	}
	if row.NetIncome != 15000 {
		t.Errorf("expected net income 15000, got %f", row.NetIncome)
	}
	// 15000 / 100000 = 15%.
	if row.ROIPercent != 15 {
		t.Errorf("expected ROI 15, got %f", row.ROIPercent)
	}

	if report.Revenue != 20000 || report.Costs != 5000 || report.NetProfit != 15000 {
		t.Errorf("unexpected fleet totals: %+v", report)
	}
}

func TestFinancials_UnknownAcquisitionCost(t *testing.T) {
	t.Parallel()

	f := newAnalyticsFixture()
	f.vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:           "v1",
		LicensePlate: "TRK-001",
		Status:       domain.VehicleStatusAvailable,
	})
	f.tripRepo.AddTrip(&domain.Trip{ID: "t1", VehicleID: "v1", CargoWeight: 100, Status: domain.TripStatusCompleted})

	report, err := f.svc.Financials(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ROI is zero, not a division by zero, when the cost is unknown.
	if report.Vehicles[0].ROIPercent != 0 {
		t.Errorf("expected ROI 0, got %f", report.Vehicles[0].ROIPercent)
	}
	if report.Vehicles[0].Revenue != 500 {
		t.Errorf("expected revenue 500, got %f", report.Vehicles[0].Revenue)
	}
}

// ──────────────────────────────────────────────
// 6. FLEET LISTINGS
// ──────────────────────────────────────────────

func TestListVehicles_StatusFilterBypassesCache(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	cache := NewMockListingCache()
	svc := service.NewFleetService(vehicleRepo, driverRepo, cache)

	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "v1", LicensePlate: "TRK-001", Status: domain.VehicleStatusAvailable})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "v2", LicensePlate: "TRK-002", Status: domain.VehicleStatusInShop})

	all, err := svc.ListVehicles(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(all))
	}

	// Unfiltered listing is now cached; a new vehicle stays invisible until
	// invalidation.
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "v3", LicensePlate: "VAN-003", Status: domain.VehicleStatusAvailable})

	cachedAll, err := svc.ListVehicles(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cachedAll) != 2 {
		t.Errorf("expected cached listing of 2, got %d", len(cachedAll))
	}

	// Filtered listings always hit the repository.
	available, err := svc.ListVehicles(context.Background(), domain.VehicleStatusAvailable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 2 {
		t.Errorf("expected 2 available vehicles, got %d", len(available))
	}
}

func TestListVehicles_RoundTripsThroughCache(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	cache := NewMockListingCache()
	svc := service.NewFleetService(vehicleRepo, driverRepo, cache)

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:              "v1",
		Model:           "Volvo FH16",
		LicensePlate:    "TRK-001",
		MaxCapacity:     25000,
		Odometer:        125000,
		AcquisitionCost: 180000,
		Status:          domain.VehicleStatusAvailable,
	})

	first, err := svc.ListVehicles(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(first))
	}

	// Second read is served from the cache; every field the listing exposes
	// must survive the encode/decode.
	cached, err := svc.ListVehicles(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("expected 1 cached vehicle, got %d", len(cached))
	}

	got, want := cached[0], first[0]
	if got.ID != want.ID {
		t.Errorf("expected id %q, got %q", want.ID, got.ID)
	}
	if got.Model != want.Model {
		t.Errorf("expected model %q, got %q", want.Model, got.Model)
	}
	if got.LicensePlate != want.LicensePlate {
		t.Errorf("expected plate %q, got %q", want.LicensePlate, got.LicensePlate)
	}
	if got.MaxCapacity != want.MaxCapacity {
		t.Errorf("expected max capacity %f, got %f", want.MaxCapacity, got.MaxCapacity)
	}
	if got.Odometer != want.Odometer {
		t.Errorf("expected odometer %f, got %f", want.Odometer, got.Odometer)
	}
	if got.AcquisitionCost != want.AcquisitionCost {
		t.Errorf("cached listing lost acquisition cost: got %f, want %f", got.AcquisitionCost, want.AcquisitionCost)
	}
	if got.Status != want.Status {
		t.Errorf("expected status %s, got %s", want.Status, got.Status)
	}
}

func TestListDrivers_RoundTripsThroughCache(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	cache := NewMockListingCache()
	svc := service.NewFleetService(vehicleRepo, driverRepo, cache)

	expiry := time.Now().AddDate(1, 0, 0).Truncate(time.Second)
	driverRepo.AddDriver(&domain.Driver{
		ID:            "d1",
		Name:          "Elena Petrova",
		LicenseExpiry: expiry,
		SafetyScore:   72,
		Status:        domain.DriverStatusOffDuty,
	})

	if _, err := svc.ListDrivers(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second read comes from the cache and survives the encode/decode.
	drivers, err := svc.ListDrivers(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 1 {
		t.Fatalf("expected 1 driver, got %d", len(drivers))
	}
	if drivers[0].Name != "Elena Petrova" {
		t.Errorf("expected name preserved, got %q", drivers[0].Name)
	}
	if !drivers[0].LicenseExpiry.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, drivers[0].LicenseExpiry)
	}
}
