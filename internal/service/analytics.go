package service

import (
	"context"
	"math"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// revenuePerKg is the modeled revenue for each kilogram of cargo delivered
// on a completed trip.
const revenuePerKg = 5.0

// AnalyticsService computes dashboard KPIs and per-vehicle financials from
// the persisted fleet state. Everything here is derived; nothing is written.
type AnalyticsService struct {
	vehicleRepo     repository.VehicleRepository
	tripRepo        repository.TripRepository
	maintenanceRepo repository.MaintenanceRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	vehicleRepo repository.VehicleRepository,
	tripRepo repository.TripRepository,
	maintenanceRepo repository.MaintenanceRepository,
) *AnalyticsService {
	return &AnalyticsService{
		vehicleRepo:     vehicleRepo,
		tripRepo:        tripRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

// FleetSummary is the dashboard KPI block.
type FleetSummary struct {
	TotalVehicles     int
	ActiveFleet       int // vehicles OnTrip
	MaintenanceAlerts int // vehicles InShop
	UtilizationRate   int // percentage of fleet OnTrip, rounded
	PendingCargo      int // trips currently Dispatched
}

// Summary computes the dashboard KPIs.
func (s *AnalyticsService) Summary(ctx context.Context) (*FleetSummary, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &FleetSummary{TotalVehicles: len(vehicles)}
	for _, v := range vehicles {
		switch v.Status {
		case domain.VehicleStatusOnTrip:
			summary.ActiveFleet++
		case domain.VehicleStatusInShop:
			summary.MaintenanceAlerts++
		}
	}

	if summary.TotalVehicles > 0 {
		summary.UtilizationRate = int(math.Round(float64(summary.ActiveFleet) / float64(summary.TotalVehicles) * 100))
	}

	pending, err := s.tripRepo.CountByStatus(ctx, domain.TripStatusDispatched)
	if err != nil {
		return nil, err
	}
	summary.PendingCargo = pending

	return summary, nil
}

// VehicleFinancials is the per-vehicle ROI row.
type VehicleFinancials struct {
	VehicleID       string
	Model           string
	LicensePlate    string
	AcquisitionCost float64
	MaintenanceCost float64
	FuelCost        float64
	OperationalCost float64
	Revenue         float64
	NetIncome       float64
	ROIPercent      float64
}

// FleetFinancials aggregates the per-vehicle rows with fleet totals.
type FleetFinancials struct {
	Vehicles  []VehicleFinancials
	Revenue   float64
	Costs     float64
	NetProfit float64
}

// Financials computes per-vehicle revenue, operational cost, and lifetime
// ROI, plus fleet totals. Revenue is modeled as revenuePerKg for every
// kilogram delivered on completed trips; ROI is net income over acquisition
// cost, zero when the acquisition cost is unknown.
func (s *AnalyticsService) Financials(ctx context.Context) (*FleetFinancials, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cargoByVehicle, err := s.tripRepo.CargoDeliveredByVehicle(ctx)
	if err != nil {
		return nil, err
	}

	serviceCosts, err := s.maintenanceRepo.CostByVehicle(ctx, domain.LogTypeService)
	if err != nil {
		return nil, err
	}

	fuelCosts, err := s.maintenanceRepo.CostByVehicle(ctx, domain.LogTypeFuel)
	if err != nil {
		return nil, err
	}

	report := &FleetFinancials{Vehicles: make([]VehicleFinancials, 0, len(vehicles))}
	for _, v := range vehicles {
		row := VehicleFinancials{
			VehicleID:       v.ID,
			Model:           v.Model,
			LicensePlate:    v.LicensePlate,
			AcquisitionCost: v.AcquisitionCost,
			MaintenanceCost: serviceCosts[v.ID],
			FuelCost:        fuelCosts[v.ID],
			Revenue:         cargoByVehicle[v.ID] * revenuePerKg,
		}
		row.OperationalCost = row.MaintenanceCost + row.FuelCost
		row.NetIncome = row.Revenue - row.OperationalCost
		if v.AcquisitionCost > 0 {
			row.ROIPercent = roundCents(row.NetIncome / v.AcquisitionCost * 100)
		}

		report.Vehicles = append(report.Vehicles, row)
		report.Revenue += row.Revenue
		report.Costs += row.OperationalCost
	}
	report.NetProfit = report.Revenue - report.Costs

	return report, nil
}

// roundCents rounds to two decimal places.
func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}
