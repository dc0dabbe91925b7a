package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/service"
)

// AnalyticsHandler handles HTTP requests for dashboard KPIs and financials.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SummaryResponse is the dashboard KPI block.
type SummaryResponse struct {
	TotalVehicles     int `json:"total_vehicles"`
	ActiveFleet       int `json:"active_fleet"`
	MaintenanceAlerts int `json:"maintenance_alerts"`
	UtilizationRate   int `json:"utilization_rate"`
	PendingCargo      int `json:"pending_cargo"`
}

// VehicleFinancialsResponse is a per-vehicle ROI row.
type VehicleFinancialsResponse struct {
	VehicleID       string  `json:"vehicle_id"`
	Model           string  `json:"model"`
	LicensePlate    string  `json:"license_plate"`
	AcquisitionCost float64 `json:"acquisition_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	FuelCost        float64 `json:"fuel_cost"`
	OperationalCost float64 `json:"operational_cost"`
	Revenue         float64 `json:"revenue"`
	NetIncome       float64 `json:"net_income"`
	ROIPercent      float64 `json:"roi_percent"`
}

// FinancialsResponse aggregates vehicle rows with fleet totals.
type FinancialsResponse struct {
	Vehicles  []VehicleFinancialsResponse `json:"vehicles"`
	Revenue   float64                     `json:"fleet_revenue"`
	Costs     float64                     `json:"operational_costs"`
	NetProfit float64                     `json:"net_profit"`
}

// Summary handles GET /v1/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, SummaryResponse{
		TotalVehicles:     summary.TotalVehicles,
		ActiveFleet:       summary.ActiveFleet,
		MaintenanceAlerts: summary.MaintenanceAlerts,
		UtilizationRate:   summary.UtilizationRate,
		PendingCargo:      summary.PendingCargo,
	})
}

// Financials handles GET /v1/analytics/roi
func (h *AnalyticsHandler) Financials(c *gin.Context) {
	report, err := h.analyticsService.Financials(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := FinancialsResponse{
		Vehicles:  make([]VehicleFinancialsResponse, 0, len(report.Vehicles)),
		Revenue:   report.Revenue,
		Costs:     report.Costs,
		NetProfit: report.NetProfit,
	}
	for _, row := range report.Vehicles {
		response.Vehicles = append(response.Vehicles, VehicleFinancialsResponse{
			VehicleID:       row.VehicleID,
			Model:           row.Model,
			LicensePlate:    row.LicensePlate,
			AcquisitionCost: row.AcquisitionCost,
			MaintenanceCost: row.MaintenanceCost,
			FuelCost:        row.FuelCost,
			OperationalCost: row.OperationalCost,
			Revenue:         row.Revenue,
			NetIncome:       row.NetIncome,
			ROIPercent:      row.ROIPercent,
		})
	}
	respondJSON(c, http.StatusOK, response)
}
