package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/service"
)

// MaintenanceHandler handles HTTP requests for maintenance and fuel logging.
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// LogCostRequest is the HTTP request body for logging a service or fuel cost.
type LogCostRequest struct {
	Cost float64 `json:"cost"`
}

// MaintenanceLogResponse is the HTTP response for a cost log.
type MaintenanceLogResponse struct {
	Message      string  `json:"message,omitempty"`
	ID           string  `json:"id"`
	VehicleID    string  `json:"vehicle_id"`
	VehiclePlate string  `json:"vehicle_plate,omitempty"`
	Type         string  `json:"type"`
	Cost         float64 `json:"cost"`
	LoggedAt     string  `json:"logged_at"`
}

// LogMaintenance handles POST /v1/vehicles/:id/maintenance
func (h *MaintenanceHandler) LogMaintenance(c *gin.Context) {
	var req LogCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	logEntry, err := h.maintenanceService.LogMaintenance(c.Request.Context(), service.LogMaintenanceRequest{
		VehicleID: c.Param("id"),
		Cost:      req.Cost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, MaintenanceLogResponse{
		Message:   "Maintenance logged; vehicle pulled into shop",
		ID:        logEntry.ID,
		VehicleID: logEntry.VehicleID,
		Type:      string(logEntry.Type),
		Cost:      logEntry.Cost,
		LoggedAt:  logEntry.LoggedAt.Format(time.RFC3339),
	})
}

// LogFuel handles POST /v1/vehicles/:id/fuel
func (h *MaintenanceHandler) LogFuel(c *gin.Context) {
	var req LogCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	logEntry, err := h.maintenanceService.LogFuel(c.Request.Context(), service.LogFuelRequest{
		VehicleID: c.Param("id"),
		Cost:      req.Cost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, MaintenanceLogResponse{
		Message:   "Fuel cost logged",
		ID:        logEntry.ID,
		VehicleID: logEntry.VehicleID,
		Type:      string(logEntry.Type),
		Cost:      logEntry.Cost,
		LoggedAt:  logEntry.LoggedAt.Format(time.RFC3339),
	})
}

// ReturnToService handles POST /v1/vehicles/:id/return
func (h *MaintenanceHandler) ReturnToService(c *gin.Context) {
	vehicle, err := h.maintenanceService.ReturnToService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"message": "Vehicle returned to service",
		"vehicle": vehicleResponse(vehicle),
	})
}

// RecentServices handles GET /v1/maintenance/recent
func (h *MaintenanceHandler) RecentServices(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := h.maintenanceService.RecentServices(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MaintenanceLogResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, MaintenanceLogResponse{
			ID:           e.ID,
			VehicleID:    e.VehicleID,
			VehiclePlate: e.VehiclePlate,
			Type:         string(e.Type),
			Cost:         e.Cost,
			LoggedAt:     e.LoggedAt.Format(time.RFC3339),
		})
	}
	respondJSON(c, http.StatusOK, response)
}
