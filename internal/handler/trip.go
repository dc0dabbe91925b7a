package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain"
	"fleetflow/internal/service"
)

// TripHandler handles HTTP requests for the trip lifecycle.
type TripHandler struct {
	dispatchService *service.DispatchService
	tripService     *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(dispatchService *service.DispatchService, tripService *service.TripService) *TripHandler {
	return &TripHandler{
		dispatchService: dispatchService,
		tripService:     tripService,
	}
}

// DispatchRequest is the HTTP request body for dispatching a trip.
type DispatchRequest struct {
	VehicleID   string  `json:"vehicle_id"`
	DriverID    string  `json:"driver_id"`
	CargoWeight float64 `json:"cargo_weight"`
}

// CompleteTripRequest is the HTTP request body for completing a trip.
type CompleteTripRequest struct {
	FinalOdometer float64 `json:"final_odometer"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	Message      string  `json:"message,omitempty"`
	TripID       string  `json:"trip_id"`
	VehicleID    string  `json:"vehicle_id"`
	DriverID     string  `json:"driver_id"`
	CargoWeight  float64 `json:"cargo_weight"`
	Status       string  `json:"status"`
	DispatchedAt string  `json:"dispatched_at"`
	CompletedAt  string  `json:"completed_at,omitempty"`
}

// ActiveTripResponse is a trip row joined with vehicle and driver fields.
type ActiveTripResponse struct {
	TripID          string  `json:"trip_id"`
	VehiclePlate    string  `json:"vehicle_plate"`
	VehicleOdometer float64 `json:"vehicle_odometer"`
	DriverName      string  `json:"driver_name"`
	CargoWeight     float64 `json:"cargo_weight"`
	DispatchedAt    string  `json:"dispatched_at"`
}

func tripResponse(trip *domain.Trip, message string) TripResponse {
	resp := TripResponse{
		Message:      message,
		TripID:       trip.ID,
		VehicleID:    trip.VehicleID,
		DriverID:     trip.DriverID,
		CargoWeight:  trip.CargoWeight,
		Status:       string(trip.Status),
		DispatchedAt: trip.DispatchedAt.Format(time.RFC3339),
	}
	if !trip.CompletedAt.IsZero() {
		resp.CompletedAt = trip.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// Dispatch handles POST /v1/trips/dispatch
func (h *TripHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.dispatchService.Dispatch(c.Request.Context(), service.DispatchRequest{
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		CargoWeight: req.CargoWeight,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, tripResponse(trip, "Trip dispatched successfully"))
}

// Complete handles POST /v1/trips/:id/complete
func (h *TripHandler) Complete(c *gin.Context) {
	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Complete(c.Request.Context(), service.CompleteRequest{
		TripID:        c.Param("id"),
		FinalOdometer: req.FinalOdometer,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripResponse(trip, "Trip completed successfully"))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, tripResponse(trip, ""))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.GetAllTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, tripResponse(trip, ""))
	}
	respondJSON(c, http.StatusOK, response)
}

// GetActive handles GET /v1/trips/active
func (h *TripHandler) GetActive(c *gin.Context) {
	trips, err := h.tripService.GetActiveTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ActiveTripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, ActiveTripResponse{
			TripID:          t.ID,
			VehiclePlate:    t.VehiclePlate,
			VehicleOdometer: t.VehicleOdometer,
			DriverName:      t.DriverName,
			CargoWeight:     t.CargoWeight,
			DispatchedAt:    t.DispatchedAt.Format(time.RFC3339),
		})
	}
	respondJSON(c, http.StatusOK, response)
}
