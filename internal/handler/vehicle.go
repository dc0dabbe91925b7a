package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// VehicleHandler handles HTTP requests for the vehicle registry.
type VehicleHandler struct {
	fleetService *service.FleetService
	vehicleRepo  repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(fleetService *service.FleetService, vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{
		fleetService: fleetService,
		vehicleRepo:  vehicleRepo,
	}
}

// RegisterVehicleRequest is the HTTP request body for vehicle registration.
type RegisterVehicleRequest struct {
	Model           string  `json:"model"`
	LicensePlate    string  `json:"license_plate"`
	MaxCapacity     float64 `json:"max_capacity"`
	Odometer        float64 `json:"odometer"`
	AcquisitionCost float64 `json:"acquisition_cost"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID              string  `json:"id"`
	Model           string  `json:"model"`
	LicensePlate    string  `json:"license_plate"`
	MaxCapacity     float64 `json:"max_capacity"`
	Odometer        float64 `json:"odometer"`
	AcquisitionCost float64 `json:"acquisition_cost"`
	Status          string  `json:"status"`
}

func vehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		Model:           v.Model,
		LicensePlate:    v.LicensePlate,
		MaxCapacity:     v.MaxCapacity,
		Odometer:        v.Odometer,
		AcquisitionCost: v.AcquisitionCost,
		Status:          string(v.Status),
	}
}

// Register handles POST /v1/vehicles/register
func (h *VehicleHandler) Register(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Model == "" || req.LicensePlate == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "model and license_plate are required"})
		return
	}

	if req.MaxCapacity <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "max_capacity must be positive"})
		return
	}

	// Plates are unique across the fleet.
	existing, err := h.vehicleRepo.GetByPlate(c.Request.Context(), req.LicensePlate)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Vehicle already registered",
			"vehicle": vehicleResponse(existing),
		})
		return
	}

	vehicle := &domain.Vehicle{
		ID:              uuid.New().String(),
		Model:           req.Model,
		LicensePlate:    req.LicensePlate,
		MaxCapacity:     req.MaxCapacity,
		Odometer:        req.Odometer,
		AcquisitionCost: req.AcquisitionCost,
		Status:          domain.VehicleStatusAvailable,
	}

	if err := h.vehicleRepo.Create(c.Request.Context(), vehicle); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleResponse(vehicle))
}

// GetAll handles GET /v1/vehicles with an optional ?status= filter.
func (h *VehicleHandler) GetAll(c *gin.Context) {
	status := domain.VehicleStatus(c.Query("status"))

	vehicles, err := h.fleetService.ListVehicles(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, vehicleResponse(v))
	}
	respondJSON(c, http.StatusOK, response)
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}
