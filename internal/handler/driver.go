package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	fleetService *service.FleetService
	driverRepo   repository.DriverRepository
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(fleetService *service.FleetService, driverRepo repository.DriverRepository) *DriverHandler {
	return &DriverHandler{
		fleetService: fleetService,
		driverRepo:   driverRepo,
	}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Name          string `json:"name"`
	LicenseExpiry string `json:"license_expiry"` // RFC 3339
	SafetyScore   int    `json:"safety_score"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	LicenseExpiry string `json:"license_expiry"`
	SafetyScore   int    `json:"safety_score"`
	Status        string `json:"status"`
}

func driverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		Name:          d.Name,
		LicenseExpiry: d.LicenseExpiry.Format(time.RFC3339),
		SafetyScore:   d.SafetyScore,
		Status:        string(d.Status),
	}
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	expiry, err := time.Parse(time.RFC3339, req.LicenseExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "license_expiry must be RFC 3339"})
		return
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		LicenseExpiry: expiry,
		SafetyScore:   req.SafetyScore,
		Status:        domain.DriverStatusOffDuty,
	}

	if err := h.driverRepo.Create(c.Request.Context(), driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driverResponse(driver))
}

// GetAll handles GET /v1/drivers with an optional ?status= filter.
func (h *DriverHandler) GetAll(c *gin.Context) {
	status := domain.DriverStatus(c.Query("status"))

	drivers, err := h.fleetService.ListDrivers(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, driverResponse(d))
	}
	respondJSON(c, http.StatusOK, response)
}
