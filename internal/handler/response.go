package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConfirmationResponse carries a human-readable success message alongside
// operation-specific payloads.
type ConfirmationResponse struct {
	Message string `json:"message"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		// Infrastructure details stay in the logs, not the response.
		c.JSON(code, ErrorResponse{Error: service.ErrTransactionFailed.Error()})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidCargoWeight),
		errors.Is(err, service.ErrInvalidOdometer),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrInvalidUserRole):
		return http.StatusBadRequest

	// Business rule violations - Conflict
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrLicenseExpired),
		errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrDriverSuspended),
		errors.Is(err, service.ErrOdometerRegression),
		errors.Is(err, service.ErrTripAlreadyCompleted),
		errors.Is(err, service.ErrVehicleOnTrip),
		errors.Is(err, service.ErrVehicleNotInShop):
		return http.StatusConflict

	// Default to internal server error (includes ErrTransactionFailed)
	default:
		return http.StatusInternalServerError
	}
}
