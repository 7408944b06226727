package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/repository"
	"dispatch/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var invalid *service.InvalidTransitionError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: invalid.Error(),
			From:  string(invalid.From),
			To:    string(invalid.To),
		})
		return
	}

	code := mapErrorToHTTPStatus(err)
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
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidOrigin),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrInvalidPassengerCount),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrMissingContact),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrIncompleteAssignment):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrResourceUnavailable),
		errors.Is(err, service.ErrTripBusy):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
