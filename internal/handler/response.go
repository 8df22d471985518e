package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/repository"
	"ridebooking/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository error kinds to HTTP status
// codes. Specific errors wrap one of the base kinds, so matching the kinds
// covers them all.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest

	// Illegal state transitions and lost concurrent races both surface as
	// conflicts; the latter are retryable by the client.
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
