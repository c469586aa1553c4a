package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scooter/internal/repository"
	"scooter/internal/service"
)

// ErrorResponse represents an unexpected error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Not-found responses carry no body.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	switch code {
	case http.StatusNotFound:
		c.Status(code)
	case http.StatusUnprocessableEntity:
		c.JSON(code, ValidationErrorResponse{
			Errors: map[string][]string{nonFieldErrors: {err.Error()}},
		})
	default:
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: err.Error()})
	}
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidScooterID),
		errors.Is(err, service.ErrInvalidPassengerID),
		errors.Is(err, service.ErrInvalidPassengerName),
		errors.Is(err, service.ErrInvalidOperationID),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrInvalidOffset):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
