package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideauth/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unclassified errors are logged and answered with fallback, never with the
// underlying cause.
func respondError(c *gin.Context, err error, fallback string) {
	code, message := mapError(err)
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		message = fallback
	}
	c.JSON(code, ErrorResponse{Error: message})
}

// mapError maps service errors to HTTP status codes and client messages.
func mapError(err error) (int, string) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message

	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"

	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"

	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"

	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
