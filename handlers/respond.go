package handlers

import (
	"errors"
	"net/http"

	"partypair/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes. Unknown errors are
// internal: the services only surface sentinel values for expected failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSeatTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrCodeExhausted):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidSeat),
		errors.Is(err, services.ErrSameSeat),
		errors.Is(err, services.ErrInvalidQuestion),
		errors.Is(err, services.ErrEmptyAnswer),
		errors.Is(err, services.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
