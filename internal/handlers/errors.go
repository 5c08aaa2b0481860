package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
)

// respondServiceError translates service errors into HTTP responses so
// every handler maps the taxonomy the same way.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.SeatConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "seats_unavailable",
			"message":           conflict.Error(),
			"conflicting_seats": conflict.Seats,
		})
		return
	}

	var transition *services.InvalidTransitionError
	if errors.As(err, &transition) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_transition",
			"message": transition.Error(),
		})
		return
	}

	var validation models.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": validation.Error()})
		return
	}

	switch {
	case errors.Is(err, services.ErrRouteNotFound),
		errors.Is(err, services.ErrBusNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOperatorNotFound),
		errors.Is(err, services.ErrComplaintNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, services.ErrRouteInactive),
		errors.Is(err, services.ErrInvalidSeat),
		errors.Is(err, services.ErrOperatorNotApproved):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrOperatorExists):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": err.Error()})
	case errors.Is(err, services.ErrPartitionBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "busy", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Something went wrong"})
	}
}
