package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobus/booking-backend/internal/middleware"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
	"github.com/mobus/booking-backend/internal/utils"
)

// BookingHandler handles seat admission and booking lifecycle endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking admits a seat reservation
// @Summary Create a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.CreateBookingRequest true "Booking request"
// @Success 201 {object} models.Booking
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 409 {object} map[string]interface{} "Seats already booked"
// @Failure 503 {object} map[string]interface{} "Partition busy"
// @Security BearerAuth
// @Router /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// Agents book on behalf of walk-in customers; everyone else books
	// for themselves.
	if req.BookedBy == models.BookingChannelAgent {
		if !userCtx.Role.CanBookForOthers() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only agents can create agent bookings"})
			return
		}
		req.AgentID = &userCtx.UserID
	} else {
		req.UserID = &userCtx.UserID
	}

	// Recorded with the booking for the support audit trail.
	req.DeviceInfo = utils.ParseUserAgent(c.GetHeader("User-Agent"))

	booking, err := h.bookingService.CreateBooking(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBooking returns a booking by ID
// @Summary Get a booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Security BearerAuth
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingService.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !canViewBooking(userCtx, booking) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot view this booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus patches a booking's payment or lifecycle status
// @Summary Update booking status
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body models.UpdateBookingStatusRequest true "Status patch"
// @Success 200 {object} models.Booking
// @Failure 400 {object} map[string]interface{} "Invalid transition"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Security BearerAuth
// @Router /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canViewBooking(userCtx, booking) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot modify this booking"})
		return
	}

	booking, err = h.bookingService.UpdateBookingStatus(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// MyBookings returns the authenticated user's bookings
// @Summary List my bookings
// @Tags Bookings
// @Produce json
// @Success 200 {array} models.BookingWithRoute
// @Security BearerAuth
// @Router /api/bookings [get]
func (h *BookingHandler) MyBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.BookingsByUser(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// OccupiedSeats returns the occupied seat list for a route departure,
// for seat map rendering. Public so the seat picker works pre-login.
// @Summary Occupied seats for a departure
// @Tags Bookings
// @Produce json
// @Param id path string true "Route ID"
// @Param date query string true "Travel date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/routes/{id}/seats [get]
func (h *BookingHandler) OccupiedSeats(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	seats, err := h.bookingService.OccupiedSeats(c.Param("id"), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"route_id":     c.Param("id"),
		"travel_date":  date,
		"booked_seats": seats,
	})
}

// canViewBooking reports whether the caller may read or modify the
// booking: its owner, the agent who made it, or any admin.
func canViewBooking(userCtx middleware.UserContext, booking *models.Booking) bool {
	if userCtx.Role == models.RoleAdmin {
		return true
	}
	if booking.UserID != nil && *booking.UserID == userCtx.UserID {
		return true
	}
	if booking.AgentID != nil && *booking.AgentID == userCtx.UserID {
		return true
	}
	return false
}
