package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobus/booking-backend/internal/middleware"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
)

// OperatorHandler handles operator registration, fleet management and
// the operator dashboard
type OperatorHandler struct {
	operatorService  *services.OperatorService
	fleetService     *services.FleetService
	bookingService   *services.BookingService
	analyticsService *services.AnalyticsService
}

// NewOperatorHandler creates a new OperatorHandler
func NewOperatorHandler(
	operatorService *services.OperatorService,
	fleetService *services.FleetService,
	bookingService *services.BookingService,
	analyticsService *services.AnalyticsService,
) *OperatorHandler {
	return &OperatorHandler{
		operatorService:  operatorService,
		fleetService:     fleetService,
		bookingService:   bookingService,
		analyticsService: analyticsService,
	}
}

// CreateOperator registers a company profile for the authenticated user
// @Summary Register as an operator
// @Tags Operators
// @Accept json
// @Produce json
// @Param request body models.CreateOperatorRequest true "Operator registration"
// @Success 201 {object} models.Operator
// @Security BearerAuth
// @Router /api/operators [post]
func (h *OperatorHandler) CreateOperator(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// Users register their own company; admins may register on behalf.
	if req.UserID != userCtx.UserID && userCtx.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only register your own operator profile"})
		return
	}

	operator, err := h.operatorService.CreateOperator(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, operator)
}

// MyOperator returns the caller's operator profile
func (h *OperatorHandler) MyOperator(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	operator, err := h.operatorService.GetOperatorByUserID(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, operator)
}

// UpdateOperator applies an admin patch (approval, suspension, contacts)
// @Summary Update an operator
// @Tags Operators
// @Accept json
// @Produce json
// @Param id path string true "Operator ID"
// @Param request body models.UpdateOperatorRequest true "Operator patch"
// @Success 200 {object} models.Operator
// @Security BearerAuth
// @Router /api/operators/{id} [patch]
func (h *OperatorHandler) UpdateOperator(c *gin.Context) {
	var req models.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	operator, err := h.operatorService.UpdateOperator(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, operator)
}

// CreateBus adds a bus to the caller's fleet
// @Summary Add a bus
// @Tags Fleet
// @Accept json
// @Produce json
// @Param request body models.CreateBusRequest true "Bus details"
// @Success 201 {object} models.Bus
// @Security BearerAuth
// @Router /api/buses [post]
func (h *OperatorHandler) CreateBus(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if userCtx.Role != models.RoleAdmin {
		operator, err := h.operatorService.GetOperatorByUserID(userCtx.UserID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		req.OperatorID = operator.ID
	}

	bus, err := h.fleetService.CreateBus(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bus)
}

// MyBuses lists the caller's fleet
func (h *OperatorHandler) MyBuses(c *gin.Context) {
	operator, ok := h.callerOperator(c)
	if !ok {
		return
	}

	buses, err := h.fleetService.BusesByOperator(operator.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// UpdateBus patches a bus in the caller's fleet
func (h *OperatorHandler) UpdateBus(c *gin.Context) {
	var req models.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.authorizeBus(c, c.Param("id")) {
		return
	}

	bus, err := h.fleetService.UpdateBus(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}

// DeleteBus removes a bus from the caller's fleet
func (h *OperatorHandler) DeleteBus(c *gin.Context) {
	if !h.authorizeBus(c, c.Param("id")) {
		return
	}

	if err := h.fleetService.DeleteBus(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}

// CreateRoute publishes a route on one of the caller's buses
// @Summary Publish a route
// @Tags Fleet
// @Accept json
// @Produce json
// @Param request body models.CreateRouteRequest true "Route details"
// @Success 201 {object} models.Route
// @Security BearerAuth
// @Router /api/operator/routes [post]
func (h *OperatorHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.authorizeBus(c, req.BusID) {
		return
	}

	route, err := h.fleetService.CreateRoute(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

// MyRoutes lists every route across the caller's fleet
func (h *OperatorHandler) MyRoutes(c *gin.Context) {
	operator, ok := h.callerOperator(c)
	if !ok {
		return
	}

	routes, err := h.fleetService.RoutesByOperator(operator.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}

// UpdateRoute patches one of the caller's routes
func (h *OperatorHandler) UpdateRoute(c *gin.Context) {
	var req models.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.authorizeRoute(c, c.Param("id")) {
		return
	}

	route, err := h.fleetService.UpdateRoute(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

// DeleteRoute removes one of the caller's routes
func (h *OperatorHandler) DeleteRoute(c *gin.Context) {
	if !h.authorizeRoute(c, c.Param("id")) {
		return
	}

	if err := h.fleetService.DeleteRoute(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}

// MyBookings lists every booking on the caller's routes
func (h *OperatorHandler) MyBookings(c *gin.Context) {
	operator, ok := h.callerOperator(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.BookingsByOperator(operator.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// MyStats returns the caller's fleet and revenue summary
func (h *OperatorHandler) MyStats(c *gin.Context) {
	operator, ok := h.callerOperator(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.OperatorStats(operator.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// callerOperator resolves the authenticated user's operator profile,
// writing the error response itself when there is none.
func (h *OperatorHandler) callerOperator(c *gin.Context) (*models.Operator, bool) {
	userCtx := middleware.MustGetUserContext(c)

	operator, err := h.operatorService.GetOperatorByUserID(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return operator, true
}

// authorizeBus checks that the bus belongs to the caller's fleet.
// Admins skip the ownership check.
func (h *OperatorHandler) authorizeBus(c *gin.Context, busID string) bool {
	userCtx := middleware.MustGetUserContext(c)
	if userCtx.Role == models.RoleAdmin {
		return true
	}

	operator, ok := h.callerOperator(c)
	if !ok {
		return false
	}

	bus, err := h.fleetService.GetBus(busID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	if bus.OperatorID != operator.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Bus does not belong to your fleet"})
		return false
	}
	return true
}

// authorizeRoute checks that the route runs on one of the caller's buses
func (h *OperatorHandler) authorizeRoute(c *gin.Context, routeID string) bool {
	userCtx := middleware.MustGetUserContext(c)
	if userCtx.Role == models.RoleAdmin {
		return true
	}

	route, err := h.fleetService.GetRoute(routeID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	return h.authorizeBus(c, route.BusID)
}
