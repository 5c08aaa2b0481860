package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
)

// SearchHandler handles public route discovery endpoints
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRoutes finds routes between two cities with live availability
// @Summary Search routes
// @Tags Search
// @Produce json
// @Param from query string true "Departure city fragment"
// @Param to query string true "Destination city fragment"
// @Param date query string true "Travel date (YYYY-MM-DD)"
// @Success 200 {array} models.RouteAvailability
// @Failure 400 {object} map[string]interface{} "Invalid query"
// @Router /api/routes/search [get]
func (h *SearchHandler) SearchRoutes(c *gin.Context) {
	var req models.SearchRoutesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from, to and date query parameters are required"})
		return
	}

	results, err := h.searchService.SearchRoutes(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// RouteAvailability returns one route with its occupancy for a date
// @Summary Route detail with availability
// @Tags Search
// @Produce json
// @Param id path string true "Route ID"
// @Param date query string true "Travel date (YYYY-MM-DD)"
// @Success 200 {object} models.RouteAvailability
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /api/routes/{id}/availability [get]
func (h *SearchHandler) RouteAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	result, err := h.searchService.RouteAvailability(c.Param("id"), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
