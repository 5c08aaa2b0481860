package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
)

// AdminHandler handles platform administration endpoints
type AdminHandler struct {
	users            database.UserStore
	operatorService  *services.OperatorService
	analyticsService *services.AnalyticsService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(users database.UserStore, operatorService *services.OperatorService, analyticsService *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		users:            users,
		operatorService:  operatorService,
		analyticsService: analyticsService,
	}
}

// ListUsers lists user accounts, optionally filtered by role
// @Summary List users
// @Tags Admin
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {array} models.User
// @Security BearerAuth
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := models.Role(c.Query("role"))

	var (
		users []models.User
		err   error
	)
	if role == "" {
		users, err = h.users.ListUsers()
	} else {
		if !role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		users, err = h.users.UsersByRole(role)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListOperators lists operators, optionally filtered by approval status
func (h *AdminHandler) ListOperators(c *gin.Context) {
	status := models.OperatorStatus(c.Query("status"))

	operators, err := h.operatorService.ListOperators(status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, operators)
}

// PlatformStats returns platform-wide booking and revenue figures
func (h *AdminHandler) PlatformStats(c *gin.Context) {
	stats, err := h.analyticsService.PlatformStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
