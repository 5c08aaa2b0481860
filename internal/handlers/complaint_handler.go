package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobus/booking-backend/internal/middleware"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
)

// ComplaintHandler handles support ticket endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// CreateComplaint opens a support ticket for the authenticated user
// @Summary Open a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param request body models.CreateComplaintRequest true "Complaint"
// @Success 201 {object} models.Complaint
// @Security BearerAuth
// @Router /api/complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	req.UserID = &userCtx.UserID

	complaint, err := h.complaintService.CreateComplaint(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// MyComplaints lists the authenticated user's complaints
func (h *ComplaintHandler) MyComplaints(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	complaints, err := h.complaintService.ComplaintsByUser(userCtx.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// ListComplaints lists every complaint for admin review
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.complaintService.ListComplaints()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// UpdateComplaint applies an admin moderation patch
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	var req models.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	complaint, err := h.complaintService.UpdateComplaint(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}
