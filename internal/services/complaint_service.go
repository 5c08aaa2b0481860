package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

// ErrComplaintNotFound indicates an unknown complaint ID
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintService manages support tickets
type ComplaintService struct {
	complaints database.ComplaintStore
	bookings   database.BookingStore
	logger     *logrus.Logger
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(complaints database.ComplaintStore, bookings database.BookingStore, logger *logrus.Logger) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		bookings:   bookings,
		logger:     logger,
	}
}

// CreateComplaint opens a support ticket. A referenced booking must
// exist; priority defaults to medium.
func (s *ComplaintService) CreateComplaint(req *models.CreateComplaintRequest) (*models.Complaint, error) {
	if req.BookingID != nil {
		booking, err := s.bookings.GetBooking(*req.BookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.ComplaintPriorityMedium
	}
	switch priority {
	case models.ComplaintPriorityLow, models.ComplaintPriorityMedium,
		models.ComplaintPriorityHigh, models.ComplaintPriorityCritical:
	default:
		return nil, models.ValidationError("unknown complaint priority")
	}

	complaint := &models.Complaint{
		UserID:      req.UserID,
		BookingID:   req.BookingID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      models.ComplaintStatusOpen,
		Priority:    priority,
	}
	if err := s.complaints.CreateComplaint(complaint); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"complaint_id": complaint.ID,
		"priority":     complaint.Priority,
	}).Info("Complaint opened")

	return complaint, nil
}

// GetComplaint retrieves a complaint by ID
func (s *ComplaintService) GetComplaint(id string) (*models.Complaint, error) {
	complaint, err := s.complaints.GetComplaint(id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	return complaint, nil
}

// UpdateComplaint applies a moderation patch to a complaint
func (s *ComplaintService) UpdateComplaint(id string, req *models.UpdateComplaintRequest) (*models.Complaint, error) {
	complaint, err := s.GetComplaint(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case models.ComplaintStatusOpen, models.ComplaintStatusInProgress,
			models.ComplaintStatusResolved, models.ComplaintStatusClosed:
			complaint.Status = *req.Status
		default:
			return nil, models.ValidationError("unknown complaint status")
		}
	}
	if req.Priority != nil {
		switch *req.Priority {
		case models.ComplaintPriorityLow, models.ComplaintPriorityMedium,
			models.ComplaintPriorityHigh, models.ComplaintPriorityCritical:
			complaint.Priority = *req.Priority
		default:
			return nil, models.ValidationError("unknown complaint priority")
		}
	}

	if err := s.complaints.UpdateComplaint(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// ComplaintsByUser returns a user's complaints
func (s *ComplaintService) ComplaintsByUser(userID string) ([]models.Complaint, error) {
	return s.complaints.ComplaintsByUser(userID)
}

// ListComplaints returns every complaint for admin review
func (s *ComplaintService) ListComplaints() ([]models.Complaint, error) {
	return s.complaints.ListComplaints()
}
