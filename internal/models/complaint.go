package models

import "time"

// ComplaintStatus represents the ticket state of a complaint
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// ComplaintPriority represents the urgency of a complaint
type ComplaintPriority string

const (
	ComplaintPriorityLow      ComplaintPriority = "low"
	ComplaintPriorityMedium   ComplaintPriority = "medium"
	ComplaintPriorityHigh     ComplaintPriority = "high"
	ComplaintPriorityCritical ComplaintPriority = "critical"
)

// Complaint represents a support ticket, optionally tied to a booking
type Complaint struct {
	ID          string            `json:"id" db:"id"`
	UserID      *string           `json:"user_id,omitempty" db:"user_id"`
	BookingID   *string           `json:"booking_id,omitempty" db:"booking_id"`
	Subject     string            `json:"subject" db:"subject"`
	Description string            `json:"description" db:"description"`
	Status      ComplaintStatus   `json:"status" db:"status"`
	Priority    ComplaintPriority `json:"priority" db:"priority"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}

// CreateComplaintRequest represents the request to open a complaint
type CreateComplaintRequest struct {
	UserID      *string           `json:"user_id,omitempty"`
	BookingID   *string           `json:"booking_id,omitempty"`
	Subject     string            `json:"subject" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Priority    ComplaintPriority `json:"priority,omitempty"`
}

// UpdateComplaintRequest represents a moderation patch of a complaint
type UpdateComplaintRequest struct {
	Status   *ComplaintStatus   `json:"status,omitempty"`
	Priority *ComplaintPriority `json:"priority,omitempty"`
}
