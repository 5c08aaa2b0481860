package models

import "time"

// OperatorStatus represents the approval state of an operator
type OperatorStatus string

const (
	OperatorStatusPending   OperatorStatus = "pending"
	OperatorStatusApproved  OperatorStatus = "approved"
	OperatorStatusSuspended OperatorStatus = "suspended"
)

// Operator represents a bus company registered on the platform
type Operator struct {
	ID           string         `json:"id" db:"id"`
	UserID       string         `json:"user_id" db:"user_id"`
	CompanyName  string         `json:"company_name" db:"company_name"`
	License      string         `json:"license" db:"license"`
	ContactEmail string         `json:"contact_email" db:"contact_email"`
	ContactPhone string         `json:"contact_phone" db:"contact_phone"`
	Status       OperatorStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// CreateOperatorRequest represents the request to register an operator.
// New operators start in pending state until an admin approves them.
type CreateOperatorRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	CompanyName  string `json:"company_name" binding:"required"`
	License      string `json:"license" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone" binding:"required"`
}

// UpdateOperatorRequest represents an admin patch of an operator record
type UpdateOperatorRequest struct {
	Status       *OperatorStatus `json:"status,omitempty"`
	CompanyName  *string         `json:"company_name,omitempty"`
	ContactEmail *string         `json:"contact_email,omitempty"`
	ContactPhone *string         `json:"contact_phone,omitempty"`
}

// IsApproved reports whether the operator may manage buses and routes
func (o *Operator) IsApproved() bool {
	return o.Status == OperatorStatusApproved
}
