package models

import "time"

// BusStatus represents the operating status of a bus
type BusStatus string

const (
	BusStatusActive      BusStatus = "active"
	BusStatusMaintenance BusStatus = "maintenance"
	BusStatusInactive    BusStatus = "inactive"
)

// Bus represents a vehicle in an operator's fleet. TotalSeats is the
// capacity bound for every route served by this bus.
type Bus struct {
	ID         string      `json:"id" db:"id"`
	OperatorID string      `json:"operator_id" db:"operator_id"`
	BusNumber  string      `json:"bus_number" db:"bus_number"`
	BusType    string      `json:"bus_type" db:"bus_type"`
	TotalSeats int         `json:"total_seats" db:"total_seats"`
	Amenities  StringArray `json:"amenities,omitempty" db:"amenities"`
	Status     BusStatus   `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// CreateBusRequest represents the request to add a bus to a fleet
type CreateBusRequest struct {
	OperatorID string   `json:"operator_id" binding:"required"`
	BusNumber  string   `json:"bus_number" binding:"required"`
	BusType    string   `json:"bus_type" binding:"required"`
	TotalSeats int      `json:"total_seats" binding:"required,min=1"`
	Amenities  []string `json:"amenities,omitempty"`
}

// UpdateBusRequest represents a patch of a bus record
type UpdateBusRequest struct {
	BusNumber  *string    `json:"bus_number,omitempty"`
	BusType    *string    `json:"bus_type,omitempty"`
	TotalSeats *int       `json:"total_seats,omitempty"`
	Amenities  []string   `json:"amenities,omitempty"`
	Status     *BusStatus `json:"status,omitempty"`
}
