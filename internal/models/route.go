package models

import "time"

// Route represents a scheduled service run by a single bus between two cities
type Route struct {
	ID            string      `json:"id" db:"id"`
	BusID         string      `json:"bus_id" db:"bus_id"`
	FromCity      string      `json:"from_city" db:"from_city"`
	ToCity        string      `json:"to_city" db:"to_city"`
	DepartureTime string      `json:"departure_time" db:"departure_time"`
	ArrivalTime   string      `json:"arrival_time" db:"arrival_time"`
	Duration      string      `json:"duration" db:"duration"`
	Price         float64     `json:"price" db:"price"`
	OperatingDays StringArray `json:"operating_days,omitempty" db:"operating_days"`
	IsActive      bool        `json:"is_active" db:"is_active"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// CreateRouteRequest represents the request to publish a route
type CreateRouteRequest struct {
	BusID         string   `json:"bus_id" binding:"required"`
	FromCity      string   `json:"from_city" binding:"required"`
	ToCity        string   `json:"to_city" binding:"required"`
	DepartureTime string   `json:"departure_time" binding:"required"`
	ArrivalTime   string   `json:"arrival_time" binding:"required"`
	Duration      string   `json:"duration" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OperatingDays []string `json:"operating_days,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// UpdateRouteRequest represents an operator edit of a published route
type UpdateRouteRequest struct {
	FromCity      *string  `json:"from_city,omitempty"`
	ToCity        *string  `json:"to_city,omitempty"`
	DepartureTime *string  `json:"departure_time,omitempty"`
	ArrivalTime   *string  `json:"arrival_time,omitempty"`
	Duration      *string  `json:"duration,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OperatingDays []string `json:"operating_days,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// RouteWithBus is a route joined with its bus and owning operator
type RouteWithBus struct {
	Route
	Bus      *Bus      `json:"bus"`
	Operator *Operator `json:"operator"`
}

// RouteAvailability is a search result: a route enriched with the live
// occupancy of the requested travel date
type RouteAvailability struct {
	RouteWithBus
	AvailableSeats int      `json:"available_seats"`
	BookedSeats    []string `json:"booked_seats"`
}

// SearchRoutesRequest represents the route search query parameters
type SearchRoutesRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
	Date string `form:"date" binding:"required"`
}

// TravelDateLayout is the calendar date format used for booking partitions
const TravelDateLayout = "2006-01-02"

// ValidateTravelDate checks that a travel date string is a well-formed
// calendar date
func ValidateTravelDate(date string) error {
	if _, err := time.Parse(TravelDateLayout, date); err != nil {
		return ValidationError("travel date must be in YYYY-MM-DD format")
	}
	return nil
}
