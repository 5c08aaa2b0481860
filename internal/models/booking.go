package models

import "time"

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingChannel identifies who created the booking
type BookingChannel string

const (
	BookingChannelPassenger BookingChannel = "passenger"
	BookingChannelAgent     BookingChannel = "agent"
)

// Booking is the atomic unit of seat reservation. Occupancy is scoped per
// (RouteID, TravelDate); a confirmed booking holds every seat in
// SeatNumbers for that partition until cancelled. Bookings are never
// deleted, cancellation is a status flag.
type Booking struct {
	ID             string         `json:"id" db:"id"`
	UserID         *string        `json:"user_id,omitempty" db:"user_id"`
	RouteID        string         `json:"route_id" db:"route_id"`
	PassengerName  string         `json:"passenger_name" db:"passenger_name"`
	PassengerPhone string         `json:"passenger_phone" db:"passenger_phone"`
	PassengerEmail *string        `json:"passenger_email,omitempty" db:"passenger_email"`
	SeatNumbers    StringArray    `json:"seat_numbers" db:"seat_numbers"`
	TravelDate     string         `json:"travel_date" db:"travel_date"`
	TotalAmount    float64        `json:"total_amount" db:"total_amount"`
	PaymentStatus  PaymentStatus  `json:"payment_status" db:"payment_status"`
	PaymentMethod  *string        `json:"payment_method,omitempty" db:"payment_method"`
	BookingStatus  BookingStatus  `json:"booking_status" db:"booking_status"`
	BookedBy       BookingChannel `json:"booked_by" db:"booked_by"`
	AgentID        *string        `json:"agent_id,omitempty" db:"agent_id"`
	DeviceInfo     JSONMap        `json:"device_info,omitempty" db:"device_info"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// BookingWithRoute is a booking joined with its route, bus and operator
// for reporting views
type BookingWithRoute struct {
	Booking
	Route *RouteWithBus `json:"route"`
}

// CreateBookingRequest represents an admission request for seats on a
// route and travel date
type CreateBookingRequest struct {
	RouteID        string         `json:"route_id" binding:"required"`
	TravelDate     string         `json:"travel_date" binding:"required"`
	SeatNumbers    []string       `json:"seat_numbers" binding:"required,min=1"`
	PassengerName  string         `json:"passenger_name" binding:"required"`
	PassengerPhone string         `json:"passenger_phone" binding:"required"`
	PassengerEmail *string        `json:"passenger_email,omitempty"`
	PaymentStatus  PaymentStatus  `json:"payment_status,omitempty"`
	PaymentMethod  *string        `json:"payment_method,omitempty"`
	BookedBy       BookingChannel `json:"booked_by,omitempty"`
	AgentID        *string        `json:"agent_id,omitempty"`
	UserID         *string        `json:"user_id,omitempty"`
	// DeviceInfo is stamped by the handler from the User-Agent header,
	// never taken from the request body.
	DeviceInfo JSONMap `json:"-"`
}

// MaxSeatsPerBooking caps how many seats one booking may hold
const MaxSeatsPerBooking = 10

// Validate checks the request fields that need no store access. Seat
// range checks against the bus capacity happen in the booking service.
func (r *CreateBookingRequest) Validate() error {
	if len(r.SeatNumbers) == 0 {
		return ValidationError("at least one seat must be requested")
	}
	if len(r.SeatNumbers) > MaxSeatsPerBooking {
		return validationErrorf("at most %d seats can be booked at once", MaxSeatsPerBooking)
	}
	seen := make(map[string]bool, len(r.SeatNumbers))
	for _, seat := range r.SeatNumbers {
		if seen[seat] {
			return validationErrorf("seat %s requested more than once", seat)
		}
		seen[seat] = true
	}
	if err := ValidateTravelDate(r.TravelDate); err != nil {
		return err
	}
	if r.PaymentStatus == "" {
		r.PaymentStatus = PaymentStatusPending
	}
	if r.PaymentStatus != PaymentStatusPending && r.PaymentStatus != PaymentStatusPaid {
		return validationErrorf("payment status %q is not allowed on creation", r.PaymentStatus)
	}
	if r.BookedBy == "" {
		r.BookedBy = BookingChannelPassenger
	}
	if r.BookedBy != BookingChannelPassenger && r.BookedBy != BookingChannelAgent {
		return validationErrorf("unknown booking channel %q", r.BookedBy)
	}
	if r.BookedBy == BookingChannelAgent && r.AgentID == nil {
		return ValidationError("agent bookings must carry the agent id")
	}
	return nil
}

// UpdateBookingStatusRequest is a partial status patch. Either field may
// be omitted; supplying neither is rejected.
type UpdateBookingStatusRequest struct {
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
	BookingStatus *BookingStatus `json:"booking_status,omitempty"`
}

// Validate checks that the patch carries at least one recognized field
func (r *UpdateBookingStatusRequest) Validate() error {
	if r.PaymentStatus == nil && r.BookingStatus == nil {
		return ValidationError("payment_status or booking_status is required")
	}
	if r.PaymentStatus != nil {
		switch *r.PaymentStatus {
		case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		default:
			return validationErrorf("unknown payment status %q", *r.PaymentStatus)
		}
	}
	if r.BookingStatus != nil {
		switch *r.BookingStatus {
		case BookingStatusConfirmed, BookingStatusCancelled:
		default:
			return validationErrorf("unknown booking status %q", *r.BookingStatus)
		}
	}
	return nil
}

// IsConfirmed reports whether the booking currently holds its seats
func (b *Booking) IsConfirmed() bool {
	return b.BookingStatus == BookingStatusConfirmed
}

// CanTransitionPayment reports whether the payment status may move to the
// target state. Pending may become paid or failed; paid may become
// refunded; failed and refunded are terminal.
func (b *Booking) CanTransitionPayment(to PaymentStatus) bool {
	switch b.PaymentStatus {
	case PaymentStatusPending:
		return to == PaymentStatusPaid || to == PaymentStatusFailed
	case PaymentStatusPaid:
		return to == PaymentStatusRefunded
	default:
		return false
	}
}

// CanTransitionBooking reports whether the booking status may move to the
// target state. Cancellation is terminal and irreversible.
func (b *Booking) CanTransitionBooking(to BookingStatus) bool {
	return b.BookingStatus == BookingStatusConfirmed && to == BookingStatusCancelled
}
