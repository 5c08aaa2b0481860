package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the booking and search services. Handlers
// translate these into HTTP status codes with errors.Is / errors.As.
var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrBusNotFound     = errors.New("bus not found")
	ErrRouteInactive   = errors.New("route is not open for booking")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidSeat     = errors.New("invalid seat identifier")
	ErrPartitionBusy   = errors.New("booking partition is busy, try again")
)

// SeatConflictError is returned when one or more requested seats are
// already held by a confirmed booking on the same route and travel date.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}

// InvalidTransitionError reports a status change that the booking
// lifecycle does not allow.
type InvalidTransitionError struct {
	Field string
	From  string
	To    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %q to %q", e.Field, e.From, e.To)
}
