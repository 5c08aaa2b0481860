package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

// InventoryService resolves which seats are occupied on a route
// departure. Only confirmed bookings hold seats; cancelled bookings
// release theirs immediately.
type InventoryService struct {
	bookings database.BookingStore
	logger   *logrus.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(bookings database.BookingStore, logger *logrus.Logger) *InventoryService {
	return &InventoryService{
		bookings: bookings,
		logger:   logger,
	}
}

// OccupiedSeats returns the set of seats held by confirmed bookings on
// the given route and travel date. Unknown routes yield an empty set,
// existence checks belong to the caller.
func (s *InventoryService) OccupiedSeats(routeID, travelDate string) (map[string]bool, error) {
	bookings, err := s.bookings.BookingsByRouteAndDate(routeID, travelDate)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool)
	for _, booking := range bookings {
		if booking.BookingStatus != models.BookingStatusConfirmed {
			continue
		}
		for _, seat := range booking.SeatNumbers {
			occupied[seat] = true
		}
	}
	return occupied, nil
}

// OccupiedSeatList returns the occupied seats as a sorted slice for
// API responses.
func (s *InventoryService) OccupiedSeatList(routeID, travelDate string) ([]string, error) {
	occupied, err := s.OccupiedSeats(routeID, travelDate)
	if err != nil {
		return nil, err
	}

	seats := make([]string, 0, len(occupied))
	for seat := range occupied {
		seats = append(seats, seat)
	}
	sort.Strings(seats)
	return seats, nil
}
