package services

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/config"
	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/pkg/seat"
)

// BookingService admits seat reservations and drives the booking
// lifecycle. All admissions and cancellations for one (route, travel
// date) partition run under the same lock, so two requests for an
// overlapping seat set can never both commit.
type BookingService struct {
	bookings  database.BookingStore
	routes    database.RouteStore
	buses     database.BusStore
	inventory *InventoryService
	locks     *PartitionLock
	cfg       config.BookingConfig
	logger    *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	stores database.Stores,
	inventory *InventoryService,
	locks *PartitionLock,
	cfg config.BookingConfig,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:  stores.Bookings,
		routes:    stores.Routes,
		buses:     stores.Buses,
		inventory: inventory,
		locks:     locks,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateBooking admits a seat reservation. Request validation and seat
// identifier checks run before the partition lock is taken; the
// occupancy check and the insert run inside it.
func (s *BookingService) CreateBooking(req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	route, err := s.routes.GetRoute(req.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}
	if !route.IsActive {
		return nil, ErrRouteInactive
	}

	bus, err := s.buses.GetBus(route.BusID)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, ErrBusNotFound
	}

	seats, err := s.normalizeSeats(req.SeatNumbers, bus.TotalSeats)
	if err != nil {
		return nil, err
	}

	key := PartitionKey(route.ID, req.TravelDate)
	acquired := false
	for attempt := 0; attempt <= s.cfg.AdmissionRetries; attempt++ {
		if s.locks.Acquire(key, s.cfg.LockWait) {
			acquired = true
			break
		}
		s.logger.WithFields(logrus.Fields{
			"route_id":    route.ID,
			"travel_date": req.TravelDate,
			"attempt":     attempt + 1,
		}).Warn("Booking partition lock wait timed out")
	}
	if !acquired {
		return nil, ErrPartitionBusy
	}
	defer s.locks.Release(key)

	occupied, err := s.inventory.OccupiedSeats(route.ID, req.TravelDate)
	if err != nil {
		return nil, err
	}

	conflicting := []string{}
	for _, st := range seats {
		if occupied[st] {
			conflicting = append(conflicting, st)
		}
	}
	if len(conflicting) > 0 {
		sort.Strings(conflicting)
		return nil, &SeatConflictError{Seats: conflicting}
	}

	booking := &models.Booking{
		UserID:         req.UserID,
		RouteID:        route.ID,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		PassengerEmail: req.PassengerEmail,
		SeatNumbers:    seats,
		TravelDate:     req.TravelDate,
		TotalAmount:    route.Price * float64(len(seats)),
		PaymentStatus:  req.PaymentStatus,
		PaymentMethod:  req.PaymentMethod,
		BookingStatus:  models.BookingStatusConfirmed,
		BookedBy:       req.BookedBy,
		AgentID:        req.AgentID,
		DeviceInfo:     req.DeviceInfo,
	}

	if err := s.bookings.CreateBooking(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"route_id":    route.ID,
		"travel_date": booking.TravelDate,
		"seats":       len(seats),
	}).Info("Booking confirmed")

	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(id string) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// UpdateBookingStatus applies a payment or lifecycle status patch. The
// update runs under the booking's partition lock so that a cancellation
// and a concurrent admission for the freed seats serialize.
func (s *BookingService) UpdateBookingStatus(id string, req *models.UpdateBookingStatusRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.GetBooking(id)
	if err != nil {
		return nil, err
	}

	key := PartitionKey(booking.RouteID, booking.TravelDate)
	if !s.locks.Acquire(key, s.cfg.LockWait) {
		return nil, ErrPartitionBusy
	}
	defer s.locks.Release(key)

	// Re-read inside the lock so concurrent patches serialize.
	booking, err = s.GetBooking(id)
	if err != nil {
		return nil, err
	}

	// Same-state patches are not exempt: cancelling a cancelled booking
	// or re-marking a terminal payment state is an invalid transition.
	if req.PaymentStatus != nil {
		if !booking.CanTransitionPayment(*req.PaymentStatus) {
			return nil, &InvalidTransitionError{
				Field: "payment_status",
				From:  string(booking.PaymentStatus),
				To:    string(*req.PaymentStatus),
			}
		}
		booking.PaymentStatus = *req.PaymentStatus
	}

	if req.BookingStatus != nil {
		if !booking.CanTransitionBooking(*req.BookingStatus) {
			return nil, &InvalidTransitionError{
				Field: "booking_status",
				From:  string(booking.BookingStatus),
				To:    string(*req.BookingStatus),
			}
		}
		booking.BookingStatus = *req.BookingStatus
	}

	if err := s.bookings.UpdateBooking(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"payment_status": booking.PaymentStatus,
		"booking_status": booking.BookingStatus,
	}).Info("Booking status updated")

	return booking, nil
}

// CancelBooking cancels a confirmed booking, releasing its seats
func (s *BookingService) CancelBooking(id string) (*models.Booking, error) {
	cancelled := models.BookingStatusCancelled
	return s.UpdateBookingStatus(id, &models.UpdateBookingStatusRequest{BookingStatus: &cancelled})
}

// BookingsByUser returns a user's bookings joined with route details
func (s *BookingService) BookingsByUser(userID string) ([]models.BookingWithRoute, error) {
	bookings, err := s.bookings.BookingsByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.attachRoutes(bookings)
}

// BookingsByOperator returns every booking on an operator's routes
func (s *BookingService) BookingsByOperator(operatorID string) ([]models.BookingWithRoute, error) {
	routeIDs, err := s.operatorRouteIDs(operatorID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.BookingsByRoutes(routeIDs)
	if err != nil {
		return nil, err
	}
	return s.attachRoutes(bookings)
}

// OccupiedSeats returns the sorted occupied seat list for a departure,
// for seat map rendering
func (s *BookingService) OccupiedSeats(routeID, travelDate string) ([]string, error) {
	if err := models.ValidateTravelDate(travelDate); err != nil {
		return nil, err
	}
	return s.inventory.OccupiedSeatList(routeID, travelDate)
}

// normalizeSeats validates every requested identifier against the bus
// layout and returns the normalized forms. Identifiers that collide
// after normalization ("3b" and "3B") are rejected, same as raw
// duplicates are at validation.
func (s *BookingService) normalizeSeats(requested []string, totalSeats int) ([]string, error) {
	layout := seat.NewLayout(totalSeats, s.cfg.SeatsPerRow)

	seats := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, id := range requested {
		normalized, err := layout.Validate(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSeat, err)
		}
		if seen[normalized] {
			return nil, models.ValidationError(fmt.Sprintf("seat %s requested more than once", normalized))
		}
		seen[normalized] = true
		seats = append(seats, normalized)
	}
	return seats, nil
}

func (s *BookingService) operatorRouteIDs(operatorID string) ([]string, error) {
	buses, err := s.buses.BusesByOperator(operatorID)
	if err != nil {
		return nil, err
	}

	routeIDs := []string{}
	for _, bus := range buses {
		routes, err := s.routes.RoutesByBus(bus.ID)
		if err != nil {
			return nil, err
		}
		for _, route := range routes {
			routeIDs = append(routeIDs, route.ID)
		}
	}
	return routeIDs, nil
}

func (s *BookingService) attachRoutes(bookings []models.Booking) ([]models.BookingWithRoute, error) {
	result := make([]models.BookingWithRoute, 0, len(bookings))
	for _, booking := range bookings {
		withRoute := models.BookingWithRoute{Booking: booking}

		route, err := s.routes.GetRoute(booking.RouteID)
		if err != nil {
			return nil, err
		}
		if route != nil {
			detail := &models.RouteWithBus{Route: *route}
			bus, err := s.buses.GetBus(route.BusID)
			if err != nil {
				return nil, err
			}
			if bus != nil {
				detail.Bus = bus
			}
			withRoute.Route = detail
		}

		result = append(result, withRoute)
	}
	return result, nil
}
