package services

import (
	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

// AnalyticsService aggregates booking and revenue figures for the
// operator and admin dashboards. Revenue counts paid bookings only;
// cancellation does not claw a paid amount back, refunds do.
type AnalyticsService struct {
	stores database.Stores
	logger *logrus.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(stores database.Stores, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		stores: stores,
		logger: logger,
	}
}

// OperatorStats aggregates fleet size and sales for one operator
func (s *AnalyticsService) OperatorStats(operatorID string) (*models.OperatorStats, error) {
	operator, err := s.stores.Operators.GetOperator(operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, ErrOperatorNotFound
	}

	buses, err := s.stores.Buses.BusesByOperator(operatorID)
	if err != nil {
		return nil, err
	}

	routeIDs := []string{}
	totalRoutes := 0
	for _, bus := range buses {
		routes, err := s.stores.Routes.RoutesByBus(bus.ID)
		if err != nil {
			return nil, err
		}
		totalRoutes += len(routes)
		for _, route := range routes {
			routeIDs = append(routeIDs, route.ID)
		}
	}

	bookings, err := s.stores.Bookings.BookingsByRoutes(routeIDs)
	if err != nil {
		return nil, err
	}

	stats := &models.OperatorStats{
		TotalBuses:  len(buses),
		TotalRoutes: totalRoutes,
	}
	for _, booking := range bookings {
		stats.TotalBookings++
		if booking.BookingStatus == models.BookingStatusCancelled {
			stats.CancelledCount++
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			stats.PaidBookings++
			stats.TotalRevenue += booking.TotalAmount
			stats.SeatsSold += len(booking.SeatNumbers)
		}
	}
	return stats, nil
}

// PlatformStats aggregates platform-wide figures for the admin dashboard
func (s *AnalyticsService) PlatformStats() (*models.PlatformStats, error) {
	users, err := s.stores.Users.ListUsers()
	if err != nil {
		return nil, err
	}

	operators, err := s.stores.Operators.ListOperators()
	if err != nil {
		return nil, err
	}

	bookings, err := s.stores.Bookings.ListBookings()
	if err != nil {
		return nil, err
	}

	complaints, err := s.stores.Complaints.ListComplaints()
	if err != nil {
		return nil, err
	}

	stats := &models.PlatformStats{
		TotalUsers:      len(users),
		TotalOperators:  len(operators),
		TotalComplaints: len(complaints),
	}
	for _, booking := range bookings {
		stats.TotalBookings++
		if booking.PaymentStatus == models.PaymentStatusPaid {
			stats.PaidBookings++
			stats.TotalRevenue += booking.TotalAmount
		}
	}
	for _, complaint := range complaints {
		if complaint.Status == models.ComplaintStatusOpen || complaint.Status == models.ComplaintStatusInProgress {
			stats.OpenComplaints++
		}
	}
	return stats, nil
}
