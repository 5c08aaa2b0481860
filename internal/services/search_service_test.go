package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

type searchFixture struct {
	stores  database.Stores
	service *SearchService
	booking *BookingService
	bus     *models.Bus
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()

	stores := database.NewMemoryStore().Stores()
	logger := testLogger()
	inventory := NewInventoryService(stores.Bookings, logger)

	operator := &models.Operator{
		UserID:       "user-op",
		CompanyName:  "Highway Express",
		License:      "LIC-100",
		ContactEmail: "ops@highway.example",
		ContactPhone: "0771234567",
		Status:       models.OperatorStatusApproved,
	}
	require.NoError(t, stores.Operators.CreateOperator(operator))

	bus := &models.Bus{
		OperatorID: operator.ID,
		BusNumber:  "NB-1234",
		BusType:    "luxury",
		TotalSeats: 40,
		Status:     models.BusStatusActive,
	}
	require.NoError(t, stores.Buses.CreateBus(bus))

	return &searchFixture{
		stores:  stores,
		service: NewSearchService(stores, inventory, logger),
		booking: NewBookingService(stores, inventory, NewPartitionLock(), testBookingConfig(), logger),
		bus:     bus,
	}
}

func (f *searchFixture) addRoute(t *testing.T, from, to, departure string, active bool) *models.Route {
	t.Helper()
	route := &models.Route{
		BusID:         f.bus.ID,
		FromCity:      from,
		ToCity:        to,
		DepartureTime: departure,
		ArrivalTime:   "12:00",
		Duration:      "4h",
		Price:         1200,
		IsActive:      active,
	}
	require.NoError(t, f.stores.Routes.CreateRoute(route))
	return route
}

func TestSearchRoutes_CaseInsensitiveSubstring(t *testing.T) {
	f := newSearchFixture(t)
	f.addRoute(t, "Colombo", "Kandy", "08:00", true)

	results, err := f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "colom", To: "KAND", Date: testDate,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Colombo", results[0].FromCity)
	assert.Equal(t, 40, results[0].AvailableSeats)
	assert.Empty(t, results[0].BookedSeats)
	require.NotNil(t, results[0].Bus)
	assert.Equal(t, "NB-1234", results[0].Bus.BusNumber)
	require.NotNil(t, results[0].Operator)
}

func TestSearchRoutes_ExcludesInactive(t *testing.T) {
	f := newSearchFixture(t)
	f.addRoute(t, "Colombo", "Kandy", "08:00", true)
	f.addRoute(t, "Colombo", "Kandy", "09:00", false)

	results, err := f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "Colombo", To: "Kandy", Date: testDate,
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchRoutes_NoMatches(t *testing.T) {
	f := newSearchFixture(t)
	f.addRoute(t, "Colombo", "Kandy", "08:00", true)

	results, err := f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "Galle", To: "Jaffna", Date: testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRoutes_InvalidDate(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "Colombo", To: "Kandy", Date: "01-10-2026",
	})
	assert.Error(t, err)
}

func TestSearchRoutes_AvailabilityReflectsBookings(t *testing.T) {
	f := newSearchFixture(t)
	route := f.addRoute(t, "Colombo", "Kandy", "08:00", true)

	_, err := f.booking.CreateBooking(&models.CreateBookingRequest{
		RouteID:        route.ID,
		TravelDate:     testDate,
		SeatNumbers:    []string{"1A", "1B", "1C", "1D", "2A"},
		PassengerName:  "Nimal Perera",
		PassengerPhone: "0779876543",
	})
	require.NoError(t, err)

	results, err := f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "Colombo", To: "Kandy", Date: testDate,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 35, results[0].AvailableSeats)
	assert.Equal(t, []string{"1A", "1B", "1C", "1D", "2A"}, results[0].BookedSeats)

	// Another date is untouched.
	results, err = f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "Colombo", To: "Kandy", Date: "2026-10-02",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 40, results[0].AvailableSeats)
}

func TestSearchRoutes_SortedByDeparture(t *testing.T) {
	f := newSearchFixture(t)
	f.addRoute(t, "Colombo", "Kandy", "14:00", true)
	f.addRoute(t, "Colombo", "Kandy", "06:30", true)
	f.addRoute(t, "Colombo", "Kandy", "10:15", true)

	results, err := f.service.SearchRoutes(&models.SearchRoutesRequest{
		From: "Colombo", To: "Kandy", Date: testDate,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "06:30", results[0].DepartureTime)
	assert.Equal(t, "10:15", results[1].DepartureTime)
	assert.Equal(t, "14:00", results[2].DepartureTime)
}

func TestRouteAvailability(t *testing.T) {
	f := newSearchFixture(t)
	route := f.addRoute(t, "Colombo", "Galle", "07:00", true)

	detail, err := f.service.RouteAvailability(route.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, 40, detail.AvailableSeats)

	_, err = f.service.RouteAvailability("missing", testDate)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}
