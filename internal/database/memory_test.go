package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobus/booking-backend/internal/models"
)

func TestMemoryStore_AssignsIDs(t *testing.T) {
	store := NewMemoryStore()

	user := &models.User{Username: "nimal", Password: "hash", Role: models.RolePassenger}
	require.NoError(t, store.CreateUser(user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := store.GetUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "nimal", found.Username)
}

func TestMemoryStore_AbsentReturnsNilNil(t *testing.T) {
	store := NewMemoryStore()

	user, err := store.GetUser("missing")
	assert.NoError(t, err)
	assert.Nil(t, user)

	booking, err := store.GetBooking("missing")
	assert.NoError(t, err)
	assert.Nil(t, booking)

	route, err := store.GetRoute("missing")
	assert.NoError(t, err)
	assert.Nil(t, route)
}

func TestMemoryStore_SearchRoutes(t *testing.T) {
	store := NewMemoryStore()

	routes := []*models.Route{
		{BusID: "b1", FromCity: "Colombo", ToCity: "Kandy", IsActive: true},
		{BusID: "b1", FromCity: "Colombo Fort", ToCity: "Galle", IsActive: true},
		{BusID: "b1", FromCity: "Colombo", ToCity: "Kandy", IsActive: false},
		{BusID: "b1", FromCity: "Jaffna", ToCity: "Kandy", IsActive: true},
	}
	for _, r := range routes {
		require.NoError(t, store.CreateRoute(r))
	}

	t.Run("case-insensitive substring", func(t *testing.T) {
		found, err := store.SearchRoutes("colombo", "KANDY")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("partial fragments", func(t *testing.T) {
		found, err := store.SearchRoutes("colom", "gal")
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "Galle", found[0].ToCity)
	})

	t.Run("inactive excluded", func(t *testing.T) {
		found, err := store.SearchRoutes("Jaffna", "Kandy")
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.True(t, found[0].IsActive)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := store.SearchRoutes("Matara", "Ella")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestMemoryStore_ReadsReturnCopies(t *testing.T) {
	store := NewMemoryStore()

	booking := &models.Booking{
		RouteID:        "r1",
		PassengerName:  "Nimal",
		PassengerPhone: "071",
		SeatNumbers:    []string{"1A"},
		TravelDate:     "2026-10-01",
		BookingStatus:  models.BookingStatusConfirmed,
		DeviceInfo:     models.JSONMap{"device_type": "mobile"},
	}
	require.NoError(t, store.CreateBooking(booking))

	read, err := store.GetBooking(booking.ID)
	require.NoError(t, err)

	// Mutating the returned copy must not affect the stored record.
	read.SeatNumbers[0] = "9Z"
	read.BookingStatus = models.BookingStatusCancelled
	read.DeviceInfo["device_type"] = "tablet"

	fresh, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1A"}, []string(fresh.SeatNumbers))
	assert.Equal(t, models.BookingStatusConfirmed, fresh.BookingStatus)
	assert.Equal(t, "mobile", fresh.DeviceInfo["device_type"])
}

func TestMemoryStore_BookingsByRouteAndDate(t *testing.T) {
	store := NewMemoryStore()

	seed := func(routeID, date string) {
		require.NoError(t, store.CreateBooking(&models.Booking{
			RouteID: routeID, TravelDate: date,
			PassengerName: "X", PassengerPhone: "071",
			SeatNumbers:   []string{"1A"},
			BookingStatus: models.BookingStatusConfirmed,
		}))
	}
	seed("r1", "2026-10-01")
	seed("r1", "2026-10-01")
	seed("r1", "2026-10-02")
	seed("r2", "2026-10-01")

	bookings, err := store.BookingsByRouteAndDate("r1", "2026-10-01")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestMemoryStore_DeleteRoute(t *testing.T) {
	store := NewMemoryStore()

	route := &models.Route{BusID: "b1", FromCity: "Colombo", ToCity: "Kandy", IsActive: true}
	require.NoError(t, store.CreateRoute(route))

	deleted, err := store.DeleteRoute(route.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteRoute(route.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
