package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobus/booking-backend/internal/config"
	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/middleware"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
)

const testDate = "2026-10-01"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// testEnv bundles the handler under test with its seeded backing data
type testEnv struct {
	stores  database.Stores
	handler *BookingHandler
	route   *models.Route
}

func setupBookingTest(t *testing.T) *testEnv {
	t.Helper()

	stores := database.NewMemoryStore().Stores()
	logger := testLogger()

	operator := &models.Operator{
		UserID: "user-op", CompanyName: "Highway Express", License: "LIC-1",
		ContactEmail: "ops@highway.example", ContactPhone: "0771234567",
		Status: models.OperatorStatusApproved,
	}
	require.NoError(t, stores.Operators.CreateOperator(operator))

	bus := &models.Bus{
		OperatorID: operator.ID, BusNumber: "NB-1", BusType: "luxury",
		TotalSeats: 40, Status: models.BusStatusActive,
	}
	require.NoError(t, stores.Buses.CreateBus(bus))

	route := &models.Route{
		BusID: bus.ID, FromCity: "Colombo", ToCity: "Kandy",
		DepartureTime: "08:00", ArrivalTime: "11:30", Duration: "3h 30m",
		Price: 1500, IsActive: true,
	}
	require.NoError(t, stores.Routes.CreateRoute(route))

	cfg := config.BookingConfig{
		LockWait:         500 * time.Millisecond,
		AdmissionRetries: 1,
		SeatsPerRow:      4,
	}
	inventory := services.NewInventoryService(stores.Bookings, logger)
	bookingService := services.NewBookingService(stores, inventory, services.NewPartitionLock(), cfg, logger)

	return &testEnv{
		stores:  stores,
		handler: NewBookingHandler(bookingService),
		route:   route,
	}
}

// newAuthedContext builds a Gin test context carrying an authenticated
// user and an optional JSON body, simulating AuthMiddleware.
func newAuthedContext(t *testing.T, userID string, role models.Role, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 12) Chrome/120.0")

	c.Set(middleware.UserContextKey, middleware.UserContext{
		UserID:   userID,
		Username: "testuser",
		Role:     role,
	})

	return c, w
}

func bookingBody(routeID string, seats ...string) map[string]interface{} {
	return map[string]interface{}{
		"route_id":        routeID,
		"travel_date":     testDate,
		"seat_numbers":    seats,
		"passenger_name":  "Nimal Perera",
		"passenger_phone": "0779876543",
	}
}

func TestCreateBookingHandler(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "1A", "1B"))
	env.handler.CreateBooking(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, models.BookingStatusConfirmed, booking.BookingStatus)
	assert.Equal(t, []string{"1A", "1B"}, []string(booking.SeatNumbers))
	require.NotNil(t, booking.UserID)
	assert.Equal(t, "user-1", *booking.UserID)
	assert.NotEmpty(t, booking.DeviceInfo["device_type"])

	// Device info is recorded with the booking, not just echoed back.
	stored, err := env.stores.Bookings.GetBooking(booking.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, booking.DeviceInfo, stored.DeviceInfo)
}

func TestCreateBookingHandler_Conflict(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "1A"))
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = newAuthedContext(t, "user-2", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "1A", "1B"))
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "seats_unavailable", resp["error"])
	assert.Equal(t, []interface{}{"1A"}, resp["conflicting_seats"])
}

func TestCreateBookingHandler_InvalidBody(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", map[string]interface{}{
		"route_id": env.route.ID,
	})
	env.handler.CreateBooking(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandler_UnknownRoute(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody("missing", "1A"))
	env.handler.CreateBooking(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBookingHandler_AgentChannel(t *testing.T) {
	env := setupBookingTest(t)

	body := bookingBody(env.route.ID, "1A")
	body["booked_by"] = "agent"

	// Passengers cannot book through the agent channel.
	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", body)
	env.handler.CreateBooking(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Agents can, and the agent ID is stamped from the token.
	c, w = newAuthedContext(t, "agent-1", models.RoleAgent, http.MethodPost, "/api/bookings", body)
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	require.NotNil(t, booking.AgentID)
	assert.Equal(t, "agent-1", *booking.AgentID)
}

func TestGetBookingHandler_Ownership(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "1A"))
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	get := func(userID string, role models.Role) int {
		c, w := newAuthedContext(t, userID, role, http.MethodGet, "/api/bookings/"+booking.ID, nil)
		c.Params = gin.Params{{Key: "id", Value: booking.ID}}
		env.handler.GetBooking(c)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("user-1", models.RolePassenger))
	assert.Equal(t, http.StatusForbidden, get("user-2", models.RolePassenger))
	assert.Equal(t, http.StatusOK, get("admin-1", models.RoleAdmin))
}

func TestUpdateBookingStatusHandler_InvalidTransition(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "1A"))
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	c, w = newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPatch, "/api/bookings/"+booking.ID+"/status", map[string]string{
		"payment_status": "refunded",
	})
	c.Params = gin.Params{{Key: "id", Value: booking.ID}}
	env.handler.UpdateBookingStatus(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_transition", resp["error"])
}

func TestUpdateBookingStatusHandler_Cancel(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "2A"))
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	c, w = newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPatch, "/api/bookings/"+booking.ID+"/status", map[string]string{
		"booking_status": "cancelled",
	})
	c.Params = gin.Params{{Key: "id", Value: booking.ID}}
	env.handler.UpdateBookingStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.BookingStatusCancelled, updated.BookingStatus)
}

func TestOccupiedSeatsHandler(t *testing.T) {
	env := setupBookingTest(t)

	c, w := newAuthedContext(t, "user-1", models.RolePassenger, http.MethodPost, "/api/bookings", bookingBody(env.route.ID, "1A", "3C"))
	env.handler.CreateBooking(c)
	require.Equal(t, http.StatusCreated, w.Code)

	gin.SetMode(gin.TestMode)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/routes/"+env.route.ID+"/seats?date="+testDate, nil)
	c.Params = gin.Params{{Key: "id", Value: env.route.ID}}
	env.handler.OccupiedSeats(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []interface{}{"1A", "3C"}, resp["booked_seats"])
}
