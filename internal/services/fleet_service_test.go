package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

func newFleetFixture(t *testing.T, status models.OperatorStatus) (*FleetService, *models.Operator, database.Stores) {
	t.Helper()

	stores := database.NewMemoryStore().Stores()
	operator := &models.Operator{
		UserID:       "user-op",
		CompanyName:  "Highway Express",
		License:      "LIC-100",
		ContactEmail: "ops@highway.example",
		ContactPhone: "0771234567",
		Status:       status,
	}
	require.NoError(t, stores.Operators.CreateOperator(operator))

	return NewFleetService(stores, testLogger()), operator, stores
}

func TestCreateBus_RequiresApproval(t *testing.T) {
	service, operator, _ := newFleetFixture(t, models.OperatorStatusPending)

	_, err := service.CreateBus(&models.CreateBusRequest{
		OperatorID: operator.ID,
		BusNumber:  "NB-1",
		BusType:    "luxury",
		TotalSeats: 40,
	})
	assert.ErrorIs(t, err, ErrOperatorNotApproved)
}

func TestCreateBus(t *testing.T) {
	service, operator, _ := newFleetFixture(t, models.OperatorStatusApproved)

	bus, err := service.CreateBus(&models.CreateBusRequest{
		OperatorID: operator.ID,
		BusNumber:  "NB-1",
		BusType:    "semi-luxury",
		TotalSeats: 54,
		Amenities:  []string{"AC", "WiFi"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, bus.ID)
	assert.Equal(t, models.BusStatusActive, bus.Status)
	assert.Equal(t, 54, bus.TotalSeats)
}

func TestCreateRoute_UnknownBus(t *testing.T) {
	service, _, _ := newFleetFixture(t, models.OperatorStatusApproved)

	_, err := service.CreateRoute(&models.CreateRouteRequest{
		BusID:         "missing",
		FromCity:      "Colombo",
		ToCity:        "Kandy",
		DepartureTime: "08:00",
		ArrivalTime:   "11:30",
		Duration:      "3h 30m",
		Price:         1500,
	})
	assert.ErrorIs(t, err, ErrBusNotFound)
}

func TestDeleteBus_BlockedByRoutes(t *testing.T) {
	service, operator, _ := newFleetFixture(t, models.OperatorStatusApproved)

	bus, err := service.CreateBus(&models.CreateBusRequest{
		OperatorID: operator.ID,
		BusNumber:  "NB-1",
		BusType:    "luxury",
		TotalSeats: 40,
	})
	require.NoError(t, err)

	route, err := service.CreateRoute(&models.CreateRouteRequest{
		BusID:         bus.ID,
		FromCity:      "Colombo",
		ToCity:        "Kandy",
		DepartureTime: "08:00",
		ArrivalTime:   "11:30",
		Duration:      "3h 30m",
		Price:         1500,
	})
	require.NoError(t, err)

	assert.Error(t, service.DeleteBus(bus.ID))

	require.NoError(t, service.DeleteRoute(route.ID))
	assert.NoError(t, service.DeleteBus(bus.ID))
}

func TestUpdateRoute(t *testing.T) {
	service, operator, _ := newFleetFixture(t, models.OperatorStatusApproved)

	bus, err := service.CreateBus(&models.CreateBusRequest{
		OperatorID: operator.ID, BusNumber: "NB-1", BusType: "luxury", TotalSeats: 40,
	})
	require.NoError(t, err)

	route, err := service.CreateRoute(&models.CreateRouteRequest{
		BusID: bus.ID, FromCity: "Colombo", ToCity: "Kandy",
		DepartureTime: "08:00", ArrivalTime: "11:30", Duration: "3h 30m", Price: 1500,
	})
	require.NoError(t, err)
	assert.True(t, route.IsActive)

	newPrice := 1800.0
	inactive := false
	updated, err := service.UpdateRoute(route.ID, &models.UpdateRouteRequest{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, updated.Price)
	assert.False(t, updated.IsActive)

	badPrice := -5.0
	_, err = service.UpdateRoute(route.ID, &models.UpdateRouteRequest{Price: &badPrice})
	assert.Error(t, err)
}
