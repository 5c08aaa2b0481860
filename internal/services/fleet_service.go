package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

// Fleet errors
var (
	ErrOperatorNotApproved = errors.New("operator is not approved")
)

// FleetService manages an operator's buses and the routes they serve
type FleetService struct {
	buses     database.BusStore
	routes    database.RouteStore
	operators database.OperatorStore
	logger    *logrus.Logger
}

// NewFleetService creates a new FleetService
func NewFleetService(stores database.Stores, logger *logrus.Logger) *FleetService {
	return &FleetService{
		buses:     stores.Buses,
		routes:    stores.Routes,
		operators: stores.Operators,
		logger:    logger,
	}
}

// CreateBus adds a bus to an approved operator's fleet
func (s *FleetService) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	operator, err := s.operators.GetOperator(req.OperatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, ErrOperatorNotFound
	}
	if !operator.IsApproved() {
		return nil, ErrOperatorNotApproved
	}

	bus := &models.Bus{
		OperatorID: req.OperatorID,
		BusNumber:  req.BusNumber,
		BusType:    req.BusType,
		TotalSeats: req.TotalSeats,
		Amenities:  req.Amenities,
		Status:     models.BusStatusActive,
	}
	if err := s.buses.CreateBus(bus); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"bus_id":      bus.ID,
		"operator_id": bus.OperatorID,
		"total_seats": bus.TotalSeats,
	}).Info("Bus created")

	return bus, nil
}

// GetBus retrieves a bus by ID
func (s *FleetService) GetBus(id string) (*models.Bus, error) {
	bus, err := s.buses.GetBus(id)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, ErrBusNotFound
	}
	return bus, nil
}

// BusesByOperator returns an operator's fleet
func (s *FleetService) BusesByOperator(operatorID string) ([]models.Bus, error) {
	return s.buses.BusesByOperator(operatorID)
}

// UpdateBus applies a patch to a bus record
func (s *FleetService) UpdateBus(id string, req *models.UpdateBusRequest) (*models.Bus, error) {
	bus, err := s.GetBus(id)
	if err != nil {
		return nil, err
	}

	if req.BusNumber != nil {
		bus.BusNumber = *req.BusNumber
	}
	if req.BusType != nil {
		bus.BusType = *req.BusType
	}
	if req.TotalSeats != nil {
		if *req.TotalSeats < 1 {
			return nil, models.ValidationError("total seats must be positive")
		}
		bus.TotalSeats = *req.TotalSeats
	}
	if req.Amenities != nil {
		bus.Amenities = req.Amenities
	}
	if req.Status != nil {
		switch *req.Status {
		case models.BusStatusActive, models.BusStatusMaintenance, models.BusStatusInactive:
			bus.Status = *req.Status
		default:
			return nil, models.ValidationError("unknown bus status")
		}
	}

	if err := s.buses.UpdateBus(bus); err != nil {
		return nil, err
	}
	return bus, nil
}

// DeleteBus removes a bus from the fleet. Buses with published routes
// cannot be deleted; retire the routes first.
func (s *FleetService) DeleteBus(id string) error {
	routes, err := s.routes.RoutesByBus(id)
	if err != nil {
		return err
	}
	if len(routes) > 0 {
		return models.ValidationError("bus still has published routes")
	}

	deleted, err := s.buses.DeleteBus(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBusNotFound
	}
	return nil
}

// CreateRoute publishes a route served by an existing bus
func (s *FleetService) CreateRoute(req *models.CreateRouteRequest) (*models.Route, error) {
	bus, err := s.buses.GetBus(req.BusID)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, ErrBusNotFound
	}

	route := &models.Route{
		BusID:         req.BusID,
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Duration:      req.Duration,
		Price:         req.Price,
		OperatingDays: req.OperatingDays,
		IsActive:      true,
	}
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}

	if err := s.routes.CreateRoute(route); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"route_id": route.ID,
		"bus_id":   route.BusID,
		"from":     route.FromCity,
		"to":       route.ToCity,
	}).Info("Route published")

	return route, nil
}

// GetRoute retrieves a route by ID
func (s *FleetService) GetRoute(id string) (*models.Route, error) {
	route, err := s.routes.GetRoute(id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}
	return route, nil
}

// RoutesByBus returns the routes served by a bus
func (s *FleetService) RoutesByBus(busID string) ([]models.Route, error) {
	return s.routes.RoutesByBus(busID)
}

// RoutesByOperator returns every route across an operator's fleet
func (s *FleetService) RoutesByOperator(operatorID string) ([]models.Route, error) {
	buses, err := s.buses.BusesByOperator(operatorID)
	if err != nil {
		return nil, err
	}

	result := []models.Route{}
	for _, bus := range buses {
		routes, err := s.routes.RoutesByBus(bus.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, routes...)
	}
	return result, nil
}

// UpdateRoute applies a patch to a published route. Existing bookings
// keep the price they were admitted at.
func (s *FleetService) UpdateRoute(id string, req *models.UpdateRouteRequest) (*models.Route, error) {
	route, err := s.GetRoute(id)
	if err != nil {
		return nil, err
	}

	if req.FromCity != nil {
		route.FromCity = *req.FromCity
	}
	if req.ToCity != nil {
		route.ToCity = *req.ToCity
	}
	if req.DepartureTime != nil {
		route.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		route.ArrivalTime = *req.ArrivalTime
	}
	if req.Duration != nil {
		route.Duration = *req.Duration
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, models.ValidationError("price must be positive")
		}
		route.Price = *req.Price
	}
	if req.OperatingDays != nil {
		route.OperatingDays = req.OperatingDays
	}
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}

	if err := s.routes.UpdateRoute(route); err != nil {
		return nil, err
	}
	return route, nil
}

// DeleteRoute removes a route. Past bookings keep their route ID; only
// the schedule entry disappears.
func (s *FleetService) DeleteRoute(id string) error {
	deleted, err := s.routes.DeleteRoute(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRouteNotFound
	}
	return nil
}
