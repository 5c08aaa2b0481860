package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
)

// SearchService answers route search queries with live seat availability
type SearchService struct {
	routes    database.RouteStore
	buses     database.BusStore
	operators database.OperatorStore
	inventory *InventoryService
	logger    *logrus.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(stores database.Stores, inventory *InventoryService, logger *logrus.Logger) *SearchService {
	return &SearchService{
		routes:    stores.Routes,
		buses:     stores.Buses,
		operators: stores.Operators,
		inventory: inventory,
		logger:    logger,
	}
}

// SearchRoutes finds active routes matching the city fragments and
// enriches each with its bus, operator and the occupancy of the
// requested travel date. Routes whose bus or operator record is missing
// are skipped rather than failing the whole search.
func (s *SearchService) SearchRoutes(req *models.SearchRoutesRequest) ([]models.RouteAvailability, error) {
	if err := models.ValidateTravelDate(req.Date); err != nil {
		return nil, err
	}

	routes, err := s.routes.SearchRoutes(req.From, req.To)
	if err != nil {
		return nil, err
	}

	results := make([]models.RouteAvailability, 0, len(routes))
	for _, route := range routes {
		bus, err := s.buses.GetBus(route.BusID)
		if err != nil {
			return nil, err
		}
		if bus == nil {
			s.logger.WithField("route_id", route.ID).Warn("Route references a missing bus, skipping")
			continue
		}

		operator, err := s.operators.GetOperator(bus.OperatorID)
		if err != nil {
			return nil, err
		}
		if operator == nil {
			continue
		}

		booked, err := s.inventory.OccupiedSeatList(route.ID, req.Date)
		if err != nil {
			return nil, err
		}

		results = append(results, models.RouteAvailability{
			RouteWithBus: models.RouteWithBus{
				Route:    route,
				Bus:      bus,
				Operator: operator,
			},
			AvailableSeats: bus.TotalSeats - len(booked),
			BookedSeats:    booked,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DepartureTime != results[j].DepartureTime {
			return results[i].DepartureTime < results[j].DepartureTime
		}
		return results[i].ID < results[j].ID
	})

	return results, nil
}

// RouteAvailability returns one route with its occupancy for a travel
// date, for the route detail page.
func (s *SearchService) RouteAvailability(routeID, travelDate string) (*models.RouteAvailability, error) {
	if err := models.ValidateTravelDate(travelDate); err != nil {
		return nil, err
	}

	route, err := s.routes.GetRoute(routeID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	bus, err := s.buses.GetBus(route.BusID)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, ErrBusNotFound
	}

	operator, err := s.operators.GetOperator(bus.OperatorID)
	if err != nil {
		return nil, err
	}

	booked, err := s.inventory.OccupiedSeatList(route.ID, travelDate)
	if err != nil {
		return nil, err
	}

	return &models.RouteAvailability{
		RouteWithBus: models.RouteWithBus{
			Route:    *route,
			Bus:      bus,
			Operator: operator,
		},
		AvailableSeats: bus.TotalSeats - len(booked),
		BookedSeats:    booked,
	}, nil
}
