package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mobus/booking-backend/internal/models"
)

// RouteRepository handles database operations for the routes table
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `
	id, bus_id, from_city, to_city, departure_time, arrival_time,
	duration, price, operating_days, is_active, created_at
`

// CreateRoute inserts a new route
func (r *RouteRepository) CreateRoute(route *models.Route) error {
	query := `
		INSERT INTO routes (
			id, bus_id, from_city, to_city, departure_time, arrival_time,
			duration, price, operating_days, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		RETURNING created_at
	`

	if route.ID == "" {
		route.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		route.ID, route.BusID, route.FromCity, route.ToCity, route.DepartureTime, route.ArrivalTime,
		route.Duration, route.Price, route.OperatingDays, route.IsActive,
	).Scan(&route.CreatedAt)
}

// GetRoute retrieves a route by ID. Returns (nil, nil) when absent.
func (r *RouteRepository) GetRoute(id string) (*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	route, err := r.scanRoute(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return route, err
}

// RoutesByBus retrieves every route served by a bus
func (r *RouteRepository) RoutesByBus(busID string) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE bus_id = $1 ORDER BY departure_time`

	rows, err := r.db.Query(query, busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRoutes(rows)
}

// UpdateRoute updates a route record
func (r *RouteRepository) UpdateRoute(route *models.Route) error {
	query := `
		UPDATE routes
		SET from_city = $2, to_city = $3, departure_time = $4, arrival_time = $5,
			duration = $6, price = $7, operating_days = $8, is_active = $9
		WHERE id = $1
	`

	_, err := r.db.Exec(
		query,
		route.ID, route.FromCity, route.ToCity, route.DepartureTime, route.ArrivalTime,
		route.Duration, route.Price, route.OperatingDays, route.IsActive,
	)
	return err
}

// DeleteRoute removes a route, reporting whether it existed
func (r *RouteRepository) DeleteRoute(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// SearchRoutes filters active routes by case-insensitive substring match
// on the origin and destination cities
func (r *RouteRepository) SearchRoutes(fromCity, toCity string) ([]models.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM routes
		WHERE from_city ILIKE '%' || $1 || '%'
		  AND to_city ILIKE '%' || $2 || '%'
		  AND is_active = TRUE
		ORDER BY departure_time
	`

	rows, err := r.db.Query(query, fromCity, toCity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRoutes(rows)
}

func (r *RouteRepository) scanRoute(row scanner) (*models.Route, error) {
	route := &models.Route{}

	err := row.Scan(
		&route.ID, &route.BusID, &route.FromCity, &route.ToCity, &route.DepartureTime, &route.ArrivalTime,
		&route.Duration, &route.Price, &route.OperatingDays, &route.IsActive, &route.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return route, nil
}

func (r *RouteRepository) scanRoutes(rows *sql.Rows) ([]models.Route, error) {
	routes := []models.Route{}

	for rows.Next() {
		route, err := r.scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}

	return routes, rows.Err()
}
