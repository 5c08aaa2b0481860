package database

import "github.com/mobus/booking-backend/internal/models"

// Store lookups return (nil, nil) when the entity does not exist; a
// non-nil error always means the store itself failed.

// UserStore handles user account persistence
type UserStore interface {
	CreateUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) error
	UsersByRole(role models.Role) ([]models.User, error)
	ListUsers() ([]models.User, error)
}

// OperatorStore handles operator company persistence
type OperatorStore interface {
	CreateOperator(operator *models.Operator) error
	GetOperator(id string) (*models.Operator, error)
	GetOperatorByUserID(userID string) (*models.Operator, error)
	UpdateOperator(operator *models.Operator) error
	OperatorsByStatus(status models.OperatorStatus) ([]models.Operator, error)
	ListOperators() ([]models.Operator, error)
}

// BusStore handles fleet persistence
type BusStore interface {
	CreateBus(bus *models.Bus) error
	GetBus(id string) (*models.Bus, error)
	BusesByOperator(operatorID string) ([]models.Bus, error)
	UpdateBus(bus *models.Bus) error
	DeleteBus(id string) (bool, error)
}

// RouteStore handles scheduled route persistence
type RouteStore interface {
	CreateRoute(route *models.Route) error
	GetRoute(id string) (*models.Route, error)
	RoutesByBus(busID string) ([]models.Route, error)
	UpdateRoute(route *models.Route) error
	DeleteRoute(id string) (bool, error)
	// SearchRoutes filters active routes whose cities contain the given
	// fragments, case-insensitively.
	SearchRoutes(fromCity, toCity string) ([]models.Route, error)
}

// BookingStore handles booking persistence. Bookings are never deleted;
// cancellation is a status update.
type BookingStore interface {
	CreateBooking(booking *models.Booking) error
	GetBooking(id string) (*models.Booking, error)
	UpdateBooking(booking *models.Booking) error
	// BookingsByRouteAndDate returns every booking of the (route, date)
	// partition regardless of status; callers filter by status.
	BookingsByRouteAndDate(routeID, travelDate string) ([]models.Booking, error)
	BookingsByUser(userID string) ([]models.Booking, error)
	BookingsByRoutes(routeIDs []string) ([]models.Booking, error)
	ListBookings() ([]models.Booking, error)
}

// ComplaintStore handles support ticket persistence
type ComplaintStore interface {
	CreateComplaint(complaint *models.Complaint) error
	GetComplaint(id string) (*models.Complaint, error)
	UpdateComplaint(complaint *models.Complaint) error
	ComplaintsByUser(userID string) ([]models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
}

// Stores bundles every store the application needs, so main can wire a
// single backend (Postgres or in-memory) through one value.
type Stores struct {
	Users      UserStore
	Operators  OperatorStore
	Buses      BusStore
	Routes     RouteStore
	Bookings   BookingStore
	Complaints ComplaintStore
}
