package database

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mobus/booking-backend/internal/models"
)

// MemoryStore is a mutex-guarded in-memory implementation of every store.
// It is the default backend when no DATABASE_URL is configured and the
// backend used by tests. Read methods return copies so callers never
// observe a record mid-update.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]*models.User
	operators  map[string]*models.Operator
	buses      map[string]*models.Bus
	routes     map[string]*models.Route
	bookings   map[string]*models.Booking
	complaints map[string]*models.Complaint
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]*models.User),
		operators:  make(map[string]*models.Operator),
		buses:      make(map[string]*models.Bus),
		routes:     make(map[string]*models.Route),
		bookings:   make(map[string]*models.Booking),
		complaints: make(map[string]*models.Complaint),
	}
}

// Stores returns the store bundle backed by this instance
func (s *MemoryStore) Stores() Stores {
	return Stores{
		Users:      s,
		Operators:  s,
		Buses:      s,
		Routes:     s,
		Bookings:   s,
		Complaints: s,
	}
}

// ============================================================================
// USERS
// ============================================================================

// CreateUser stores a new user, assigning ID and creation time if unset
func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillMeta(&user.ID, &user.CreatedAt)
	stored := *user
	s.users[stored.ID] = &stored
	return nil
}

// GetUser returns the user by ID, or nil when absent
func (s *MemoryStore) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// GetUserByUsername returns the user with the given username, or nil
func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

// UpdateUser replaces the stored user record
func (s *MemoryStore) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil
	}
	stored := *user
	s.users[stored.ID] = &stored
	return nil
}

// UsersByRole returns all users with the given role
func (s *MemoryStore) UsersByRole(role models.Role) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.User{}
	for _, user := range s.users {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	return result, nil
}

// ListUsers returns every user
func (s *MemoryStore) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, *user)
	}
	return result, nil
}

// ============================================================================
// OPERATORS
// ============================================================================

// CreateOperator stores a new operator
func (s *MemoryStore) CreateOperator(operator *models.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillMeta(&operator.ID, &operator.CreatedAt)
	stored := *operator
	s.operators[stored.ID] = &stored
	return nil
}

// GetOperator returns the operator by ID, or nil when absent
func (s *MemoryStore) GetOperator(id string) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	operator, ok := s.operators[id]
	if !ok {
		return nil, nil
	}
	copied := *operator
	return &copied, nil
}

// GetOperatorByUserID returns the operator owned by the given user, or nil
func (s *MemoryStore) GetOperatorByUserID(userID string) (*models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, operator := range s.operators {
		if operator.UserID == userID {
			copied := *operator
			return &copied, nil
		}
	}
	return nil, nil
}

// UpdateOperator replaces the stored operator record
func (s *MemoryStore) UpdateOperator(operator *models.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.operators[operator.ID]; !ok {
		return nil
	}
	stored := *operator
	s.operators[stored.ID] = &stored
	return nil
}

// OperatorsByStatus returns all operators in the given approval state
func (s *MemoryStore) OperatorsByStatus(status models.OperatorStatus) ([]models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Operator{}
	for _, operator := range s.operators {
		if operator.Status == status {
			result = append(result, *operator)
		}
	}
	return result, nil
}

// ListOperators returns every operator
func (s *MemoryStore) ListOperators() ([]models.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Operator, 0, len(s.operators))
	for _, operator := range s.operators {
		result = append(result, *operator)
	}
	return result, nil
}

// ============================================================================
// BUSES
// ============================================================================

// CreateBus stores a new bus
func (s *MemoryStore) CreateBus(bus *models.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillMeta(&bus.ID, &bus.CreatedAt)
	stored := *bus
	stored.Amenities = copyStrings(bus.Amenities)
	s.buses[stored.ID] = &stored
	return nil
}

// GetBus returns the bus by ID, or nil when absent
func (s *MemoryStore) GetBus(id string) (*models.Bus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bus, ok := s.buses[id]
	if !ok {
		return nil, nil
	}
	copied := *bus
	copied.Amenities = copyStrings(bus.Amenities)
	return &copied, nil
}

// BusesByOperator returns the operator's fleet
func (s *MemoryStore) BusesByOperator(operatorID string) ([]models.Bus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Bus{}
	for _, bus := range s.buses {
		if bus.OperatorID == operatorID {
			copied := *bus
			copied.Amenities = copyStrings(bus.Amenities)
			result = append(result, copied)
		}
	}
	return result, nil
}

// UpdateBus replaces the stored bus record
func (s *MemoryStore) UpdateBus(bus *models.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buses[bus.ID]; !ok {
		return nil
	}
	stored := *bus
	stored.Amenities = copyStrings(bus.Amenities)
	s.buses[stored.ID] = &stored
	return nil
}

// DeleteBus removes the bus, reporting whether it existed
func (s *MemoryStore) DeleteBus(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buses[id]; !ok {
		return false, nil
	}
	delete(s.buses, id)
	return true, nil
}

// ============================================================================
// ROUTES
// ============================================================================

// CreateRoute stores a new route
func (s *MemoryStore) CreateRoute(route *models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillMeta(&route.ID, &route.CreatedAt)
	stored := *route
	stored.OperatingDays = copyStrings(route.OperatingDays)
	s.routes[stored.ID] = &stored
	return nil
}

// GetRoute returns the route by ID, or nil when absent
func (s *MemoryStore) GetRoute(id string) (*models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	route, ok := s.routes[id]
	if !ok {
		return nil, nil
	}
	copied := *route
	copied.OperatingDays = copyStrings(route.OperatingDays)
	return &copied, nil
}

// RoutesByBus returns every route served by the bus
func (s *MemoryStore) RoutesByBus(busID string) ([]models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Route{}
	for _, route := range s.routes {
		if route.BusID == busID {
			copied := *route
			copied.OperatingDays = copyStrings(route.OperatingDays)
			result = append(result, copied)
		}
	}
	return result, nil
}

// UpdateRoute replaces the stored route record
func (s *MemoryStore) UpdateRoute(route *models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routes[route.ID]; !ok {
		return nil
	}
	stored := *route
	stored.OperatingDays = copyStrings(route.OperatingDays)
	s.routes[stored.ID] = &stored
	return nil
}

// DeleteRoute removes the route, reporting whether it existed
func (s *MemoryStore) DeleteRoute(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routes[id]; !ok {
		return false, nil
	}
	delete(s.routes, id)
	return true, nil
}

// SearchRoutes filters active routes by case-insensitive substring match
// on the origin and destination cities
func (s *MemoryStore) SearchRoutes(fromCity, toCity string) ([]models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := strings.ToLower(fromCity)
	to := strings.ToLower(toCity)

	result := []models.Route{}
	for _, route := range s.routes {
		if !route.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(route.FromCity), from) &&
			strings.Contains(strings.ToLower(route.ToCity), to) {
			copied := *route
			copied.OperatingDays = copyStrings(route.OperatingDays)
			result = append(result, copied)
		}
	}
	return result, nil
}

// ============================================================================
// BOOKINGS
// ============================================================================

// CreateBooking stores a new booking
func (s *MemoryStore) CreateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillMeta(&booking.ID, &booking.CreatedAt)
	stored := copyBooking(booking)
	s.bookings[stored.ID] = stored
	return nil
}

// GetBooking returns the booking by ID, or nil when absent
func (s *MemoryStore) GetBooking(id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(booking), nil
}

// UpdateBooking replaces the stored booking record
func (s *MemoryStore) UpdateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; !ok {
		return nil
	}
	stored := copyBooking(booking)
	s.bookings[stored.ID] = stored
	return nil
}

// BookingsByRouteAndDate returns every booking of the partition,
// regardless of status
func (s *MemoryStore) BookingsByRouteAndDate(routeID, travelDate string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Booking{}
	for _, booking := range s.bookings {
		if booking.RouteID == routeID && booking.TravelDate == travelDate {
			result = append(result, *copyBooking(booking))
		}
	}
	return result, nil
}

// BookingsByUser returns a user's bookings
func (s *MemoryStore) BookingsByUser(userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Booking{}
	for _, booking := range s.bookings {
		if booking.UserID != nil && *booking.UserID == userID {
			result = append(result, *copyBooking(booking))
		}
	}
	return result, nil
}

// BookingsByRoutes returns every booking on any of the given routes
func (s *MemoryStore) BookingsByRoutes(routeIDs []string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(routeIDs))
	for _, id := range routeIDs {
		wanted[id] = true
	}

	result := []models.Booking{}
	for _, booking := range s.bookings {
		if wanted[booking.RouteID] {
			result = append(result, *copyBooking(booking))
		}
	}
	return result, nil
}

// ListBookings returns every booking on the platform
func (s *MemoryStore) ListBookings() ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Booking{}
	for _, booking := range s.bookings {
		result = append(result, *copyBooking(booking))
	}
	return result, nil
}

// ============================================================================
// COMPLAINTS
// ============================================================================

// CreateComplaint stores a new complaint
func (s *MemoryStore) CreateComplaint(complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fillMeta(&complaint.ID, &complaint.CreatedAt)
	stored := *complaint
	s.complaints[stored.ID] = &stored
	return nil
}

// GetComplaint returns the complaint by ID, or nil when absent
func (s *MemoryStore) GetComplaint(id string) (*models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	complaint, ok := s.complaints[id]
	if !ok {
		return nil, nil
	}
	copied := *complaint
	return &copied, nil
}

// UpdateComplaint replaces the stored complaint record
func (s *MemoryStore) UpdateComplaint(complaint *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.complaints[complaint.ID]; !ok {
		return nil
	}
	stored := *complaint
	s.complaints[stored.ID] = &stored
	return nil
}

// ComplaintsByUser returns a user's complaints
func (s *MemoryStore) ComplaintsByUser(userID string) ([]models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Complaint{}
	for _, complaint := range s.complaints {
		if complaint.UserID != nil && *complaint.UserID == userID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

// ListComplaints returns every complaint
func (s *MemoryStore) ListComplaints() ([]models.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Complaint, 0, len(s.complaints))
	for _, complaint := range s.complaints {
		result = append(result, *complaint)
	}
	return result, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func fillMeta(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}

func copyBooking(in *models.Booking) *models.Booking {
	out := *in
	out.SeatNumbers = copyStrings(in.SeatNumbers)
	if in.DeviceInfo != nil {
		out.DeviceInfo = make(models.JSONMap, len(in.DeviceInfo))
		for k, v := range in.DeviceInfo {
			out.DeviceInfo[k] = v
		}
	}
	return &out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
