package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mobus/booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, user_id, route_id, passenger_name, passenger_phone, passenger_email,
	seat_numbers, travel_date, total_amount, payment_status, payment_method,
	booking_status, booked_by, agent_id, device_info, created_at
`

// CreateBooking inserts a new booking
func (r *BookingRepository) CreateBooking(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, route_id, passenger_name, passenger_phone,
			passenger_email, seat_numbers, travel_date, total_amount,
			payment_status, payment_method, booking_status, booked_by, agent_id,
			device_info
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING created_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		booking.ID, booking.UserID, booking.RouteID, booking.PassengerName, booking.PassengerPhone,
		booking.PassengerEmail, booking.SeatNumbers, booking.TravelDate, booking.TotalAmount,
		booking.PaymentStatus, booking.PaymentMethod, booking.BookingStatus, booking.BookedBy, booking.AgentID,
		booking.DeviceInfo,
	).Scan(&booking.CreatedAt)
}

// GetBooking retrieves a booking by ID. Returns (nil, nil) when absent.
func (r *BookingRepository) GetBooking(id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return booking, err
}

// UpdateBooking updates the mutable fields of a booking. Identity and
// seat assignment never change after admission.
func (r *BookingRepository) UpdateBooking(booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET payment_status = $2, payment_method = $3, booking_status = $4
		WHERE id = $1
	`

	_, err := r.db.Exec(query, booking.ID, booking.PaymentStatus, booking.PaymentMethod, booking.BookingStatus)
	return err
}

// BookingsByRouteAndDate retrieves every booking of a (route, date)
// partition, regardless of status
func (r *BookingRepository) BookingsByRouteAndDate(routeID, travelDate string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE route_id = $1 AND travel_date = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(query, routeID, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// BookingsByUser retrieves all bookings made by a user
func (r *BookingRepository) BookingsByUser(userID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// BookingsByRoutes retrieves every booking on any of the given routes
func (r *BookingRepository) BookingsByRoutes(routeIDs []string) ([]models.Booking, error) {
	if len(routeIDs) == 0 {
		return []models.Booking{}, nil
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE route_id = ANY($1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, pq.Array(routeIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListBookings retrieves every booking on the platform
func (r *BookingRepository) ListBookings() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func (r *BookingRepository) scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var userID sql.NullString
	var passengerEmail sql.NullString
	var paymentMethod sql.NullString
	var agentID sql.NullString

	err := row.Scan(
		&booking.ID, &userID, &booking.RouteID, &booking.PassengerName, &booking.PassengerPhone,
		&passengerEmail, &booking.SeatNumbers, &booking.TravelDate, &booking.TotalAmount,
		&booking.PaymentStatus, &paymentMethod, &booking.BookingStatus, &booking.BookedBy, &agentID,
		&booking.DeviceInfo, &booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		booking.UserID = &userID.String
	}
	if passengerEmail.Valid {
		booking.PassengerEmail = &passengerEmail.String
	}
	if paymentMethod.Valid {
		booking.PaymentMethod = &paymentMethod.String
	}
	if agentID.Valid {
		booking.AgentID = &agentID.String
	}

	return booking, nil
}

func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}
