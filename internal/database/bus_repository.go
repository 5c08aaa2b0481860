package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mobus/booking-backend/internal/models"
)

// BusRepository handles database operations for the buses table
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

const busColumns = `id, operator_id, bus_number, bus_type, total_seats, amenities, status, created_at`

// CreateBus inserts a new bus
func (r *BusRepository) CreateBus(bus *models.Bus) error {
	query := `
		INSERT INTO buses (
			id, operator_id, bus_number, bus_type, total_seats, amenities, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at
	`

	if bus.ID == "" {
		bus.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		bus.ID, bus.OperatorID, bus.BusNumber, bus.BusType, bus.TotalSeats, bus.Amenities, bus.Status,
	).Scan(&bus.CreatedAt)
}

// GetBus retrieves a bus by ID. Returns (nil, nil) when absent.
func (r *BusRepository) GetBus(id string) (*models.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses WHERE id = $1`

	bus, err := r.scanBus(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return bus, err
}

// BusesByOperator retrieves an operator's fleet
func (r *BusRepository) BusesByOperator(operatorID string) ([]models.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses WHERE operator_id = $1 ORDER BY bus_number`

	rows, err := r.db.Query(query, operatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buses := []models.Bus{}
	for rows.Next() {
		bus, err := r.scanBus(rows)
		if err != nil {
			return nil, err
		}
		buses = append(buses, *bus)
	}

	return buses, rows.Err()
}

// UpdateBus updates a bus record
func (r *BusRepository) UpdateBus(bus *models.Bus) error {
	query := `
		UPDATE buses
		SET bus_number = $2, bus_type = $3, total_seats = $4, amenities = $5, status = $6
		WHERE id = $1
	`

	_, err := r.db.Exec(query, bus.ID, bus.BusNumber, bus.BusType, bus.TotalSeats, bus.Amenities, bus.Status)
	return err
}

// DeleteBus removes a bus, reporting whether it existed
func (r *BusRepository) DeleteBus(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM buses WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *BusRepository) scanBus(row scanner) (*models.Bus, error) {
	bus := &models.Bus{}

	err := row.Scan(
		&bus.ID, &bus.OperatorID, &bus.BusNumber, &bus.BusType, &bus.TotalSeats,
		&bus.Amenities, &bus.Status, &bus.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return bus, nil
}
