package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mobus/booking-backend/internal/models"
)

// ComplaintRepository handles database operations for the complaints table
type ComplaintRepository struct {
	db DB
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `id, user_id, booking_id, subject, description, status, priority, created_at`

// CreateComplaint inserts a new complaint
func (r *ComplaintRepository) CreateComplaint(complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (
			id, user_id, booking_id, subject, description, status, priority
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at
	`

	if complaint.ID == "" {
		complaint.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		complaint.ID, complaint.UserID, complaint.BookingID, complaint.Subject,
		complaint.Description, complaint.Status, complaint.Priority,
	).Scan(&complaint.CreatedAt)
}

// GetComplaint retrieves a complaint by ID. Returns (nil, nil) when absent.
func (r *ComplaintRepository) GetComplaint(id string) (*models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id = $1`

	complaint, err := r.scanComplaint(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return complaint, err
}

// UpdateComplaint updates a complaint's status and priority
func (r *ComplaintRepository) UpdateComplaint(complaint *models.Complaint) error {
	query := `
		UPDATE complaints
		SET status = $2, priority = $3
		WHERE id = $1
	`

	_, err := r.db.Exec(query, complaint.ID, complaint.Status, complaint.Priority)
	return err
}

// ComplaintsByUser retrieves a user's complaints
func (r *ComplaintRepository) ComplaintsByUser(userID string) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanComplaints(rows)
}

// ListComplaints retrieves every complaint
func (r *ComplaintRepository) ListComplaints() ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanComplaints(rows)
}

func (r *ComplaintRepository) scanComplaint(row scanner) (*models.Complaint, error) {
	complaint := &models.Complaint{}
	var userID sql.NullString
	var bookingID sql.NullString

	err := row.Scan(
		&complaint.ID, &userID, &bookingID, &complaint.Subject,
		&complaint.Description, &complaint.Status, &complaint.Priority, &complaint.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		complaint.UserID = &userID.String
	}
	if bookingID.Valid {
		complaint.BookingID = &bookingID.String
	}

	return complaint, nil
}

func (r *ComplaintRepository) scanComplaints(rows *sql.Rows) ([]models.Complaint, error) {
	complaints := []models.Complaint{}

	for rows.Next() {
		complaint, err := r.scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, *complaint)
	}

	return complaints, rows.Err()
}
