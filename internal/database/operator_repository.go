package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mobus/booking-backend/internal/models"
)

// OperatorRepository handles database operations for the operators table
type OperatorRepository struct {
	db DB
}

// NewOperatorRepository creates a new OperatorRepository
func NewOperatorRepository(db DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

const operatorColumns = `id, user_id, company_name, license, contact_email, contact_phone, status, created_at`

// CreateOperator inserts a new operator
func (r *OperatorRepository) CreateOperator(operator *models.Operator) error {
	query := `
		INSERT INTO operators (
			id, user_id, company_name, license, contact_email, contact_phone, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at
	`

	if operator.ID == "" {
		operator.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		operator.ID, operator.UserID, operator.CompanyName, operator.License,
		operator.ContactEmail, operator.ContactPhone, operator.Status,
	).Scan(&operator.CreatedAt)
}

// GetOperator retrieves an operator by ID. Returns (nil, nil) when absent.
func (r *OperatorRepository) GetOperator(id string) (*models.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE id = $1`

	operator, err := r.scanOperator(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return operator, err
}

// GetOperatorByUserID retrieves the operator owned by a user
func (r *OperatorRepository) GetOperatorByUserID(userID string) (*models.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE user_id = $1`

	operator, err := r.scanOperator(r.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return operator, err
}

// UpdateOperator updates an operator record
func (r *OperatorRepository) UpdateOperator(operator *models.Operator) error {
	query := `
		UPDATE operators
		SET company_name = $2, contact_email = $3, contact_phone = $4, status = $5
		WHERE id = $1
	`

	_, err := r.db.Exec(
		query,
		operator.ID, operator.CompanyName, operator.ContactEmail, operator.ContactPhone, operator.Status,
	)
	return err
}

// OperatorsByStatus retrieves all operators in a given approval state
func (r *OperatorRepository) OperatorsByStatus(status models.OperatorStatus) ([]models.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE status = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOperators(rows)
}

// ListOperators retrieves every operator
func (r *OperatorRepository) ListOperators() ([]models.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOperators(rows)
}

func (r *OperatorRepository) scanOperator(row scanner) (*models.Operator, error) {
	operator := &models.Operator{}

	err := row.Scan(
		&operator.ID, &operator.UserID, &operator.CompanyName, &operator.License,
		&operator.ContactEmail, &operator.ContactPhone, &operator.Status, &operator.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return operator, nil
}

func (r *OperatorRepository) scanOperators(rows *sql.Rows) ([]models.Operator, error) {
	operators := []models.Operator{}

	for rows.Next() {
		operator, err := r.scanOperator(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, *operator)
	}

	return operators, rows.Err()
}
