package database

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/mobus/booking-backend/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password, email, role, name, phone, created_at`

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (
			id, username, password, email, role, name, phone
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		user.ID, user.Username, user.Password, user.Email, user.Role, user.Name, user.Phone,
	).Scan(&user.CreatedAt)
}

// GetUser retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetUser(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := r.scanUser(r.db.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// UpdateUser updates a user record
func (r *UserRepository) UpdateUser(user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, role = $3, name = $4, phone = $5
		WHERE id = $1
	`

	_, err := r.db.Exec(query, user.ID, user.Email, user.Role, user.Name, user.Phone)
	return err
}

// UsersByRole retrieves all users with a given role
func (r *UserRepository) UsersByRole(role models.Role) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at`

	rows, err := r.db.Query(query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanUsers(rows)
}

// ListUsers retrieves every user
func (r *UserRepository) ListUsers() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanUsers(rows)
}

func (r *UserRepository) scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var email sql.NullString
	var name sql.NullString
	var phone sql.NullString

	err := row.Scan(
		&user.ID, &user.Username, &user.Password, &email, &user.Role, &name, &phone, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	if name.Valid {
		user.Name = &name.String
	}
	if phone.Valid {
		user.Phone = &phone.String
	}

	return user, nil
}

func (r *UserRepository) scanUsers(rows *sql.Rows) ([]models.User, error) {
	users := []models.User{}

	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}
