package models

import "time"

// User represents a platform account (passenger, agent, operator or admin)
type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Role      Role      `json:"role" db:"role"`
	Name      *string   `json:"name,omitempty" db:"name"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest represents the request to create a new user account
type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email,omitempty"`
	Role     Role    `json:"role,omitempty"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse is returned on successful authentication. Operator users
// get their operator record attached so the client can route to the
// operator dashboard.
type LoginResponse struct {
	User         *User     `json:"user"`
	Operator     *Operator `json:"operator,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}
