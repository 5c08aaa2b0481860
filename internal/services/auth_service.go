package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/pkg/jwt"
)

// Authentication errors
var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles account registration and login
type AuthService struct {
	users      database.UserStore
	operators  database.OperatorStore
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users database.UserStore,
	operators database.OperatorStore,
	jwtService *jwt.Service,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		operators:  operators,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new user account and returns it with a signed
// access token. Accounts default to the passenger role; operator and
// admin roles are only assignable through admin flows.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.LoginResponse, error) {
	if req.Role == "" {
		req.Role = models.RolePassenger
	}
	if !req.Role.IsValid() {
		return nil, models.ValidationError("unknown role")
	}

	existing, err := s.users.GetUserByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     req.Role,
		Name:     req.Name,
		Phone:    req.Phone,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	return s.buildLoginResponse(user)
}

// Login verifies credentials and returns the user with a signed access
// token
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetUserByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildLoginResponse(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// user record is re-read so a role change takes effect on refresh.
func (s *AuthService) Refresh(refreshToken string) (*models.LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUser(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildLoginResponse(user)
}

// GetUser retrieves a user account by ID
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) buildLoginResponse(user *models.User) (*models.LoginResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	response := &models.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	if user.Role == models.RoleOperator {
		operator, err := s.operators.GetOperatorByUserID(user.ID)
		if err != nil {
			return nil, err
		}
		response.Operator = operator
	}

	return response, nil
}
