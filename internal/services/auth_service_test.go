package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/pkg/jwt"
)

func newAuthFixture(t *testing.T) (*AuthService, database.Stores) {
	t.Helper()
	stores := database.NewMemoryStore().Stores()
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	// Minimum bcrypt cost keeps the tests fast.
	return NewAuthService(stores.Users, stores.Operators, jwtService, 4, testLogger()), stores
}

func TestRegister(t *testing.T) {
	service, _ := newAuthFixture(t)

	resp, err := service.Register(&models.RegisterRequest{
		Username: "nimal",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RolePassenger, resp.User.Role)
	assert.NotEqual(t, "secret123", resp.User.Password, "password must be hashed")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(&models.RegisterRequest{Username: "nimal", Password: "secret123"})
	require.NoError(t, err)

	_, err = service.Register(&models.RegisterRequest{Username: "nimal", Password: "other456"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(&models.RegisterRequest{Username: "nimal", Password: "secret123"})
	require.NoError(t, err)

	resp, err := service.Login(&models.LoginRequest{Username: "nimal", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = service.Login(&models.LoginRequest{Username: "nimal", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(&models.LoginRequest{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(&models.RegisterRequest{Username: "nimal", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.RefreshToken)

	resp, err := service.Refresh(registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	// An access token is not accepted as a refresh token.
	_, err = service.Refresh(registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_AttachesOperatorProfile(t *testing.T) {
	service, stores := newAuthFixture(t)

	resp, err := service.Register(&models.RegisterRequest{
		Username: "highway",
		Password: "secret123",
		Role:     models.RoleOperator,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Operator, "no profile registered yet")

	require.NoError(t, stores.Operators.CreateOperator(&models.Operator{
		UserID:       resp.User.ID,
		CompanyName:  "Highway Express",
		License:      "LIC-1",
		ContactEmail: "ops@highway.example",
		ContactPhone: "0771234567",
		Status:       models.OperatorStatusApproved,
	}))

	resp, err = service.Login(&models.LoginRequest{Username: "highway", Password: "secret123"})
	require.NoError(t, err)
	require.NotNil(t, resp.Operator)
	assert.Equal(t, "Highway Express", resp.Operator.CompanyName)
}
