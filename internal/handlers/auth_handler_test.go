package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobus/booking-backend/internal/database"
	"github.com/mobus/booking-backend/internal/models"
	"github.com/mobus/booking-backend/internal/services"
	"github.com/mobus/booking-backend/pkg/jwt"
)

func setupAuthTest(t *testing.T) (*AuthHandler, database.Stores) {
	t.Helper()

	stores := database.NewMemoryStore().Stores()
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	// Minimum bcrypt cost keeps the tests fast.
	authService := services.NewAuthService(stores.Users, stores.Operators, jwtService, 4, testLogger())
	return NewAuthHandler(authService), stores
}

func postJSON(t *testing.T, handler gin.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestRegisterHandler(t *testing.T) {
	handler, _ := setupAuthTest(t)

	w := postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"username": "nimal",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.RolePassenger, resp.User.Role)
	assert.Empty(t, resp.User.Password, "password hash must never leak")
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	handler, _ := setupAuthTest(t)

	body := map[string]string{"username": "nimal", "password": "secret123"}
	w := postJSON(t, handler.Register, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Register, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_ElevatedRoleRejected(t *testing.T) {
	handler, _ := setupAuthTest(t)

	w := postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"username": "mallory",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHandler(t *testing.T) {
	handler, _ := setupAuthTest(t)

	w := postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"username": "nimal",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.RefreshToken)

	t.Run("valid refresh token", func(t *testing.T) {
		w := postJSON(t, handler.Refresh, "/api/auth/refresh", map[string]string{
			"refresh_token": registered.RefreshToken,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := postJSON(t, handler.Refresh, "/api/auth/refresh", map[string]string{
			"refresh_token": "not-a-token",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := postJSON(t, handler.Refresh, "/api/auth/refresh", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	handler, _ := setupAuthTest(t)

	w := postJSON(t, handler.Register, "/api/auth/register", map[string]string{
		"username": "nimal",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("correct credentials", func(t *testing.T) {
		w := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"username": "nimal",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"username": "nimal",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := postJSON(t, handler.Login, "/api/auth/login", map[string]string{
			"username": "ghost",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
