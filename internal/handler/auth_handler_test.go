package handler

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
	"go.uber.org/zap"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/middleware"
	"github.com/hosfile/prepay-api/internal/models"
	"github.com/hosfile/prepay-api/internal/service"
	"github.com/hosfile/prepay-api/internal/store"
	"github.com/hosfile/prepay-api/pkg/config"
)

func newAuthAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc := service.NewAuthService(store.NewUserStore(), nil, zap.NewNop(), config.AuthConfig{
		JWTSecret:  "handler-test-secret",
		Expiration: time.Hour,
	})
	h := NewAuthHandler(authSvc)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/me", middleware.Auth(authSvc), h.Me)
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRegisterLoginMe(t *testing.T) {
	r := newAuthAPI(t)

	w := postJSON(r, "/api/auth/register", dto.RegisterRequest{Username: "pharmacist", Password: "correct horse"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var registered models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "pharmacist", registered.Username)
	assert.NotContains(t, w.Body.String(), "passwordHash", "hash must never leave the server")

	w = postJSON(r, "/api/auth/login", dto.LoginRequest{Username: "pharmacist", Password: "correct horse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, registered.ID, login.UserID)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, registered.ID, me.ID)
}

func TestAuthDuplicateUsername(t *testing.T) {
	r := newAuthAPI(t)

	w := postJSON(r, "/api/auth/register", dto.RegisterRequest{Username: "pharmacist", Password: "correct horse"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/register", dto.RegisterRequest{Username: "pharmacist", Password: "another pass"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	r := newAuthAPI(t)

	w := postJSON(r, "/api/auth/register", dto.RegisterRequest{Username: "pharmacist", Password: "correct horse"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/login", dto.LoginRequest{Username: "pharmacist", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMeRequiresToken(t *testing.T) {
	r := newAuthAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
