package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/store"
	"github.com/hosfile/prepay-api/pkg/config"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
)

func newAuthService() *AuthService {
	return NewAuthService(store.NewUserStore(), nil, zap.NewNop(), config.AuthConfig{
		JWTSecret:  "test_secret",
		Expiration: time.Hour,
	})
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{Username: "staff1", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "staff1", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.UserID)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "staff1", claims.Username)

	current, err := svc.CurrentUser(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "staff1", current.Username)
}

func TestAuthServiceRejectsDuplicateUsername(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "staff1", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "staff1", Password: "password456"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "staff1", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "staff1", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "whatever1"})
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	svc := newAuthService()

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}
