package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/models"
	"github.com/hosfile/prepay-api/internal/store"
	"github.com/hosfile/prepay-api/pkg/config"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
)

type userStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService provides the staff account flows: register, login, token check.
type AuthService struct {
	users     userStore
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users userStore, validate *validator.Validate, logger *zap.Logger, cfg config.AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{users: users, validator: validate, logger: logger, cfg: cfg}
}

// Register creates a staff account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid registration payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user, err := s.users.Create(ctx, req.Username, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid login payload")
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.ErrBadCredential
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrBadCredential
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.Expiration).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &dto.LoginResponse{Token: token, UserID: user.ID, Username: user.Username}, nil
}

// ValidateToken parses a bearer token and returns its claims.
func (s *AuthService) ValidateToken(raw string) (*models.AuthClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["username"].(string)
	if sub == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token subject")
	}
	return &models.AuthClaims{UserID: sub, Username: username}, nil
}

// CurrentUser resolves the account behind validated claims.
func (s *AuthService) CurrentUser(ctx context.Context, claims *models.AuthClaims) (*models.User, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	return user, nil
}
