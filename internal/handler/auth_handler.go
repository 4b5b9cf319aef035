package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hosfile/prepay-api/internal/dto"
	"github.com/hosfile/prepay-api/internal/middleware"
	"github.com/hosfile/prepay-api/internal/models"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
	"github.com/hosfile/prepay-api/pkg/response"
)

type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CurrentUser(ctx context.Context, claims *models.AuthClaims) (*models.User, error)
}

// AuthHandler exposes the staff account endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary Register a staff account
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 409 {object} response.ErrorBody
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid registration payload"))
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Me godoc
// @Summary Current account behind the bearer token
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} response.ErrorBody
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	user, err := h.service.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
