package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hosfile/prepay-api/internal/models"
	"github.com/hosfile/prepay-api/internal/service"
	appErrors "github.com/hosfile/prepay-api/pkg/errors"
	"github.com/hosfile/prepay-api/pkg/response"
)

// ContextUserKey is the gin context key storing validated auth claims.
const ContextUserKey = "currentUser"

// Auth protects routes by requiring a valid bearer token.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims attached by Auth, or nil.
func ClaimsFromContext(c *gin.Context) *models.AuthClaims {
	if v, exists := c.Get(ContextUserKey); exists {
		if claims, ok := v.(*models.AuthClaims); ok {
			return claims
		}
	}
	return nil
}
