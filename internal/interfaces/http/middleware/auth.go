package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finderads/internal/infrastructure/auth"
	"finderads/internal/shared/authorization"
	"finderads/internal/shared/constants"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

// APIKeyVerifier checks a presented API key for an account.
type APIKeyVerifier interface {
	Verify(ctx context.Context, accountSID, plainKey string) error
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	apiKeys    APIKeyVerifier
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, apiKeys APIKeyVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		apiKeys:    apiKeys,
		logger:     logger,
	}
}

// RequireAuth authenticates the caller and stores the account SID and role on
// the context. Bearer JWTs are tried first; programmatic callers may send
// X-Account-SID plus X-API-Key instead.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			m.apiKeyAuth(c)
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAccountSID, claims.AccountSID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))
		c.Next()
	}
}

func (m *AuthMiddleware) apiKeyAuth(c *gin.Context) {
	accountSID := c.GetHeader("X-Account-SID")
	apiKey := c.GetHeader("X-API-Key")
	if accountSID == "" || apiKey == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
		c.Abort()
		return
	}

	if err := m.apiKeys.Verify(c.Request.Context(), accountSID, apiKey); err != nil {
		m.logger.Warnw("failed to verify api key", "account_sid", accountSID)
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid api key")
		c.Abort()
		return
	}

	c.Set(constants.ContextKeyAccountSID, accountSID)
	c.Set(constants.ContextKeyUserRole, authorization.RoleAdvertiser.String())
	c.Next()
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if role != authorization.RoleAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
