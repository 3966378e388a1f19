// Package middleware provides HTTP middleware components for the application.
// It includes client authentication and scope checks for the fiber web
// framework.
package middleware

import (
	"strings"

	"ccentry/internal/utils"
	"ccentry/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates client JWTs. When disabled every request passes
// through anonymously and scope checks are skipped.
type AuthMiddleware struct {
	enabled bool
	secret  string
	issuer  string
	logger  *zap.Logger
}

func NewAuthMiddleware(enabled bool, secret, issuer string, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		enabled: enabled,
		secret:  secret,
		issuer:  issuer,
		logger:  logger.Named("auth"),
	}
}

// Handler validates the Bearer token and stores the claims in the request
// context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	if !m.enabled {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		m.logger.Debug("missing authorization header", zap.String("path", c.Path()))
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}

	// Check if the header has the Bearer prefix
	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.logger.Debug("invalid authorization format", zap.String("path", c.Path()))
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseClientToken(m.secret, m.issuer, tokenString)
	if err != nil {
		m.logger.Info("token validation failed", zap.Error(err))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(utils.LocalsClaims, claims)
	c.Locals(utils.LocalsClientID, claims.ClientID)

	return c.Next()
}

// RequireScope returns a middleware that checks for a specific scope.
func (m *AuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		claims, err := utils.GetClientClaims(c)
		if err != nil {
			return response.Unauthorized(c)
		}
		if !claims.HasScope(scope) {
			m.logger.Info("insufficient scope",
				zap.String("client_id", claims.ClientID),
				zap.String("scope", scope),
			)
			return response.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}
