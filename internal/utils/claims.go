package utils

import (
	"errors"

	"ccentry/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by the auth middleware.
const (
	LocalsClaims   = "claims"
	LocalsClientID = "clientID"
)

// GetClientClaims extracts the client claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetClientClaims(c *fiber.Ctx) (*models.ClientClaims, error) {
	v := c.Locals(LocalsClaims)
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.ClientClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// ClientID returns the authenticated client, or "" when auth is disabled.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsClientID).(string)
	return id
}
