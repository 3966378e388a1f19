package models

import "github.com/golang-jwt/jwt/v5"

// API scopes
const (
	ScopeValidate = "cards:validate"
	ScopeForms    = "forms:write"
	ScopeStats    = "stats:read"
)

// DefaultScopes are granted when a token is minted without explicit scopes.
var DefaultScopes = []string{ScopeValidate, ScopeForms, ScopeStats}

// ClientClaims identify an API client embedding card forms.
type ClientClaims struct {
	jwt.RegisteredClaims
	ClientID string   `json:"client_id"`
	Scopes   []string `json:"scopes"`
}

// HasScope reports whether the claims grant scope.
func (c *ClientClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
