package utils

import (
	"errors"
	"time"

	"ccentry/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrMissingSecret = errors.New("JWT secret not configured")
	ErrMissingClient = errors.New("client id is required")
	ErrInvalidToken  = errors.New("invalid token claims")
	ErrSigningMethod = errors.New("unexpected signing method")
)

// GenerateClientToken signs an access token for an API client. Empty scopes
// grant models.DefaultScopes.
func GenerateClientToken(secret, issuer, clientID string, scopes []string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if clientID == "" {
		return "", ErrMissingClient
	}
	if len(scopes) == 0 {
		scopes = models.DefaultScopes
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := models.ClientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   clientID,
		},
		ClientID: clientID,
		Scopes:   scopes,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseClientToken parses and validates a client token. A non-empty issuer
// must match the token's iss claim.
func ParseClientToken(secret, issuer, tokenStr string) (*models.ClientClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	var opts []jwt.ParserOption
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.ClientClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSigningMethod
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.ClientClaims)
	if !ok || !token.Valid || claims.ClientID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
