package utils

import (
	"testing"
	"time"

	"ccentry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTokenRoundTrip(t *testing.T) {
	token, err := GenerateClientToken("secret", "ccentry-api", "shop-1", nil, time.Hour)
	require.NoError(t, err)

	claims, err := ParseClientToken("secret", "ccentry-api", token)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", claims.ClientID)
	assert.Equal(t, "shop-1", claims.Subject)
	assert.Equal(t, models.DefaultScopes, claims.Scopes)
	assert.True(t, claims.HasScope(models.ScopeForms))
}

func TestParseClientTokenRejects(t *testing.T) {
	token, err := GenerateClientToken("secret", "ccentry-api", "shop-1", []string{models.ScopeValidate}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		issuer string
		token  string
	}{
		{name: "wrong secret", secret: "other", issuer: "ccentry-api", token: token},
		{name: "wrong issuer", secret: "secret", issuer: "someone-else", token: token},
		{name: "garbage", secret: "secret", token: "not-a-token"},
		{name: "missing secret", secret: "", token: token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClientToken(tt.secret, tt.issuer, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerateClientTokenDefaultTTL(t *testing.T) {
	token, err := GenerateClientToken("secret", "", "shop-1", nil, -time.Hour)
	require.NoError(t, err)

	// a non-positive ttl falls back to the default lifetime
	claims, err := ParseClientToken("secret", "", token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateClientTokenErrors(t *testing.T) {
	_, err := GenerateClientToken("", "", "shop-1", nil, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = GenerateClientToken("secret", "", "", nil, time.Hour)
	assert.ErrorIs(t, err, ErrMissingClient)
}
