package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ccentry/internal/models"
	"ccentry/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *AuthMiddleware) *fiber.App {
	app := fiber.New()
	app.Get("/forms", m.Handler, m.RequireScope(models.ScopeForms), func(c *fiber.Ctx) error {
		return c.SendString("client=" + utils.ClientID(c))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	m := NewAuthMiddleware(true, "secret", "ccentry-api", nil)

	formsToken, err := utils.GenerateClientToken("secret", "ccentry-api", "shop-1", nil, time.Hour)
	require.NoError(t, err)
	statsToken, err := utils.GenerateClientToken("secret", "ccentry-api", "shop-2", []string{models.ScopeStats}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: fiber.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: fiber.StatusUnauthorized},
		{name: "missing scope", header: "Bearer " + statsToken, wantStatus: fiber.StatusForbidden},
		{name: "authorized", header: "Bearer " + formsToken, wantStatus: fiber.StatusOK, wantBody: "client=shop-1"},
	}

	app := newTestApp(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/forms", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	app := newTestApp(NewAuthMiddleware(false, "", "", nil))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/forms", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "client=", string(body))
}
