// Package routes defines the API routing configuration.
// It wires handlers to their paths and applies authentication and scope
// checks.
package routes

import (
	"ccentry/internal/handlers"
	"ccentry/internal/middleware"
	"ccentry/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth   *middleware.AuthMiddleware
	Cards  *handlers.CreditCardHandler
	Forms  *handlers.FormHandler
	Stats  *handlers.StatsHandler
	Health *handlers.HealthHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.HealthCheck)

	api := app.Group("/api")
	api.Get("/brands", h.Cards.Brands)

	protected := api.Use(h.Auth.Handler) // Auth middleware starts here

	protected.Post("/cards/validate", h.Auth.RequireScope(models.ScopeValidate), h.Cards.Validate)

	setupFormRoutes(protected, h)

	protected.Get("/stats", h.Auth.RequireScope(models.ScopeStats), h.Stats.Brands)
}

func setupFormRoutes(router fiber.Router, h Handlers) {
	forms := router.Group("/forms", h.Auth.RequireScope(models.ScopeForms))
	forms.Post("/", h.Forms.Create)
	forms.Get("/:id", h.Forms.Get)
	forms.Put("/:id/fields/:field", h.Forms.Input)
	forms.Post("/:id/focus/:field", h.Forms.Focus)
	forms.Delete("/:id/fields", h.Forms.Clear)
	forms.Delete("/:id", h.Forms.Delete)
}
