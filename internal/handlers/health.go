package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

// HealthChecker is a dependency that can report its own health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}

// PoolStatsReporter is implemented by checkers that expose connection pool
// counters.
type PoolStatsReporter interface {
	PoolStats() map[string]any
}

type HealthHandler struct {
	checks   map[string]HealthChecker
	sessions func() int
}

// NewHealthHandler reports on the named dependencies. sessions may be nil.
func NewHealthHandler(checks map[string]HealthChecker, sessions func() int) *HealthHandler {
	return &HealthHandler{checks: checks, sessions: sessions}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	pools := fiber.Map{}
	for name, check := range h.checks {
		if err := check.HealthCheck(ctx); err != nil {
			services[name] = "unavailable"
			status = "degraded"
			continue
		}
		services[name] = "connected"
		if r, ok := check.(PoolStatsReporter); ok {
			pools[name] = r.PoolStats()
		}
	}

	body := fiber.Map{
		"status":   status,
		"version":  Version,
		"services": services,
	}
	if len(pools) > 0 {
		body["pools"] = pools
	}
	if h.sessions != nil {
		body["sessions"] = h.sessions()
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(body)
}
