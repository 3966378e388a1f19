package handlers

import (
	"time"

	"ccentry/internal/services/audit"
	"ccentry/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxStatsWindow = 90 * 24 * time.Hour

type StatsHandler struct {
	auditor audit.Auditor
	logger  *zap.Logger
}

func NewStatsHandler(auditor audit.Auditor, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{auditor: auditor, logger: logger.Named("stats")}
}

// Brands reports validation totals per brand. The optional window query
// parameter is a Go duration such as 1h or 168h.
func (h *StatsHandler) Brands(c *fiber.Ctx) error {
	window := audit.DefaultStatsWindow
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 || d > maxStatsWindow {
			return response.BadRequest(c, "invalid window")
		}
		window = d
	}

	stats, err := h.auditor.Stats(c.UserContext(), window)
	if err != nil {
		h.logger.Error("failed to load stats", zap.Error(err))
		return response.ServerError(c, "Failed to fetch stats")
	}
	return response.Success(c, "Stats retrieved successfully", stats)
}
