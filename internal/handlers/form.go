package handlers

import (
	"errors"

	"ccentry/internal/services/entry"
	"ccentry/internal/services/session"
	"ccentry/internal/utils"
	"ccentry/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FormHandler struct {
	registry *session.Registry
	defaults entry.Config
	logger   *zap.Logger
}

func NewFormHandler(registry *session.Registry, defaults entry.Config, logger *zap.Logger) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormHandler{
		registry: registry,
		defaults: defaults,
		logger:   logger.Named("forms"),
	}
}

// CreateFormRequest overrides the server defaults for one form. Omitted
// fields keep their default.
type CreateFormRequest struct {
	IncludeZip      *bool   `json:"include_zip"`
	IncludeHelper   *bool   `json:"include_helper"`
	CardNumberHint  *string `json:"card_number_hint"`
	HelperTextColor string  `json:"helper_text_color"`
	InputBackground string  `json:"input_background"`
}

func (r CreateFormRequest) apply(cfg entry.Config) entry.Config {
	if r.IncludeZip != nil {
		cfg.IncludeZip = *r.IncludeZip
	}
	if r.IncludeHelper != nil {
		cfg.IncludeHelper = *r.IncludeHelper
	}
	if r.CardNumberHint != nil {
		cfg.CardNumberHint = *r.CardNumberHint
	}
	if r.HelperTextColor != "" {
		cfg.HelperTextColor = r.HelperTextColor
	}
	if r.InputBackground != "" {
		cfg.InputBackground = r.InputBackground
	}
	return cfg
}

type InputRequest struct {
	Text string `json:"text"`
}

func (h *FormHandler) Create(c *fiber.Ctx) error {
	var req CreateFormRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request format")
		}
	}
	cfg := req.apply(h.defaults)

	view, err := h.registry.Create(c.UserContext(), utils.ClientID(c), &cfg)
	if err != nil {
		return h.sessionError(c, err)
	}
	return response.Created(c, "Form created", view)
}

func (h *FormHandler) Get(c *fiber.Ctx) error {
	view, err := h.registry.Get(c.UserContext(), c.Params("id"), utils.ClientID(c))
	if err != nil {
		return h.sessionError(c, err)
	}
	return response.Success(c, "Form retrieved", view)
}

// Input replaces the text of one field, the way a keystroke or paste would.
func (h *FormHandler) Input(c *fiber.Ctx) error {
	field, err := entry.ParseField(c.Params("field"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req InputRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	view, err := h.registry.Input(c.UserContext(), c.Params("id"), utils.ClientID(c), field, req.Text)
	if err != nil {
		return h.sessionError(c, err)
	}
	return response.Success(c, "Field updated", view)
}

func (h *FormHandler) Focus(c *fiber.Ctx) error {
	field, err := entry.ParseField(c.Params("field"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	view, err := h.registry.Focus(c.UserContext(), c.Params("id"), utils.ClientID(c), field)
	if err != nil {
		return h.sessionError(c, err)
	}
	return response.Success(c, "Focus moved", view)
}

func (h *FormHandler) Clear(c *fiber.Ctx) error {
	view, err := h.registry.Clear(c.UserContext(), c.Params("id"), utils.ClientID(c))
	if err != nil {
		return h.sessionError(c, err)
	}
	return response.Success(c, "Form cleared", view)
}

func (h *FormHandler) Delete(c *fiber.Ctx) error {
	if err := h.registry.Delete(c.UserContext(), c.Params("id"), utils.ClientID(c)); err != nil {
		return h.sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FormHandler) sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return response.NotFound(c, "form not found")
	case errors.Is(err, entry.ErrUnknownField), errors.Is(err, entry.ErrZipDisabled):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, session.ErrTooManySessions):
		return response.Error(c, fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, session.ErrRegistryClosed):
		return response.Error(c, fiber.StatusServiceUnavailable, err.Error())
	}
	h.logger.Error("form operation failed", zap.Error(err))
	return response.ServerError(c, "internal error")
}
