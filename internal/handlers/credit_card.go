package handlers

import (
	"fmt"
	"time"

	"ccentry/internal/metrics"
	"ccentry/internal/models"
	"ccentry/internal/services/audit"
	creditcard "ccentry/internal/services/credit-card"
	"ccentry/internal/utils"
	"ccentry/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CreditCardHandler struct {
	auditor    audit.Auditor
	metrics    metrics.Collector
	includeZip bool
	now        func() time.Time
	logger     *zap.Logger
}

// NewCreditCardHandler serves stateless validation. includeZip is assumed
// when a request does not say whether the postal code is collected.
func NewCreditCardHandler(auditor audit.Auditor, collector metrics.Collector, includeZip bool, logger *zap.Logger) *CreditCardHandler {
	if auditor == nil {
		auditor = audit.NoopService{}
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreditCardHandler{
		auditor:    auditor,
		metrics:    collector,
		includeZip: includeZip,
		now:        time.Now,
		logger:     logger.Named("cards"),
	}
}

// ValidateResponse reports a one-shot evaluation. Field states are
// empty, partial, valid or invalid.
type ValidateResponse struct {
	Brand           string                      `json:"brand"`
	BrandName       string                      `json:"brand_name"`
	StripeBrand     string                      `json:"stripe_brand"`
	FormattedNumber string                      `json:"formatted_number"`
	Valid           bool                        `json:"valid"`
	Fields          map[string]creditcard.State `json:"fields"`
}

func (h *CreditCardHandler) Validate(c *fiber.Ctx) error {
	input := creditcard.Input{IncludeZip: h.includeZip}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	check := creditcard.Evaluate(input, h.now())
	resp := ValidateResponse{
		Brand:           check.Brand.Code,
		BrandName:       check.Brand.Name,
		StripeBrand:     string(check.Brand.StripeBrand()),
		FormattedNumber: check.FormattedNumber,
		Valid:           check.Valid(),
		Fields: map[string]creditcard.State{
			"number":        check.Number,
			"expiration":    check.Expiration,
			"security_code": check.SecurityCode,
		},
	}
	if check.PostalCodeEnabled {
		resp.Fields["postal_code"] = check.PostalCode
	}

	h.metrics.ObserveValidation(models.SourceValidate, resp.Brand, resp.Valid)
	if err := h.auditor.Record(c.UserContext(), audit.FromCheck(utils.ClientID(c), check)); err != nil {
		h.logger.Warn("failed to audit validation", zap.Error(err))
	}

	return response.Success(c, "Card evaluated", resp)
}

// BrandResponse describes one supported brand.
type BrandResponse struct {
	Code                string   `json:"code"`
	Name                string   `json:"name"`
	StripeBrand         string   `json:"stripe_brand"`
	Prefixes            []string `json:"prefixes"`
	Lengths             []int    `json:"lengths"`
	SecurityCodeLength  int      `json:"security_code_length"`
	SecurityCodeOnFront bool     `json:"security_code_on_front"`
	Groups              []int    `json:"groups"`
	FrontImage          string   `json:"front_image"`
	BackImage           string   `json:"back_image"`
}

func (h *CreditCardHandler) Brands(c *fiber.Ctx) error {
	brands := creditcard.Brands()
	out := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		prefixes := make([]string, 0, len(b.Prefixes))
		for _, p := range b.Prefixes {
			if p.Lo == p.Hi {
				prefixes = append(prefixes, fmt.Sprint(p.Lo))
			} else {
				prefixes = append(prefixes, fmt.Sprintf("%d-%d", p.Lo, p.Hi))
			}
		}
		out = append(out, BrandResponse{
			Code:                b.Code,
			Name:                b.Name,
			StripeBrand:         string(b.StripeBrand()),
			Prefixes:            prefixes,
			Lengths:             b.Lengths,
			SecurityCodeLength:  b.SecurityCodeLength,
			SecurityCodeOnFront: b.SecurityCodeOnFront,
			Groups:              b.Groups,
			FrontImage:          b.FrontImage,
			BackImage:           b.BackImage,
		})
	}
	return response.Success(c, "Brands retrieved successfully", out)
}
