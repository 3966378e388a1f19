// Package audit records validation outcomes and serves aggregate brand
// statistics. Records hold brands and field states only.
package audit

import (
	"context"
	"fmt"
	"time"

	"ccentry/internal/models"
	"ccentry/internal/repositories"
	"ccentry/internal/repositories/cache"
	creditcard "ccentry/internal/services/credit-card"
	"ccentry/internal/services/entry"

	"go.uber.org/zap"
)

const DefaultStatsWindow = 24 * time.Hour

// Auditor persists validation outcomes.
type Auditor interface {
	Record(ctx context.Context, record *models.ValidationRecord) error
	Stats(ctx context.Context, window time.Duration) (*Stats, error)
}

// Stats summarizes validations recorded within a window.
type Stats struct {
	Since  time.Time          `json:"since"`
	Total  int64              `json:"total"`
	Brands []models.BrandStat `json:"brands"`
}

type Service struct {
	repo     repositories.ValidationRepository
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates an auditor backed by repo. cache may be nil, in which
// case stats are always computed from the database.
func NewService(repo repositories.ValidationRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
		logger:   logger.Named("audit"),
	}
}

func (s *Service) Record(ctx context.Context, record *models.ValidationRecord) error {
	if record == nil {
		return repositories.ErrNilRecord
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to record validation",
			zap.String("source", record.Source),
			zap.String("brand", record.Brand),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Stats returns per-brand totals for the trailing window. Results are cached
// for the configured TTL; cache failures fall through to the database.
func (s *Service) Stats(ctx context.Context, window time.Duration) (*Stats, error) {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	key := cache.GenerateKey("stats", "brands", window)

	if s.cache != nil {
		var cached Stats
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	since := s.now().UTC().Add(-window)
	total, err := s.repo.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count validations: %w", err)
	}

	stats := &Stats{Since: since, Total: total, Brands: []models.BrandStat{}}
	if total > 0 {
		brands, err := s.repo.BrandStats(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("failed to load brand stats: %w", err)
		}
		stats.Brands = brands
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetWithTTL(ctx, key, stats, s.cacheTTL); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// NoopService discards records and reports empty stats.
type NoopService struct{}

func (NoopService) Record(context.Context, *models.ValidationRecord) error { return nil }

func (NoopService) Stats(context.Context, time.Duration) (*Stats, error) {
	return &Stats{Brands: []models.BrandStat{}}, nil
}

// FromCheck builds a record for a one-shot validation.
func FromCheck(clientID string, check creditcard.Check) *models.ValidationRecord {
	rec := &models.ValidationRecord{
		Source:            models.SourceValidate,
		ClientID:          clientID,
		Brand:             check.Brand.Code,
		Valid:             check.Valid(),
		NumberState:       check.Number.String(),
		ExpirationState:   check.Expiration.String(),
		SecurityCodeState: check.SecurityCode.String(),
		IncludeZip:        check.PostalCodeEnabled,
	}
	if check.PostalCodeEnabled {
		rec.PostalCodeState = check.PostalCode.String()
	}
	return rec
}

// FromSnapshot builds a record for a form whose validity just changed.
func FromSnapshot(sessionID, clientID string, snap entry.Snapshot) *models.ValidationRecord {
	rec := &models.ValidationRecord{
		Source:            models.SourceForm,
		SessionID:         sessionID,
		ClientID:          clientID,
		Brand:             snap.Brand,
		Valid:             snap.Valid,
		NumberState:       snap.Number.State.String(),
		ExpirationState:   snap.Expiration.State.String(),
		SecurityCodeState: snap.SecurityCode.State.String(),
		IncludeZip:        snap.PostalCode != nil,
	}
	if snap.PostalCode != nil {
		rec.PostalCodeState = snap.PostalCode.State.String()
	}
	return rec
}
