package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ccentry/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNilRecord = errors.New("validation record is nil")
)

type ValidationRepository interface {
	Create(ctx context.Context, record *models.ValidationRecord) error
	BrandStats(ctx context.Context, since time.Time) ([]models.BrandStat, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type validationRepository struct {
	db *gorm.DB
}

func NewValidationRepository(db *gorm.DB) ValidationRepository {
	return &validationRepository{
		db: db,
	}
}

func (r *validationRepository) Create(ctx context.Context, record *models.ValidationRecord) error {
	if record == nil {
		return ErrNilRecord
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create validation record: %w", err)
	}
	return nil
}

func (r *validationRepository) BrandStats(ctx context.Context, since time.Time) ([]models.BrandStat, error) {
	var stats []models.BrandStat
	err := r.db.WithContext(ctx).
		Model(&models.ValidationRecord{}).
		Select("brand, COUNT(*) AS total, " +
			"SUM(CASE WHEN valid THEN 1 ELSE 0 END) AS valid, " +
			"SUM(CASE WHEN valid THEN 0 ELSE 1 END) AS invalid").
		Where("created_at >= ?", since).
		Group("brand").
		Order("total DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate brand stats: %w", err)
	}
	return stats, nil
}

func (r *validationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ValidationRecord{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count validation records: %w", err)
	}
	return count, nil
}
