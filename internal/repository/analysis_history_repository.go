package repository

import (
	"context"

	"golang-trading-insight/internal/entity"

	"gorm.io/gorm"
)

type analysisHistoryRepository struct {
	db *gorm.DB
}

// NewAnalysisHistoryRepository creates a new gorm-backed history repository.
func NewAnalysisHistoryRepository(db *gorm.DB) AnalysisHistoryRepository {
	return &analysisHistoryRepository{db: db}
}

func (r *analysisHistoryRepository) Create(ctx context.Context, analysis *entity.AIAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *analysisHistoryRepository) FindLatestBySymbol(ctx context.Context, symbol string, limit int) ([]entity.AIAnalysis, error) {
	var analyses []entity.AIAnalysis
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
