package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/newsverdict/verdict/internal/domain/entity"
	"github.com/newsverdict/verdict/internal/domain/repository"
)

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) repository.AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *entity.Analysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *analysisRepository) List(ctx context.Context, limit, offset int) ([]*entity.Analysis, int64, error) {
	var analyses []*entity.Analysis
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Analysis{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&analyses).Error
	if err != nil {
		return nil, 0, err
	}

	return analyses, total, nil
}
