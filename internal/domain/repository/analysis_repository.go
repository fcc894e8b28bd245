package repository

import (
	"context"

	"github.com/newsverdict/verdict/internal/domain/entity"
)

// AnalysisRepository defines the interface for verdict history operations
type AnalysisRepository interface {
	// Create stores a rendered analysis
	Create(ctx context.Context, analysis *entity.Analysis) error

	// List retrieves analyses newest first, with the total count
	List(ctx context.Context, limit, offset int) ([]*entity.Analysis, int64, error)
}
