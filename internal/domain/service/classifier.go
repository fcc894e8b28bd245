package service

import (
	"context"

	"github.com/newsverdict/verdict/internal/domain/entity"
)

// Classifier defines the interface for news classification
type Classifier interface {
	// Predict returns the per-model labels and final verdict for text
	Predict(ctx context.Context, text string) (*entity.Prediction, error)
}
