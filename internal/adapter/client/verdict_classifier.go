package client

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/newsverdict/verdict/internal/domain/entity"
	"github.com/newsverdict/verdict/internal/domain/service"
)

// VerdictClassifier adapts PredictClient to the Classifier interface
type VerdictClassifier struct {
	client     *PredictClient
	strictKeys bool
	logger     *zap.Logger
}

// NewVerdictClassifier creates a new VerdictClassifier. With strictKeys set, a
// response missing any expected key is rejected instead of rendered blank.
func NewVerdictClassifier(client *PredictClient, strictKeys bool, logger *zap.Logger) service.Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerdictClassifier{
		client:     client,
		strictKeys: strictKeys,
		logger:     logger,
	}
}

// Predict classifies a single text
func (c *VerdictClassifier) Predict(ctx context.Context, text string) (*entity.Prediction, error) {
	resp, err := c.client.Predict(ctx, text)
	if err != nil {
		return nil, err
	}

	prediction := entity.NewPrediction(resp)
	if len(prediction.Missing) > 0 {
		if c.strictKeys {
			return nil, &service.ProtocolError{
				Message: "missing keys: " + strings.Join(prediction.Missing, ", "),
			}
		}
		c.logger.Warn("Prediction response missing keys",
			zap.Strings("missing", prediction.Missing),
			zap.String("endpoint", c.client.Endpoint()),
		)
	}

	return prediction, nil
}
