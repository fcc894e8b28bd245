package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newsverdict/verdict/internal/domain/entity"
	"github.com/newsverdict/verdict/internal/domain/service"
)

// DefaultEndpoint is the public prediction API
const DefaultEndpoint = "https://fake-news-api.onrender.com/predict"

// maxErrorBody caps how much of a failed response is read into an error
const maxErrorBody = 4 << 10

// errorBody is the shape of the prediction API's error responses
type errorBody struct {
	Error string `json:"error"`
}

// PredictClient is an HTTP client for the prediction API
type PredictClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewPredictClient creates a new prediction API client. A zero timeout
// leaves the request bounded only by ctx.
func NewPredictClient(endpoint string, timeout time.Duration) *PredictClient {
	return &PredictClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the URL requests are posted to
func (c *PredictClient) Endpoint() string {
	return c.endpoint
}

// Predict posts text, unmodified, and returns the raw per-model labels
func (c *PredictClient) Predict(ctx context.Context, text string) (entity.AnalysisResponse, error) {
	body, err := json.Marshal(entity.AnalysisRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &service.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &service.ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	var result entity.AnalysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &service.ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    "failed to decode response",
			Err:        err,
		}
	}

	return result, nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
