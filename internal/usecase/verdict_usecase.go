package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/newsverdict/verdict/internal/domain/entity"
	"github.com/newsverdict/verdict/internal/domain/render"
	"github.com/newsverdict/verdict/internal/domain/repository"
	"github.com/newsverdict/verdict/internal/domain/service"
	"github.com/newsverdict/verdict/internal/infrastructure/metrics"
)

// Error definitions for verdict usecase
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrStaleResult     = errors.New("superseded by a newer analysis")
	ErrHistoryDisabled = errors.New("history disabled")
)

// User-facing alerts, one per error kind
const (
	MessageEmptyInput = "Please paste a news article!"
	MessageTransport  = "Could not reach the news classification service. Please try again."
	MessageProtocol   = "The news classification service returned an unexpected response."
	MessageInternal   = "Something went wrong while analyzing the article."
)

// Pagination bounds for History
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// AnalyzeInput represents the input for an analysis
type AnalyzeInput struct {
	Text      string `json:"text"`
	RequestID string `json:"-"`
}

// AnalyzeOutput represents a rendered verdict
type AnalyzeOutput struct {
	Models       map[string]string `json:"models"`
	FinalVerdict string            `json:"final_verdict"`
	Style        string            `json:"style"`
	Missing      []string          `json:"missing,omitempty"`
	LatencyMs    int64             `json:"latency_ms"`
}

// AnalysisListOutput represents paginated verdict history
type AnalysisListOutput struct {
	Analyses []*entity.Analysis `json:"analyses"`
	Total    int64              `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
	HasMore  bool               `json:"has_more"`
}

// VerdictUsecase defines the interface for the verdict adapter
type VerdictUsecase interface {
	// Analyze classifies input.Text and renders the result onto b
	Analyze(ctx context.Context, input *AnalyzeInput, b render.Bindings) (*AnalyzeOutput, error)
	// NewSession binds a surface shared by concurrent analyses. The bundled
	// hosts give every analysis its own surface and do not use it.
	NewSession(b render.Bindings) *Session
	// History lists stored verdicts, newest first
	History(ctx context.Context, limit, offset int) (*AnalysisListOutput, error)
}

type verdictUsecase struct {
	classifier service.Classifier
	history    repository.AnalysisRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewVerdictUsecase creates a new verdict usecase. history and m may be nil.
func NewVerdictUsecase(classifier service.Classifier, history repository.AnalysisRepository, m *metrics.Metrics, logger *zap.Logger) VerdictUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &verdictUsecase{
		classifier: classifier,
		history:    history,
		metrics:    m,
		logger:     logger,
	}
}

func (u *verdictUsecase) Analyze(ctx context.Context, input *AnalyzeInput, b render.Bindings) (*AnalyzeOutput, error) {
	return u.analyze(ctx, input, b, nil)
}

func (u *verdictUsecase) NewSession(b render.Bindings) *Session {
	return &Session{uc: u, bindings: b}
}

func (u *verdictUsecase) History(ctx context.Context, limit, offset int) (*AnalysisListOutput, error) {
	if u.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	analyses, total, err := u.history.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &AnalysisListOutput{
		Analyses: analyses,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		HasMore:  int64(offset+limit) < total,
	}, nil
}

func (u *verdictUsecase) analyze(ctx context.Context, input *AnalyzeInput, b render.Bindings, g *gate) (*AnalyzeOutput, error) {
	// The emptiness check trims; the transmitted text does not.
	if strings.TrimSpace(input.Text) == "" {
		render.Warn(b, MessageEmptyInput)
		u.metrics.ObserveOutcome(metrics.OutcomeEmptyInput)
		return nil, ErrEmptyInput
	}

	ticket := g.start()
	log := u.logger.With(zap.String("request_id", input.RequestID))

	start := time.Now()
	prediction, err := u.classifier.Predict(ctx, input.Text)
	latency := time.Since(start)
	u.metrics.ObserveLatency(latency)

	if err != nil {
		outcome, message := describeError(err)
		u.metrics.ObserveOutcome(outcome)
		log.Warn("Analysis failed",
			zap.String("outcome", outcome),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		if !g.alert(ticket, func() { render.Warn(b, message) }) {
			return nil, ErrStaleResult
		}
		return nil, err
	}

	if !g.render(ticket, func() { render.Render(prediction, b) }) {
		u.metrics.ObserveOutcome(metrics.OutcomeStale)
		log.Info("Dropped stale verdict", zap.Uint64("ticket", ticket))
		return nil, ErrStaleResult
	}

	u.metrics.ObserveOutcome(metrics.OutcomeRendered)
	u.metrics.ObserveVerdict(prediction.IsReal())
	log.Info("Verdict rendered",
		zap.String("verdict", string(prediction.FinalVerdict)),
		zap.String("style", string(prediction.Style())),
		zap.Strings("missing", prediction.Missing),
		zap.Duration("latency", latency),
	)

	if u.history != nil {
		record := entity.NewAnalysis(input.RequestID, input.Text, prediction, latency)
		if err := u.history.Create(context.WithoutCancel(ctx), record); err != nil {
			log.Error("Failed to store analysis", zap.Error(err))
		}
	}

	return toAnalyzeOutput(prediction, latency), nil
}

func describeError(err error) (outcome, message string) {
	switch {
	case errors.Is(err, service.ErrTransport):
		return metrics.OutcomeTransportError, MessageTransport
	case errors.Is(err, service.ErrProtocol):
		return metrics.OutcomeProtocolError, MessageProtocol
	default:
		return metrics.OutcomeError, MessageInternal
	}
}

func toAnalyzeOutput(p *entity.Prediction, latency time.Duration) *AnalyzeOutput {
	return &AnalyzeOutput{
		Models: lo.MapValues(p.ModelLabels(), func(label entity.Label, _ string) string {
			return string(label)
		}),
		FinalVerdict: string(p.FinalVerdict),
		Style:        string(p.Style()),
		Missing:      p.Missing,
		LatencyMs:    latency.Milliseconds(),
	}
}

// Session is a surface several analyses may target at once. A result is
// applied only if no later-started analysis has rendered yet.
type Session struct {
	uc       *verdictUsecase
	bindings render.Bindings
	gate     gate
}

// Analyze runs one analysis against the session's surface
func (s *Session) Analyze(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	return s.uc.analyze(ctx, input, s.bindings, &s.gate)
}

// gate orders writes to a shared surface. A nil gate lets everything through.
type gate struct {
	mu       sync.Mutex
	started  uint64
	rendered uint64
}

func (g *gate) start() uint64 {
	if g == nil {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.started++
	return g.started
}

// render applies fn unless a later ticket has already rendered
func (g *gate) render(ticket uint64, fn func()) bool {
	if g == nil {
		fn()
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket < g.rendered {
		return false
	}
	g.rendered = ticket
	fn()
	return true
}

// alert applies fn unless a later ticket has already rendered; it does not
// claim the surface.
func (g *gate) alert(ticket uint64, fn func()) bool {
	if g == nil {
		fn()
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket < g.rendered {
		return false
	}
	fn()
	return true
}
