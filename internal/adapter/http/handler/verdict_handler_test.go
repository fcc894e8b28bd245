package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsverdict/verdict/internal/adapter/http/middleware"
	"github.com/newsverdict/verdict/internal/adapter/view"
	"github.com/newsverdict/verdict/internal/domain/entity"
	"github.com/newsverdict/verdict/internal/domain/render"
	"github.com/newsverdict/verdict/internal/domain/service"
	"github.com/newsverdict/verdict/internal/usecase"
)

// MockVerdictUsecase is a mock implementation of VerdictUsecase. Analyze
// renders the prediction it was given so the page reflects it.
type MockVerdictUsecase struct {
	mock.Mock
}

func (m *MockVerdictUsecase) Analyze(ctx context.Context, input *usecase.AnalyzeInput, b render.Bindings) (*usecase.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if p, ok := args.Get(0).(*entity.Prediction); ok && p != nil {
		render.Render(p, b)
		return &usecase.AnalyzeOutput{
			FinalVerdict: string(p.FinalVerdict),
			Style:        string(p.Style()),
		}, args.Error(1)
	}
	if msg, ok := args.Get(2).(string); ok && msg != "" {
		render.Warn(b, msg)
	}
	return nil, args.Error(1)
}

func (m *MockVerdictUsecase) NewSession(b render.Bindings) *usecase.Session {
	return nil
}

func (m *MockVerdictUsecase) History(ctx context.Context, limit, offset int) (*usecase.AnalysisListOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AnalysisListOutput), args.Error(1)
}

func setupVerdictRouter(h *VerdictHandler) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	r.GET("/", h.Index)
	r.POST("/analyze", h.AnalyzeForm)
	r.POST("/api/v1/analyze", h.Analyze)
	r.GET("/api/v1/analyses", h.ListAnalyses)
	return r
}

func fakePrediction() *entity.Prediction {
	return &entity.Prediction{
		NaiveBayes:       "FAKE",
		DecisionTree:     "REAL",
		RandomForest:     "FAKE",
		GradientBoosting: "FAKE",
		StackingModel:    "FAKE",
		FinalVerdict:     "FAKE",
	}
}

func TestIndex(t *testing.T) {
	router := setupVerdictRouter(NewVerdictHandler(new(MockVerdictUsecase)))

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="newsInput"`)
	assert.Contains(t, w.Body.String(), `class="results hidden"`)
}

func TestAnalyzeForm_Success(t *testing.T) {
	mockUC := new(MockVerdictUsecase)
	router := setupVerdictRouter(NewVerdictHandler(mockUC))

	mockUC.On("Analyze", mock.Anything, mock.MatchedBy(func(in *usecase.AnalyzeInput) bool {
		return in.Text == "Scientists confirm..." && in.RequestID != ""
	})).Return(fakePrediction(), nil, "")

	form := url.Values{"text": {"Scientists confirm..."}}
	req, _ := http.NewRequest("POST", "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<div id="results" class="results">`)
	assert.Contains(t, body, `<td id="dt">REAL</td>`)
	assert.Contains(t, body, `<span id="finalVerdict" class="verdict fake">FAKE</span>`)
	mockUC.AssertExpectations(t)
}

func TestAnalyzeForm_EmptyInput(t *testing.T) {
	mockUC := new(MockVerdictUsecase)
	router := setupVerdictRouter(NewVerdictHandler(mockUC))

	mockUC.On("Analyze", mock.Anything, mock.Anything).Return(nil, usecase.ErrEmptyInput, usecase.MessageEmptyInput)

	form := url.Values{"text": {"   "}}
	req, _ := http.NewRequest("POST", "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), usecase.MessageEmptyInput)
	assert.Contains(t, w.Body.String(), `class="results hidden"`)
}

func TestAnalyze_API(t *testing.T) {
	t.Run("returns verdict", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := setupVerdictRouter(NewVerdictHandler(mockUC))

		mockUC.On("Analyze", mock.Anything, mock.MatchedBy(func(in *usecase.AnalyzeInput) bool {
			return in.Text == " raw text "
		})).Return(fakePrediction(), nil, "")

		body, _ := json.Marshal(map[string]string{"text": " raw text "})
		req, _ := http.NewRequest("POST", "/api/v1/analyze", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		data := response.Data.(map[string]interface{})
		assert.Equal(t, "FAKE", data["final_verdict"])
		assert.Equal(t, "verdict fake", data["style"])
	})

	t.Run("missing text", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := setupVerdictRouter(NewVerdictHandler(mockUC))

		req, _ := http.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No 'text' provided")
		mockUC.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		router := setupVerdictRouter(NewVerdictHandler(new(MockVerdictUsecase)))

		req, _ := http.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"text":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upstream unavailable", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := setupVerdictRouter(NewVerdictHandler(mockUC))

		mockUC.On("Analyze", mock.Anything, mock.Anything).
			Return(nil, &service.TransportError{Err: context.DeadlineExceeded}, usecase.MessageTransport)

		req, _ := http.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"text":"news"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", response.Error.Code)
		assert.Equal(t, usecase.MessageTransport, response.Error.Message)
	})
}

func TestListAnalyses(t *testing.T) {
	t.Run("returns history page", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := setupVerdictRouter(NewVerdictHandler(mockUC))

		mockUC.On("History", mock.Anything, 10, 5).Return(&usecase.AnalysisListOutput{
			Analyses: []*entity.Analysis{{RequestID: "req-1", FinalVerdict: "REAL"}},
			Total:    6,
			Limit:    10,
			Offset:   5,
		}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/analyses?limit=10&offset=5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "req-1")
		mockUC.AssertExpectations(t)
	})

	t.Run("history disabled", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := setupVerdictRouter(NewVerdictHandler(mockUC))

		mockUC.On("History", mock.Anything, usecase.DefaultHistoryLimit, 0).Return(nil, usecase.ErrHistoryDisabled)

		req, _ := http.NewRequest("GET", "/api/v1/analyses", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVerdictHandler_RequestIDRoundTrip(t *testing.T) {
	newRouter := func(h *VerdictHandler) *gin.Engine {
		r := gin.New()
		r.SetHTMLTemplate(view.Templates())
		r.Use(middleware.RequestID())
		r.POST("/analyze", h.AnalyzeForm)
		r.POST("/api/v1/analyze", h.Analyze)
		return r
	}

	t.Run("form page passes the caller's id to the analysis", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := newRouter(NewVerdictHandler(mockUC))

		mockUC.On("Analyze", mock.Anything, mock.MatchedBy(func(in *usecase.AnalyzeInput) bool {
			return in.RequestID == "req-form-42"
		})).Return(fakePrediction(), nil, "")

		form := url.Values{"text": {"Breaking news"}}
		req, _ := http.NewRequest("POST", "/analyze", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set(middleware.RequestIDHeader, "req-form-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-form-42", w.Header().Get(middleware.RequestIDHeader))
		mockUC.AssertExpectations(t)
	})

	t.Run("API echoes the id in meta", func(t *testing.T) {
		mockUC := new(MockVerdictUsecase)
		router := newRouter(NewVerdictHandler(mockUC))

		var seen string
		mockUC.On("Analyze", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				seen = args.Get(1).(*usecase.AnalyzeInput).RequestID
			}).
			Return(fakePrediction(), nil, "")

		req, _ := http.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"text":"Breaking news"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		headerID := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, headerID)
		assert.Equal(t, headerID, response.Meta.RequestID)
		assert.Equal(t, headerID, seen)
	})
}
