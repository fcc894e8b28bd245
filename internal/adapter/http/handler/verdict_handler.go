package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsverdict/verdict/internal/adapter/view"
	"github.com/newsverdict/verdict/internal/domain/render"
	"github.com/newsverdict/verdict/internal/usecase"
)

// AnalyzeRequest is the body of POST /api/v1/analyze
type AnalyzeRequest struct {
	Text *string `json:"text"`
}

// VerdictHandler handles the analyzer page and API
type VerdictHandler struct {
	verdictUC usecase.VerdictUsecase
}

// NewVerdictHandler creates a new verdict handler
func NewVerdictHandler(verdictUC usecase.VerdictUsecase) *VerdictHandler {
	return &VerdictHandler{verdictUC: verdictUC}
}

// Index handles GET /
func (h *VerdictHandler) Index(c *gin.Context) {
	page := view.NewPage("")
	page.RequestID = requestID(c)
	c.HTML(http.StatusOK, view.PageTemplate, page)
}

// AnalyzeForm handles POST /analyze. The page is re-rendered in every case;
// on failure it carries the alert and the results stay hidden.
func (h *VerdictHandler) AnalyzeForm(c *gin.Context) {
	text := c.PostForm("text")
	page := view.NewPage(text)
	page.RequestID = requestID(c)

	input := &usecase.AnalyzeInput{Text: text, RequestID: page.RequestID}
	status := http.StatusOK
	if _, err := h.verdictUC.Analyze(c.Request.Context(), input, page.Bindings()); err != nil {
		status = MapUsecaseError(err).StatusCode
		_ = c.Error(err)
	}

	c.HTML(status, view.PageTemplate, page)
}

// Analyze handles POST /api/v1/analyze
func (h *VerdictHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "invalid JSON body")
		return
	}
	if req.Text == nil {
		HandleInvalidRequest(c, "No 'text' provided")
		return
	}

	input := &usecase.AnalyzeInput{Text: *req.Text, RequestID: requestID(c)}
	output, err := h.verdictUC.Analyze(c.Request.Context(), input, render.NewRecorder().Bindings())
	if err != nil {
		_ = c.Error(err)
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListAnalyses handles GET /api/v1/analyses
func (h *VerdictHandler) ListAnalyses(c *gin.Context) {
	pagination := ParsePagination(c)

	output, err := h.verdictUC.History(c.Request.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
