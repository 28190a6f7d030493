package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
	"github.com/richlegrande-dot/care2connect-intake/internal/interfaces/http/middleware"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// ExtractionRequest is the POST /api/v1/extractions body.
type ExtractionRequest struct {
	// Transcript is the raw narrative text, typically speech-to-text output.
	Transcript string `json:"transcript"`
	// CategoryHint optionally pre-seeds the category from an intake form.
	CategoryHint string `json:"category_hint,omitempty"`
}

// ExtractionResponse wraps the engine result with request metadata.
type ExtractionResponse struct {
	RequestID    string                   `json:"request_id"`
	RulesVersion string                   `json:"rules_version"`
	Result       *intake.ExtractionResult `json:"result"`
}

// ExtractionHandler serves the extraction endpoint.
type ExtractionHandler struct {
	engine *extraction.Engine
	logger logging.Logger
}

// NewExtractionHandler wires the handler to an engine.
func NewExtractionHandler(engine *extraction.Engine, logger logging.Logger) *ExtractionHandler {
	return &ExtractionHandler{engine: engine, logger: logger.Named("extraction-handler")}
}

// Extract handles POST /api/v1/extractions.
//
// Malformed JSON and unknown category hints are the caller's fault and get a
// 400; everything past request parsing is covered by the engine's failsafe
// contract, so a parseable request always gets a 200 with a result — possibly
// a degraded one.
func (h *ExtractionHandler) Extract(c *gin.Context) {
	var req ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	hint := intake.CategoryLabel(req.CategoryHint)
	if req.CategoryHint != "" && !hint.IsValid() {
		respondError(c, errors.New(errors.ErrCodeValidation, "unknown category hint").
			WithDetail(req.CategoryHint))
		return
	}

	result := h.engine.ExtractWithHint(req.Transcript, hint)
	c.JSON(http.StatusOK, ExtractionResponse{
		RequestID:    middleware.GetRequestID(c),
		RulesVersion: h.engine.RulesVersion(),
		Result:       result,
	})
}
