package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/corpus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/inference"
)

// HealthHandler serves GET /health.  The endpoint always answers 200 while
// the process is alive; degraded components show up in the body rather than
// the status code, because the service keeps answering predictions (via the
// fallback path) even without a usable model or corpus.
type HealthHandler struct {
	adapter *inference.ClassifierAdapter
	corpus  *corpus.Corpus
}

// NewHealthHandler creates the handler.  Either dependency may be nil.
func NewHealthHandler(adapter *inference.ClassifierAdapter, c *corpus.Corpus) *HealthHandler {
	return &HealthHandler{adapter: adapter, corpus: c}
}

type healthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	CorpusLoaded bool   `json:"corpus_loaded"`
	Timestamp    string `json:"timestamp"`
}

// Handle reports liveness plus component readiness.
func (h *HealthHandler) Handle(c *gin.Context) {
	modelLoaded := h.adapter != nil && !h.adapter.Incompatible()
	corpusLoaded := h.corpus != nil && h.corpus.Load(c.Request.Context()) == nil

	c.JSON(http.StatusOK, healthResponse{
		Status:       "ok",
		ModelLoaded:  modelLoaded,
		CorpusLoaded: corpusLoaded,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
