package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/corpus"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// ExoplanetsHandler serves GET /exoplanets: a paginated listing of the
// named corpus rows for the visualization frontend.
type ExoplanetsHandler struct {
	corpus *corpus.Corpus
}

// NewExoplanetsHandler creates the handler.
func NewExoplanetsHandler(c *corpus.Corpus) *ExoplanetsHandler {
	return &ExoplanetsHandler{corpus: c}
}

type exoplanetsResponse struct {
	Total  int                        `json:"total"`
	Offset int                        `json:"offset"`
	Limit  int                        `json:"limit"`
	Items  []transit.ExoplanetSummary `json:"items"`
}

// Handle lists one page of named corpus rows.
func (h *ExoplanetsHandler) Handle(c *gin.Context) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		renderError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", defaultPageLimit)
	if err != nil {
		renderError(c, err)
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	named, err := h.corpus.Candidates(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	items, err := h.corpus.Page(c.Request.Context(), offset, limit)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, exoplanetsResponse{
		Total:  len(named),
		Offset: offset,
		Limit:  limit,
		Items:  items,
	})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0, errors.InvalidParam(name + " must be a non-negative integer")
	}
	return val, nil
}
