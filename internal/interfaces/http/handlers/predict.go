package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// Inferrer is the slice of the inference engine the predict endpoint needs.
type Inferrer interface {
	Infer(ctx context.Context, input map[string]float64) (*transit.PredictionResult, error)
}

// PredictHandler serves POST /predict.
type PredictHandler struct {
	engine Inferrer
}

// NewPredictHandler creates the handler.
func NewPredictHandler(engine Inferrer) *PredictHandler {
	return &PredictHandler{engine: engine}
}

// predictRequest mirrors the raw archive field names.  Pointers distinguish
// "absent" from "zero" so the builder's documented defaults apply only to
// fields the caller actually omitted.
type predictRequest struct {
	KoiPeriod   *float64 `json:"koi_period"`
	KoiDuration *float64 `json:"koi_duration"`
	KoiDepth    *float64 `json:"koi_depth"`
	KoiPrad     *float64 `json:"koi_prad"`
	KoiTeq      *float64 `json:"koi_teq"`
	KoiInsol    *float64 `json:"koi_insol"`
	KoiModelSNR *float64 `json:"koi_model_snr"`
	KoiSteff    *float64 `json:"koi_steff"`
	KoiSlogg    *float64 `json:"koi_slogg"`
	KoiSrad     *float64 `json:"koi_srad"`
	KoiSmass    *float64 `json:"koi_smass"`
	KoiKepmag   *float64 `json:"koi_kepmag"`
	KoiFlagNT   *float64 `json:"koi_fpflag_nt"`
	KoiFlagSS   *float64 `json:"koi_fpflag_ss"`
	KoiFlagCO   *float64 `json:"koi_fpflag_co"`
	KoiFlagEC   *float64 `json:"koi_fpflag_ec"`
	RA          *float64 `json:"ra"`
	Dec         *float64 `json:"dec"`
	KoiScore    *float64 `json:"koi_score"`
}

func (r *predictRequest) toInput() map[string]float64 {
	input := make(map[string]float64, 19)
	put := func(name string, v *float64) {
		if v != nil {
			input[name] = *v
		}
	}
	put("koi_period", r.KoiPeriod)
	put("koi_duration", r.KoiDuration)
	put("koi_depth", r.KoiDepth)
	put("koi_prad", r.KoiPrad)
	put("koi_teq", r.KoiTeq)
	put("koi_insol", r.KoiInsol)
	put("koi_model_snr", r.KoiModelSNR)
	put("koi_steff", r.KoiSteff)
	put("koi_slogg", r.KoiSlogg)
	put("koi_srad", r.KoiSrad)
	put("koi_smass", r.KoiSmass)
	put("koi_kepmag", r.KoiKepmag)
	put("koi_fpflag_nt", r.KoiFlagNT)
	put("koi_fpflag_ss", r.KoiFlagSS)
	put("koi_fpflag_co", r.KoiFlagCO)
	put("koi_fpflag_ec", r.KoiFlagEC)
	put("ra", r.RA)
	put("dec", r.Dec)
	put("koi_score", r.KoiScore)
	return input
}

// Handle serves one prediction request.
func (h *PredictHandler) Handle(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, errors.InvalidParam("request body must be a JSON object with numeric fields").WithCause(err))
		return
	}

	result, err := h.engine.Infer(c.Request.Context(), req.toInput())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
