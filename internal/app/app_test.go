package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/config"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/match"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	csv := filepath.Join(dir, "cumulative.csv")
	data := "kepler_name,koi_disposition,koi_period,koi_prad,koi_teq\n" +
		"Kepler-62f,CONFIRMED,267.291,1.41,208\n" +
		"Kepler-7b,CONFIRMED,4.89,17.9,1540\n"
	require.NoError(t, os.WriteFile(csv, []byte(data), 0o644))

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	// Point the artifacts somewhere empty: the adapter degrades to the
	// fallback path, which is a fully supported serving mode.
	cfg.Model.Path = filepath.Join(dir, "absent-classifier.json")
	cfg.Model.ScalerPath = ""
	cfg.Corpus.Path = csv
	return cfg
}

func TestBuildServesDegradedPredictions(t *testing.T) {
	application, err := Build(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	application.WarmUp(context.Background())

	body := strings.NewReader(`{"koi_prad": 1.2, "koi_teq": 290}`)
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	application.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp transit.PredictionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, transit.DispositionConfirmed, resp.Prediction)
	assert.Equal(t, transit.MatchStatusFallback, resp.MatchStatus)
	assert.GreaterOrEqual(t, resp.Confidence, 0.70)
	assert.LessOrEqual(t, resp.Confidence, 0.95)
}

func TestBuildHealthReportsDegradedModel(t *testing.T) {
	application, err := Build(context.Background(), testConfig(t), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	application.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["model_loaded"])
	assert.Equal(t, true, resp["corpus_loaded"])
}

func TestBuildRequiresConfig(t *testing.T) {
	_, err := Build(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestApplyReloadableSwapsMatcherThreshold(t *testing.T) {
	application, err := Build(context.Background(), testConfig(t), nil)
	require.NoError(t, err)

	bf, ok := application.Matcher.(*match.BruteForceMatcher)
	require.True(t, ok)
	require.InDelta(t, match.DefaultThreshold, bf.Threshold(), 1e-12)

	next := testConfig(t)
	next.Matcher.Threshold = 0.55
	application.ApplyReloadable(next)

	assert.InDelta(t, 0.55, bf.Threshold(), 1e-12)

	// A nil config is a no-op.
	application.ApplyReloadable(nil)
	assert.InDelta(t, 0.55, bf.Threshold(), 1e-12)
}
