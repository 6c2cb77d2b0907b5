package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

func writeFixtures(t *testing.T) (configPath, inputPath string) {
	t.Helper()
	dir := t.TempDir()

	csv := filepath.Join(dir, "cumulative.csv")
	require.NoError(t, os.WriteFile(csv, []byte(
		"kepler_name,koi_disposition,koi_period,koi_prad,koi_teq\n"+
			"Kepler-62f,CONFIRMED,267.291,1.41,208\n"+
			"Kepler-7b,CONFIRMED,4.89,17.9,1540\n"+
			",CANDIDATE,2.2,2.26,900\n"), 0o644))

	configPath = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"log:\n  level: error\n"+
			"model:\n  path: "+filepath.Join(dir, "absent.json")+"\n"+
			"corpus:\n  path: "+csv+"\n"), 0o644))

	inputPath = filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(`{"koi_prad": 1.2, "koi_teq": 290}`), 0o644))
	return configPath, inputPath
}

func runCommand(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	return out, root.Execute()
}

func TestPredictCommand(t *testing.T) {
	configPath, inputPath := writeFixtures(t)

	out, err := runCommand(t, "predict", "-c", configPath, "-f", inputPath)
	require.NoError(t, err)

	var result transit.PredictionResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	// Without a usable model artifact the rule-based path answers.
	assert.Equal(t, transit.DispositionConfirmed, result.Prediction)
	assert.Equal(t, transit.MatchStatusFallback, result.MatchStatus)
	assert.NotEmpty(t, result.PlanetName)
}

func TestPredictCommandRejectsMalformedInput(t *testing.T) {
	configPath, _ := writeFixtures(t)
	dir := t.TempDir()
	badInput := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badInput, []byte(`["not", "an", "object"]`), 0o644))

	_, err := runCommand(t, "predict", "-c", configPath, "-f", badInput)
	require.Error(t, err)
}

func TestCorpusStatsCommand(t *testing.T) {
	configPath, _ := writeFixtures(t)

	out, err := runCommand(t, "corpus", "stats", "-c", configPath)
	require.NoError(t, err)

	var stats transit.CorpusStats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Candidates)
}

func TestCorpusListCommand(t *testing.T) {
	configPath, _ := writeFixtures(t)

	out, err := runCommand(t, "corpus", "list", "-c", configPath, "--limit", "1")
	require.NoError(t, err)

	var page []transit.ExoplanetSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	require.Len(t, page, 1)
	assert.Equal(t, "Kepler-62f", page[0].Name)
}
