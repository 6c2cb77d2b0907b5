package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitabilityScoreGradedBands(t *testing.T) {
	tests := []struct {
		name              string
		teq, radius, insol float64
		want              float64
	}{
		{"earth analog, all strict bands", 288, 1.0, 1.0, 100},
		{"all extended bands", 210, 1.8, 3.0, 45},
		{"nothing in band", 1000, 5.0, 50.0, 0},
		{"strict temp only", 300, 5.0, 50.0, 40},
		{"strict radius only", 1000, 1.2, 50.0, 30},
		{"strict insol only", 1000, 5.0, 1.0, 30},
		{"mixed strict and extended", 250, 1.0, 2.0, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HabitabilityScore(tt.teq, tt.radius, tt.insol), 1e-9)
		})
	}
}

func TestHabitabilityScoreBounds(t *testing.T) {
	// Any finite input stays inside [0, 100].
	inputs := []struct{ teq, radius, insol float64 }{
		{-500, -3, -1},
		{288, 1, 1},
		{1e9, 1e9, 1e9},
		{273, 0.8, 0.25},
		{373, 1.5, 1.5},
	}
	for _, in := range inputs {
		s := HabitabilityScore(in.teq, in.radius, in.insol)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}

func TestPlanetCategoryBoundaries(t *testing.T) {
	tests := []struct {
		radius float64
		want   string
	}{
		{0.5, PlanetSubEarth},
		{0.79, PlanetSubEarth},
		{0.8, PlanetEarthLike},
		{1.25, PlanetEarthLike}, // upper bound inclusive
		{1.26, PlanetSuperEarth},
		{2.0, PlanetSuperEarth},
		{2.5, PlanetMiniNeptune},
		{4.0, PlanetMiniNeptune},
		{4.01, PlanetGiant},
		{11.2, PlanetGiant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlanetCategory(tt.radius), "radius=%g", tt.radius)
	}
}

func TestStarCategoryBoundaries(t *testing.T) {
	tests := []struct {
		teff float64
		want string
	}{
		{3000, StarMDwarf},
		{3699, StarMDwarf},
		{3700, StarKDwarf}, // strictly less-than bounds
		{5199, StarKDwarf},
		{5200, StarGDwarf},
		{5778, StarGDwarf},
		{6000, StarFDwarf},
		{7499, StarFDwarf},
		{7500, StarADwarf},
		{9000, StarADwarf},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StarCategory(tt.teff), "teff=%g", tt.teff)
	}
}

func TestDeriveAttributesFromDefaults(t *testing.T) {
	v, err := Build(nil)
	require.NoError(t, err)

	attrs := DeriveAttributes(v)
	assert.InDelta(t, 100.0, attrs.HabitabilityScore, 1e-9)
	assert.Equal(t, PlanetEarthLike, attrs.PlanetType)
	assert.Equal(t, StarGDwarf, attrs.StarType)
}

func TestDeriveAttributesHotGiant(t *testing.T) {
	v, err := Build(map[string]float64{
		"koi_prad":  5.0,
		"koi_teq":   1000,
		"koi_steff": 8000,
		"koi_insol": 500,
	})
	require.NoError(t, err)

	attrs := DeriveAttributes(v)
	assert.Equal(t, PlanetGiant, attrs.PlanetType)
	assert.Equal(t, StarADwarf, attrs.StarType)
	assert.InDelta(t, 0.0, attrs.HabitabilityScore, 1e-9)
}
