// Package transit defines the shared API types for transit-signal
// classification results.  It is imported by both the inference core and the
// interface layers and therefore must stay free of internal dependencies.
package transit

// Disposition is the three-way classification outcome for a transit signal.
type Disposition string

const (
	DispositionConfirmed     Disposition = "CONFIRMED"
	DispositionCandidate     Disposition = "CANDIDATE"
	DispositionFalsePositive Disposition = "FALSE POSITIVE"
)

// Dispositions lists the three labels in the order the label decoder and the
// classifier were fitted on.
func Dispositions() []Disposition {
	return []Disposition{DispositionConfirmed, DispositionCandidate, DispositionFalsePositive}
}

// MatchStatus tags how the reported planet name was obtained.
type MatchStatus string

const (
	// MatchStatusExisting means a corpus record cleared the similarity
	// threshold and its catalog name is reported.
	MatchStatusExisting MatchStatus = "matched_existing"

	// MatchStatusGenerated means no corpus record was close enough and a
	// deterministic placeholder name was generated.
	MatchStatusGenerated MatchStatus = "generated_name"

	// MatchStatusFallback means the primary classifier was incompatible and
	// the rule-based fallback produced the prediction.
	MatchStatusFallback MatchStatus = "fallback_prediction"

	// MatchStatusError means inference failed and the payload carries only
	// diagnostic information.
	MatchStatusError MatchStatus = "error"
)

// PredictionResult is the aggregate inference output.  It is created once per
// request, immutable after construction, and never persisted.
type PredictionResult struct {
	Prediction        Disposition        `json:"prediction"`
	Probabilities     map[string]float64 `json:"probabilities"`
	Confidence        float64            `json:"confidence"`
	HabitabilityScore float64            `json:"habitability_score"`
	PlanetType        string             `json:"planet_type"`
	StarType          string             `json:"star_type"`
	PlanetName        string             `json:"planet_name"`
	MatchStatus       MatchStatus        `json:"match_status"`
	SimilarityScore   float64            `json:"similarity_score"`
}

// CorpusStats summarises the loaded reference corpus for the /stats surface.
type CorpusStats struct {
	TotalRecords   int     `json:"total_records"`
	Confirmed      int     `json:"confirmed"`
	Candidates     int     `json:"candidates"`
	FalsePositives int     `json:"false_positives"`
	Habitable      int     `json:"potentially_habitable"`
	ModelAccuracy  float64 `json:"model_accuracy"`
}

// ExoplanetSummary is one corpus row shaped for visualization listings.
type ExoplanetSummary struct {
	Name              string  `json:"name"`
	Period            float64 `json:"period"`
	Radius            float64 `json:"radius"`
	Temperature       float64 `json:"temperature"`
	Disposition       string  `json:"disposition"`
	HabitabilityScore float64 `json:"habitability_score"`
}
