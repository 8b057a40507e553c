package analytics

import "github.com/raulgutierrezyuno/ZenithPay/internal/domain"

// AnalysisResult is the combined output of one pipeline run.
type AnalysisResult struct {
	Metrics         *domain.MetricsResponse `json:"metrics"`
	Insights        []domain.Insight        `json:"insights"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// Run executes the full pipeline against one filtered record set: the
// metrics are aggregated once and shared with the detector and the
// synthesizer. The pipeline has no I/O and cannot fail; it only reads the
// input and returns freshly allocated results.
func Run(records []domain.Transaction) *AnalysisResult {
	metrics := ComputeAll(records)
	return &AnalysisResult{
		Metrics:         metrics,
		Insights:        DetectInsights(metrics),
		Recommendations: SynthesizeRecommendations(records, metrics),
	}
}

// DetectAllInsights aggregates and detects in one call, for callers that
// only need the findings.
func DetectAllInsights(records []domain.Transaction) []domain.Insight {
	return DetectInsights(ComputeAll(records))
}

// GenerateRecommendations aggregates and synthesizes in one call, for
// callers that only need the ranked actions.
func GenerateRecommendations(records []domain.Transaction) []domain.Recommendation {
	return SynthesizeRecommendations(records, ComputeAll(records))
}
