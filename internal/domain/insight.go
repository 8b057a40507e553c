package domain

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns the sort rank of a severity (critical sorts first).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

type InsightType string

const (
	InsightUnderperformingMethod InsightType = "underperforming_method"
	InsightProcessorAnomaly      InsightType = "processor_anomaly"
	InsightHighImpactReason      InsightType = "high_impact_reason"
	InsightGeographicOutlier     InsightType = "geographic_outlier"
	InsightRecoverableRevenue    InsightType = "recoverable_revenue"
	InsightTemporalAnomaly       InsightType = "temporal_anomaly"
)

// Insight is one statistically flagged finding. Insights are ephemeral:
// ids restart at 1 on every detection run and nothing is persisted.
type Insight struct {
	ID             string      `json:"id"`
	Type           InsightType `json:"type"`
	Severity       Severity    `json:"severity"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Impact         float64     `json:"impact"`
	Recommendation string      `json:"recommendation"`
}

type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Recommendation is one ranked remediation action with a heuristic revenue
// estimate. Rank and id are reassigned after the final impact sort.
type Recommendation struct {
	ID              string  `json:"id"`
	Rank            int     `json:"rank"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EstimatedImpact float64 `json:"estimated_impact"`
	Effort          Effort  `json:"effort"`
	Category        string  `json:"category"`
}
