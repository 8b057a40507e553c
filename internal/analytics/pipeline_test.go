package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulgutierrezyuno/ZenithPay/internal/generator"
)

func TestRunEmptyRecordSet(t *testing.T) {
	result := Run(nil)

	require.NotNil(t, result.Metrics)
	assert.Equal(t, 0.0, result.Metrics.KPIs.ApprovalRate)
	assert.Len(t, result.Metrics.HourlyPattern, 24)
	for _, h := range result.Metrics.HourlyPattern {
		assert.Equal(t, 0, h.Total)
	}
	assert.Empty(t, result.Insights)
	assert.Empty(t, result.Recommendations)
}

func TestRunIsIdempotent(t *testing.T) {
	records := generator.Generate(1500, 7)

	first := Run(records)
	second := Run(records)

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Insights, second.Insights)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestRunDoesNotMutateInput(t *testing.T) {
	records := generator.Generate(300, 11)
	snapshot := make([]byte, 0)
	for i := range records {
		snapshot = append(snapshot, records[i].ID...)
		snapshot = append(snapshot, byte(records[i].Status[0]))
	}

	Run(records)

	after := make([]byte, 0)
	for i := range records {
		after = append(after, records[i].ID...)
		after = append(after, byte(records[i].Status[0]))
	}
	assert.Equal(t, snapshot, after)
}

func TestRunSharesMetricsAcrossStages(t *testing.T) {
	records := generator.Generate(2000, generator.DefaultSeed)
	result := Run(records)

	// The standalone call shapes agree with the combined pipeline.
	assert.Equal(t, result.Insights, DetectAllInsights(records))
	assert.Equal(t, result.Recommendations, GenerateRecommendations(records))
}
