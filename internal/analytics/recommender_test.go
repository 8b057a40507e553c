package analytics

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

func recommendationsFor(records []domain.Transaction) []domain.Recommendation {
	return SynthesizeRecommendations(records, ComputeAll(records))
}

func TestRecommendationsEmptyRecordSet(t *testing.T) {
	assert.Empty(t, recommendationsFor(nil))
}

func TestProcessorRoutingRecommendation(t *testing.T) {
	// 50-point approval gap between processors, well past the 10-point gate.
	records := processorScenario()

	recs := recommendationsFor(records)

	require.NotEmpty(t, recs)
	routing := recs[0]
	assert.Equal(t, "Processor Optimization", routing.Category)
	assert.Contains(t, routing.Title, "ConektaMX")
	assert.Equal(t, domain.EffortMedium, routing.Effort)
	// worst lost revenue (66 * $20) x gap fraction x 0.6 recovery rate.
	assert.InDelta(t, 66*20*0.5*0.6, routing.EstimatedImpact, 1e-6)
}

func TestSoftDeclineRetryRecommendation(t *testing.T) {
	var records []domain.Transaction
	for i := 0; i < 20; i++ {
		records = append(records, declinedTxn(testDay, 100, "USD", "US", "credit_card", "StripeConnect", domain.ReasonDoNotHonor))
	}

	recs := recommendationsFor(records)

	var retry *domain.Recommendation
	for i := range recs {
		if recs[i].Category == "Retry Logic" {
			retry = &recs[i]
		}
	}
	require.NotNil(t, retry)
	assert.Equal(t, domain.EffortLow, retry.Effort)
	assert.InDelta(t, 2000*0.25, retry.EstimatedImpact, 1e-9)
}

func TestMexicoMixRecommendationGates(t *testing.T) {
	// Mexico at 50% approval (below the 55% gate) with an oxxo breakdown.
	var records []domain.Transaction
	for i := 0; i < 10; i++ {
		records = append(records, approvedTxn(testDay, 1000, "MXN", "Mexico", "oxxo", "ConektaMX"))
	}
	for i := 0; i < 10; i++ {
		records = append(records, declinedTxn(testDay, 1000, "MXN", "Mexico", "oxxo", "ConektaMX", domain.ReasonExpiredCard))
	}

	recs := recommendationsFor(records)

	var mix *domain.Recommendation
	for i := range recs {
		if recs[i].Category == "Geographic Optimization" {
			mix = &recs[i]
		}
	}
	require.NotNil(t, mix)
	// oxxo lost revenue: 10 x 1000 MXN x 0.055 = $550, x 0.3 recovery.
	assert.InDelta(t, 550*0.3, mix.EstimatedImpact, 1e-9)

	// Above the gate no recommendation is produced.
	records = append(records, approvedTxn(testDay, 1000, "MXN", "Mexico", "oxxo", "ConektaMX"))
	for i := 0; i < 10; i++ {
		records = append(records, approvedTxn(testDay, 1000, "MXN", "Mexico", "credit_card", "ConektaMX"))
	}
	for _, rec := range recommendationsFor(records) {
		assert.NotEqual(t, "Geographic Optimization", rec.Category)
	}
}

func TestPixPromotionRecommendation(t *testing.T) {
	var records []domain.Transaction
	for i := 0; i < 20; i++ {
		records = append(records, approvedTxn(testDay, 100, "BRL", "Brazil", "pix", "PayUBrasil"))
	}
	for i := 0; i < 10; i++ {
		records = append(records, declinedTxn(testDay, 100, "BRL", "Brazil", "credit_card", "PayUBrasil", domain.ReasonDoNotHonor))
	}

	recs := recommendationsFor(records)

	var pix *domain.Recommendation
	for i := range recs {
		if recs[i].Category == "Payment Method Optimization" {
			pix = &recs[i]
		}
	}
	require.NotNil(t, pix)
	// 10 declined Brazilian card payments x 0.3 conversion x $45 avg ticket
	// in BRL x 0.18 normalization.
	assert.InDelta(t, 10*0.3*45*0.18, pix.EstimatedImpact, 1e-9)
	assert.Equal(t, domain.EffortLow, pix.Effort)
}

func TestRecommendationRanksAndOrdering(t *testing.T) {
	// A rich scenario that trips several gates at once.
	records := processorScenario()
	for i := 0; i < 30; i++ {
		records = append(records, declinedTxn(testDay, 100, "USD", "US", "credit_card", "StripeConnect", domain.ReasonInsufficientFunds))
	}
	for i := 0; i < 15; i++ {
		records = append(records, declinedTxn(testDay, 100, "USD", "US", "credit_card", "StripeConnect", domain.Reason3DSFailed))
	}
	for i := 0; i < 10; i++ {
		records = append(records, declinedTxn(testDay, 100, "USD", "US", "credit_card", "StripeConnect", domain.ReasonGatewayTimeout))
	}

	recs := recommendationsFor(records)
	require.GreaterOrEqual(t, len(recs), 4)

	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Rank, "ranks are contiguous from 1")
		assert.Equal(t, "rec_"+strconv.Itoa(i+1), rec.ID, "ids are reassigned after the sort")
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].EstimatedImpact, rec.EstimatedImpact,
				"impact must be non-increasing")
		}
	}
}
