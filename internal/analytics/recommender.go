package analytics

import (
	"fmt"
	"sort"

	"github.com/raulgutierrezyuno/ZenithPay/internal/currency"
	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

// Recovery fractions are domain heuristics (assumed recovery rates), kept
// exactly as tuned in production. They are not statistically derived.
const (
	routingRecoveryRate    = 0.6
	softRetryRecoveryRate  = 0.25
	oxxoMixRecoveryRate    = 0.3
	mexicoMixRecoveryRate  = 0.2
	pixConversionRate      = 0.3
	pixAvgTicketBRL        = 45
	tdsRecoveryRate        = 0.4
	recoveryEmailRate      = 0.15
	failoverRecoveryRate   = 0.7
	minSoftDeclineRevenue  = 1000
	minProcessingErrorRev  = 500
	minReasonRevenueImpact = 1000
)

func findDimension(metrics []domain.DimensionMetric, value string) *domain.DimensionMetric {
	for i := range metrics {
		if metrics[i].Value == value {
			return &metrics[i]
		}
	}
	return nil
}

func findReason(metrics []domain.DeclineReasonMetric, reason domain.DeclineReason) *domain.DeclineReasonMetric {
	for i := range metrics {
		if metrics[i].Reason == reason {
			return &metrics[i]
		}
	}
	return nil
}

// SynthesizeRecommendations evaluates the fixed recommendation catalogue
// against the aggregated metrics (plus the raw records, needed for the PIX
// conversion estimate) and returns the applicable actions sorted by
// estimated impact, ranks and ids reassigned after the sort.
func SynthesizeRecommendations(records []domain.Transaction, m *domain.MetricsResponse) []domain.Recommendation {
	var recs []domain.Recommendation

	// Processor routing shift: gate on a >10 point approval-rate gap
	// between the best and worst processor.
	if len(m.ByProcessor) >= 2 {
		byRate := make([]domain.DimensionMetric, len(m.ByProcessor))
		copy(byRate, m.ByProcessor)
		sort.SliceStable(byRate, func(i, j int) bool {
			return byRate[i].ApprovalRate > byRate[j].ApprovalRate
		})
		best, worst := byRate[0], byRate[len(byRate)-1]
		diff := best.ApprovalRate - worst.ApprovalRate

		if diff > 10 {
			recs = append(recs, domain.Recommendation{
				Title: fmt.Sprintf("Route %s traffic to %s", worst.Value, best.Value),
				Description: fmt.Sprintf(
					"%s has %.1f%% approval vs %s's %.1f%%. Gradually shifting traffic could recover "+
						"%.0f%% of declines. Start with a 20%% traffic split test.",
					worst.Value, worst.ApprovalRate, best.Value, best.ApprovalRate, diff),
				EstimatedImpact: worst.LostRevenue * (diff / 100) * routingRecoveryRate,
				Effort:          domain.EffortMedium,
				Category:        "Processor Optimization",
			})
		}
	}

	// Smart retry for soft declines.
	b := m.RecoverableBreakdown
	if b.SoftDeclineRevenue > minSoftDeclineRevenue {
		recs = append(recs, domain.Recommendation{
			Title: "Implement smart retry for soft declines",
			Description: fmt.Sprintf(
				"%d soft declines ($%s lost) could be partially recovered. Implement automatic retry "+
					"after 1-4 hours for \"insufficient_funds\" and \"do_not_honor\" declines. "+
					"Industry recovery rate: 20-30%%.",
				b.SoftDeclines, dollars(b.SoftDeclineRevenue)),
			EstimatedImpact: b.SoftDeclineRevenue * softRetryRecoveryRate,
			Effort:          domain.EffortLow,
			Category:        "Retry Logic",
		})
	}

	// Mexico payment-mix optimization, keyed to the OXXO method.
	if mexico := findDimension(m.ByCountry, "Mexico"); mexico != nil && mexico.ApprovalRate < 55 {
		improvement := mexico.LostRevenue * mexicoMixRecoveryRate
		if oxxo := findDimension(m.ByPaymentMethod, "oxxo"); oxxo != nil {
			improvement = oxxo.LostRevenue * oxxoMixRecoveryRate
		}
		recs = append(recs, domain.Recommendation{
			Title: "Optimize Mexico payment mix",
			Description: fmt.Sprintf(
				"Mexico has %.1f%% approval rate. OXXO cash payments have high decline rates due to "+
					"3DS failures and timeout issues. Consider promoting credit card payments with "+
					"local acquirers or adding SPEI (bank transfer) as an alternative.",
				mexico.ApprovalRate),
			EstimatedImpact: improvement,
			Effort:          domain.EffortMedium,
			Category:        "Geographic Optimization",
		})
	}

	// PIX promotion in Brazil: when PIX approves above 85% we estimate the
	// declined Brazilian credit-card volume it could convert.
	pix := findDimension(m.ByPaymentMethod, "pix")
	brazil := findDimension(m.ByCountry, "Brazil")
	if pix != nil && brazil != nil && pix.ApprovalRate > 85 {
		ccDeclines := 0
		for i := range records {
			t := &records[i]
			if t.Country == "Brazil" && t.PaymentMethod == "credit_card" && t.Status == domain.StatusDeclined {
				ccDeclines++
			}
		}
		converted := float64(ccDeclines) * pixConversionRate
		estimate := converted * pixAvgTicketBRL * currency.Rate("BRL")

		recs = append(recs, domain.Recommendation{
			Title: "Promote PIX as preferred payment in Brazil",
			Description: fmt.Sprintf(
				"PIX has %.1f%% approval rate vs credit cards. Promoting PIX at checkout for Brazilian "+
					"customers could convert %.0f declined credit card transactions.",
				pix.ApprovalRate, converted),
			EstimatedImpact: estimate,
			Effort:          domain.EffortLow,
			Category:        "Payment Method Optimization",
		})
	}

	// 3DS authentication flow remediation.
	if tds := findReason(m.TopDeclineReasons, domain.Reason3DSFailed); tds != nil && tds.RevenueImpact > minReasonRevenueImpact {
		recs = append(recs, domain.Recommendation{
			Title: "Optimize 3DS authentication flow",
			Description: fmt.Sprintf(
				"3DS failures account for %d declines ($%s lost). Review 3DS challenge flow UX, "+
					"implement frictionless 3DS 2.0 where possible, and consider exemptions for "+
					"low-risk transactions.",
				tds.Count, dollars(tds.RevenueImpact)),
			EstimatedImpact: tds.RevenueImpact * tdsRecoveryRate,
			Effort:          domain.EffortHigh,
			Category:        "Authentication Optimization",
		})
	}

	// Customer-recovery messaging for insufficient-funds declines.
	if insuff := findReason(m.TopDeclineReasons, domain.ReasonInsufficientFunds); insuff != nil && insuff.RevenueImpact > minReasonRevenueImpact {
		recs = append(recs, domain.Recommendation{
			Title: "Implement declined payment recovery emails",
			Description: fmt.Sprintf(
				"\"Insufficient Funds\" is the #1 decline reason with %d occurrences. Send automated "+
					"emails within 24 hours inviting customers to retry. Include alternative payment "+
					"method suggestions.",
				insuff.Count),
			EstimatedImpact: insuff.RevenueImpact * recoveryEmailRate,
			Effort:          domain.EffortLow,
			Category:        "Customer Recovery",
		})
	}

	// Processing-error failover.
	if b.ProcessingErrorRevenue > minProcessingErrorRev {
		recs = append(recs, domain.Recommendation{
			Title: "Add processor failover for gateway errors",
			Description: fmt.Sprintf(
				"%d transactions failed due to processing errors ($%s). Implement automatic failover "+
					"to a secondary processor when gateway timeouts or issuer unavailability is detected.",
				b.ProcessingErrors, dollars(b.ProcessingErrorRevenue)),
			EstimatedImpact: b.ProcessingErrorRevenue * failoverRecoveryRate,
			Effort:          domain.EffortMedium,
			Category:        "Infrastructure",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].EstimatedImpact > recs[j].EstimatedImpact
	})
	for i := range recs {
		recs[i].Rank = i + 1
		recs[i].ID = fmt.Sprintf("rec_%d", i+1)
	}
	return recs
}
