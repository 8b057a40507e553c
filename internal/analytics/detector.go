package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

// detectRun owns the sequential insight-id counter for one detection run.
// Every run starts a fresh counter, so concurrent detections never share
// state and ids are only unique within a single run.
type detectRun struct {
	lastID int
}

func (r *detectRun) nextID() string {
	r.lastID++
	return fmt.Sprintf("insight_%d", r.lastID)
}

// dollars formats a rounded USD amount with thousands separators.
func dollars(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// DetectInsights runs every detector family against the already-aggregated
// metrics and returns the findings ordered by severity rank, then impact
// descending. The metrics are read-only; nothing is recomputed.
func DetectInsights(m *domain.MetricsResponse) []domain.Insight {
	run := &detectRun{}

	var insights []domain.Insight
	insights = append(insights, run.recoverableRevenue(m)...)
	insights = append(insights, run.underperformingMethods(m)...)
	insights = append(insights, run.processorAnomalies(m)...)
	insights = append(insights, run.highImpactReasons(m)...)
	insights = append(insights, run.geographicOutliers(m)...)
	insights = append(insights, run.temporalAnomalies(m)...)

	sort.SliceStable(insights, func(i, j int) bool {
		if d := insights[i].Severity.Rank() - insights[j].Severity.Rank(); d != 0 {
			return d < 0
		}
		return insights[i].Impact > insights[j].Impact
	})
	return insights
}

// underperformingMethods flags payment methods whose approval rate falls
// below -1.5 sigma of the across-method mean, with volume above 50.
func (r *detectRun) underperformingMethods(m *domain.MetricsResponse) []domain.Insight {
	byMethod := m.ByPaymentMethod
	if len(byMethod) == 0 {
		return nil
	}
	globalRate := m.KPIs.ApprovalRate

	rates := make([]float64, len(byMethod))
	for i, dm := range byMethod {
		rates[i] = dm.ApprovalRate
	}
	mn, sd := mean(rates), stdDev(rates)

	var insights []domain.Insight
	for _, dm := range byMethod {
		z := zScore(dm.ApprovalRate, mn, sd)
		if z >= -1.5 || dm.Total <= 50 {
			continue
		}
		diff := globalRate - dm.ApprovalRate
		severity := domain.SeverityWarning
		if z < -2 {
			severity = domain.SeverityCritical
		}
		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightUnderperformingMethod,
			Severity: severity,
			Title: fmt.Sprintf("%s has %.1f%% approval rate (z=%.2f)",
				strings.ToUpper(dm.Value), dm.ApprovalRate, z),
			Description: fmt.Sprintf(
				"%s payments have an approval rate %.1f%% below the global average of %.1f%% "+
					"(z-score: %.2f, threshold: -1.5σ). This affects %d transactions with $%s in lost revenue.",
				dm.Value, diff, globalRate, z, dm.Declined, dollars(dm.LostRevenue)),
			Impact: dm.LostRevenue,
			Recommendation: fmt.Sprintf(
				"Investigate %s decline reasons and consider implementing retry logic or "+
					"offering alternative payment methods to affected customers.", dm.Value),
		})
	}
	return insights
}

// processorAnomalies compares processors against each other. The worst
// processor is flagged when it sits below -1.5 sigma with volume above 100;
// every other processor below -1 sigma gets a separate warning.
func (r *detectRun) processorAnomalies(m *domain.MetricsResponse) []domain.Insight {
	byProcessor := m.ByProcessor
	if len(byProcessor) < 2 {
		return nil
	}
	globalRate := m.KPIs.ApprovalRate

	rates := make([]float64, len(byProcessor))
	for i, p := range byProcessor {
		rates[i] = p.ApprovalRate
	}
	mn, sd := mean(rates), stdDev(rates)

	byRate := make([]domain.DimensionMetric, len(byProcessor))
	copy(byRate, byProcessor)
	sort.SliceStable(byRate, func(i, j int) bool {
		return byRate[i].ApprovalRate < byRate[j].ApprovalRate
	})
	worst, best := byRate[0], byRate[len(byRate)-1]
	diff := best.ApprovalRate - worst.ApprovalRate
	worstZ := zScore(worst.ApprovalRate, mn, sd)

	var insights []domain.Insight
	if worstZ < -1.5 && worst.Total > 100 {
		severity := domain.SeverityWarning
		if worstZ < -2 {
			severity = domain.SeverityCritical
		}
		impact := worst.LostRevenue * (diff / 100)
		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightProcessorAnomaly,
			Severity: severity,
			Title: fmt.Sprintf("%s underperforms by %.1f%% vs %s (z=%.2f)",
				worst.Value, diff, best.Value, worstZ),
			Description: fmt.Sprintf(
				"%s has %.1f%% approval rate compared to %s's %.1f%% (z-score: %.2f). "+
					"Routing traffic away from %s could recover significant revenue.",
				worst.Value, worst.ApprovalRate, best.Value, best.ApprovalRate, worstZ, worst.Value),
			Impact: impact,
			Recommendation: fmt.Sprintf(
				"Consider routing %s traffic to %s where possible. Estimated monthly impact: $%s/month.",
				worst.Value, best.Value, dollars(impact)),
		})
	}

	for _, p := range byProcessor {
		z := zScore(p.ApprovalRate, mn, sd)
		if z >= -1 || p.Total <= 100 || p.Value == worst.Value {
			continue
		}
		pDiff := globalRate - p.ApprovalRate
		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightProcessorAnomaly,
			Severity: domain.SeverityWarning,
			Title: fmt.Sprintf("%s approval rate is %.1f%% below average (z=%.2f)",
				p.Value, pDiff, z),
			Description: fmt.Sprintf(
				"%s processes %d transactions at %.1f%% approval rate (z-score: %.2f, below -1σ threshold).",
				p.Value, p.Total, p.ApprovalRate, z),
			Impact: p.LostRevenue * (pDiff / 100),
			Recommendation: fmt.Sprintf(
				"Review %s configuration and consider A/B testing traffic splits with alternative processors.",
				p.Value),
		})
	}
	return insights
}

// highImpactReasons flags decline reasons whose revenue impact sits above
// +1 sigma of the reasons' own distribution and above 2% of total revenue.
func (r *detectRun) highImpactReasons(m *domain.MetricsResponse) []domain.Insight {
	reasons := m.TopDeclineReasons
	if len(reasons) == 0 {
		return nil
	}
	totalRevenue := m.KPIs.TotalRevenue + m.KPIs.LostRevenue
	if totalRevenue == 0 {
		return nil
	}

	impacts := make([]float64, len(reasons))
	for i, rm := range reasons {
		impacts[i] = rm.RevenueImpact
	}
	mn, sd := mean(impacts), stdDev(impacts)

	var insights []domain.Insight
	for _, rm := range reasons {
		revenuePercent := rm.RevenueImpact / totalRevenue * 100
		z := zScore(rm.RevenueImpact, mn, sd)
		if z <= 1 || revenuePercent <= 2 {
			continue
		}
		severity := domain.SeverityWarning
		if z > 2 {
			severity = domain.SeverityCritical
		}

		recoverability := "non-recoverable"
		recommendation := fmt.Sprintf(
			"Review fraud rules and card validation processes to reduce %q declines.", rm.Label)
		if rm.IsRecoverable {
			recoverability = "potentially recoverable"
			recommendation = fmt.Sprintf(
				"Implement retry logic for %q declines. Consider sending customer notifications "+
					"to retry with alternative payment methods.", rm.Label)
		}

		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightHighImpactReason,
			Severity: severity,
			Title: fmt.Sprintf("%q costs $%s (%.1f%% of revenue, z=%.2f)",
				rm.Label, dollars(rm.RevenueImpact), revenuePercent, z),
			Description: fmt.Sprintf(
				"%d transactions declined due to %q (%s). Revenue impact is %.1f standard deviations "+
					"above the mean decline reason impact. This is %s.",
				rm.Count, rm.Label, strings.ReplaceAll(string(rm.Category), "_", " "), z, recoverability),
			Impact:         rm.RevenueImpact,
			Recommendation: recommendation,
		})
	}
	return insights
}

// geographicOutliers flags countries below -1.5 sigma with volume above 100.
func (r *detectRun) geographicOutliers(m *domain.MetricsResponse) []domain.Insight {
	byCountry := m.ByCountry
	if len(byCountry) == 0 {
		return nil
	}
	globalRate := m.KPIs.ApprovalRate

	rates := make([]float64, len(byCountry))
	for i, c := range byCountry {
		rates[i] = c.ApprovalRate
	}
	mn, sd := mean(rates), stdDev(rates)

	var insights []domain.Insight
	for _, c := range byCountry {
		z := zScore(c.ApprovalRate, mn, sd)
		if z >= -1.5 || c.Total <= 100 {
			continue
		}
		diff := globalRate - c.ApprovalRate
		severity := domain.SeverityWarning
		if z < -2 {
			severity = domain.SeverityCritical
		}
		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightGeographicOutlier,
			Severity: severity,
			Title: fmt.Sprintf("%s has %.1f%% approval rate (z=%.2f, %.1f%% below avg)",
				c.Value, c.ApprovalRate, z, diff),
			Description: fmt.Sprintf(
				"%s processes %d transactions but only approves %.1f%% (z-score: %.2f, below -1.5σ). "+
					"Lost revenue: $%s.",
				c.Value, c.Total, c.ApprovalRate, z, dollars(c.LostRevenue)),
			Impact: c.LostRevenue,
			Recommendation: fmt.Sprintf(
				"Investigate %s-specific decline patterns. Consider local processor optimization "+
					"or alternative payment methods popular in %s.", c.Value, c.Value),
		})
	}
	return insights
}

// recoverableRevenue is a fixed-threshold rule, independent of z-scores:
// soft-decline revenue above 1000 USD is critical, processing-error revenue
// above 500 USD is a warning.
func (r *detectRun) recoverableRevenue(m *domain.MetricsResponse) []domain.Insight {
	b := m.RecoverableBreakdown
	totalLost := b.SoftDeclineRevenue + b.HardDeclineRevenue + b.ProcessingErrorRevenue
	if totalLost == 0 {
		return nil
	}
	recoverablePercent := (b.SoftDeclineRevenue + b.ProcessingErrorRevenue) / totalLost * 100

	var insights []domain.Insight
	if b.SoftDeclineRevenue > 1000 {
		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightRecoverableRevenue,
			Severity: domain.SeverityCritical,
			Title: fmt.Sprintf("$%s in potentially recoverable revenue from soft declines",
				dollars(b.SoftDeclineRevenue)),
			Description: fmt.Sprintf(
				"%.0f%% of all declined revenue ($%s) comes from soft declines (insufficient funds, "+
					"velocity limits, 3DS failures) that could be recovered through retry logic or "+
					"customer communication.",
				recoverablePercent, dollars(b.SoftDeclineRevenue)),
			Impact: b.SoftDeclineRevenue,
			Recommendation: "Implement automatic retry for soft declines after 1-4 hours. " +
				"Send email/SMS notifications to customers with soft declines suggesting they retry " +
				"or use an alternative payment method.",
		})
	}

	if b.ProcessingErrorRevenue > 500 {
		insights = append(insights, domain.Insight{
			ID:       r.nextID(),
			Type:     domain.InsightRecoverableRevenue,
			Severity: domain.SeverityWarning,
			Title: fmt.Sprintf("$%s lost to processing errors",
				dollars(b.ProcessingErrorRevenue)),
			Description: fmt.Sprintf(
				"Processing errors (gateway timeouts, issuer unavailable) account for %d transactions. "+
					"These are typically transient and recoverable.", b.ProcessingErrors),
			Impact: b.ProcessingErrorRevenue,
			Recommendation: "Implement automatic retry with exponential backoff for processing errors. " +
				"Consider failover routing to alternative processors.",
		})
	}
	return insights
}

// temporalAnomalies collects UTC hours below -2 sigma with volume above 50
// into at most one informational finding, described by the worst hour.
func (r *detectRun) temporalAnomalies(m *domain.MetricsResponse) []domain.Insight {
	hourly := m.HourlyPattern
	rates := make([]float64, len(hourly))
	for i, h := range hourly {
		rates[i] = h.ApprovalRate
	}
	mn, sd := mean(rates), stdDev(rates)

	var anomalous []domain.HourlyMetric
	for _, h := range hourly {
		if zScore(h.ApprovalRate, mn, sd) < -2 && h.Total > 50 {
			anomalous = append(anomalous, h)
		}
	}
	if len(anomalous) == 0 {
		return nil
	}

	worst := anomalous[0]
	for _, h := range anomalous[1:] {
		if h.ApprovalRate < worst.ApprovalRate {
			worst = h
		}
	}
	worstZ := zScore(worst.ApprovalRate, mn, sd)

	hours := make([]string, len(anomalous))
	for i, h := range anomalous {
		hours[i] = fmt.Sprintf("%d:00", h.Hour)
	}

	severity := domain.SeverityInfo
	if worstZ < -3 {
		severity = domain.SeverityWarning
	}

	return []domain.Insight{{
		ID:       r.nextID(),
		Type:     domain.InsightTemporalAnomaly,
		Severity: severity,
		Title: fmt.Sprintf("Anomalous approval rates at hours %s (below -2σ)",
			strings.Join(hours, ", ")),
		Description: fmt.Sprintf(
			"Approval rates drop to %.1f%% at %d:00 UTC (z-score: %.2f) compared to the mean of "+
				"%.1f%% (σ=%.2f). Values beyond 2 standard deviations indicate statistically "+
				"significant deviation.",
			worst.ApprovalRate, worst.Hour, worstZ, mn, sd),
		Impact: 0,
		Recommendation: "Consider implementing time-based routing to distribute load across " +
			"processors during peak hours. Review velocity limit configurations.",
	}}
}
