package analytics

import (
	"fmt"
	"sort"

	"github.com/raulgutierrezyuno/ZenithPay/internal/currency"
	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

// Dimension selects the transaction field a breakdown groups by. Keeping it
// a closed enum means an unsupported grouping cannot be requested.
type Dimension int

const (
	DimensionPaymentMethod Dimension = iota
	DimensionCountry
	DimensionProcessor
	DimensionCurrency
)

func (d Dimension) String() string {
	switch d {
	case DimensionPaymentMethod:
		return "payment_method"
	case DimensionCountry:
		return "country"
	case DimensionProcessor:
		return "processor"
	case DimensionCurrency:
		return "currency"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// key extracts the grouping value from a transaction.
func (d Dimension) key(t *domain.Transaction) string {
	switch d {
	case DimensionPaymentMethod:
		return t.PaymentMethod
	case DimensionCountry:
		return t.Country
	case DimensionProcessor:
		return t.Processor
	case DimensionCurrency:
		return t.Currency
	default:
		return ""
	}
}

func toUSD(t *domain.Transaction) float64 {
	return currency.ToUSD(t.Amount, t.Currency)
}

// ComputeKPIs computes the global figures for a record set. Revenue sums are
// currency-normalized; an empty set yields a 0 approval rate.
func ComputeKPIs(records []domain.Transaction) domain.KPIMetrics {
	k := domain.KPIMetrics{TotalTransactions: len(records)}

	for i := range records {
		t := &records[i]
		usd := toUSD(t)
		if t.Approved() {
			k.Approved++
			k.TotalRevenue += usd
			continue
		}
		k.Declined++
		k.LostRevenue += usd
		if t.IsRecoverable {
			k.RecoverableRevenue += usd
		}
	}

	if k.TotalTransactions > 0 {
		k.ApprovalRate = float64(k.Approved) / float64(k.TotalTransactions) * 100
	}
	return k
}

// AggregateByDimension groups the record set by the given dimension and
// computes per-group counts, approval rate and normalized revenue. Groups
// are ordered by descending total count; ties keep discovery order.
func AggregateByDimension(records []domain.Transaction, dim Dimension) []domain.DimensionMetric {
	groups := make(map[string]*domain.DimensionMetric)
	var order []string

	for i := range records {
		t := &records[i]
		key := dim.key(t)
		m, ok := groups[key]
		if !ok {
			m = &domain.DimensionMetric{Dimension: dim.String(), Value: key}
			groups[key] = m
			order = append(order, key)
		}

		m.Total++
		usd := toUSD(t)
		if t.Approved() {
			m.Approved++
			m.Revenue += usd
		} else {
			m.Declined++
			m.LostRevenue += usd
		}
	}

	metrics := make([]domain.DimensionMetric, 0, len(order))
	for _, key := range order {
		m := groups[key]
		if m.Total > 0 {
			m.ApprovalRate = float64(m.Approved) / float64(m.Total) * 100
		}
		metrics = append(metrics, *m)
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Total > metrics[j].Total
	})
	return metrics
}

// DefaultReasonLimit caps the top-decline-reason breakdown.
const DefaultReasonLimit = 10

// TopDeclineReasons groups declined-with-reason records by reason, ordered
// by descending count and truncated to limit. Percentages are relative to
// the declined-with-reason population.
func TopDeclineReasons(records []domain.Transaction, limit int) []domain.DeclineReasonMetric {
	groups := make(map[domain.DeclineReason]*domain.DeclineReasonMetric)
	var order []domain.DeclineReason
	totalDeclined := 0

	for i := range records {
		t := &records[i]
		if t.Status != domain.StatusDeclined || t.DeclineReason == "" {
			continue
		}
		totalDeclined++

		m, ok := groups[t.DeclineReason]
		if !ok {
			m = &domain.DeclineReasonMetric{
				Reason:        t.DeclineReason,
				Label:         t.DeclineReason.Label(),
				Category:      t.DeclineReason.Category(),
				IsRecoverable: t.DeclineReason.Recoverable(),
			}
			groups[t.DeclineReason] = m
			order = append(order, t.DeclineReason)
		}
		m.Count++
		m.RevenueImpact += toUSD(t)
	}

	metrics := make([]domain.DeclineReasonMetric, 0, len(order))
	for _, reason := range order {
		m := groups[reason]
		if totalDeclined > 0 {
			m.Percentage = float64(m.Count) / float64(totalDeclined) * 100
		}
		metrics = append(metrics, *m)
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Count > metrics[j].Count
	})
	if limit > 0 && len(metrics) > limit {
		metrics = metrics[:limit]
	}
	return metrics
}

// TimeSeries groups records by UTC calendar day, sorted ascending by date.
func TimeSeries(records []domain.Transaction) []domain.TimeSeriesPoint {
	groups := make(map[string]*domain.TimeSeriesPoint)

	for i := range records {
		t := &records[i]
		date := t.Timestamp.UTC().Format("2006-01-02")
		p, ok := groups[date]
		if !ok {
			p = &domain.TimeSeriesPoint{Date: date}
			groups[date] = p
		}
		p.Total++
		if t.Approved() {
			p.Approved++
			p.Revenue += toUSD(t)
		} else {
			p.Declined++
		}
	}

	series := make([]domain.TimeSeriesPoint, 0, len(groups))
	for _, p := range groups {
		if p.Total > 0 {
			p.ApprovalRate = round2(float64(p.Approved) / float64(p.Total) * 100)
		}
		series = append(series, *p)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series
}

// HourlyPattern aggregates by UTC hour. The result always has exactly 24
// entries, hours without volume reporting a 0 approval rate.
func HourlyPattern(records []domain.Transaction) []domain.HourlyMetric {
	metrics := make([]domain.HourlyMetric, 24)
	for h := range metrics {
		metrics[h].Hour = h
	}

	for i := range records {
		t := &records[i]
		h := t.Timestamp.UTC().Hour()
		metrics[h].Total++
		if t.Approved() {
			metrics[h].Approved++
		}
	}

	for h := range metrics {
		if metrics[h].Total > 0 {
			metrics[h].ApprovalRate = round2(float64(metrics[h].Approved) / float64(metrics[h].Total) * 100)
		}
	}
	return metrics
}

// RecoverableBreakdown partitions declined records into the three decline
// categories with per-bucket counts and normalized revenue.
func RecoverableBreakdown(records []domain.Transaction) domain.RecoverableBreakdown {
	var b domain.RecoverableBreakdown

	for i := range records {
		t := &records[i]
		if t.Status != domain.StatusDeclined {
			continue
		}
		usd := toUSD(t)
		switch t.DeclineCategory {
		case domain.CategorySoftDecline:
			b.SoftDeclines++
			b.SoftDeclineRevenue += usd
		case domain.CategoryHardDecline:
			b.HardDeclines++
			b.HardDeclineRevenue += usd
		case domain.CategoryProcessingError:
			b.ProcessingErrors++
			b.ProcessingErrorRevenue += usd
		}
	}
	return b
}

// CohortAnalysis splits the record set by the returning-customer flag.
// Each side's approval rate is rounded to two decimals, 0 when empty.
func CohortAnalysis(records []domain.Transaction) domain.CohortAnalysis {
	var c domain.CohortAnalysis

	for i := range records {
		t := &records[i]
		side := &c.NewCustomers
		if t.IsReturningCustomer {
			side = &c.ReturningCustomers
		}
		side.Total++
		if t.Approved() {
			side.Approved++
		}
	}

	for _, side := range []*domain.CohortMetric{&c.NewCustomers, &c.ReturningCustomers} {
		if side.Total > 0 {
			side.ApprovalRate = round2(float64(side.Approved) / float64(side.Total) * 100)
		}
	}
	return c
}

// ComputeAll bundles every aggregation over one record set. This is the
// entry point the detector, the recommender and the API all consume.
func ComputeAll(records []domain.Transaction) *domain.MetricsResponse {
	return &domain.MetricsResponse{
		KPIs:                 ComputeKPIs(records),
		ByPaymentMethod:      AggregateByDimension(records, DimensionPaymentMethod),
		ByCountry:            AggregateByDimension(records, DimensionCountry),
		ByProcessor:          AggregateByDimension(records, DimensionProcessor),
		ByCurrency:           AggregateByDimension(records, DimensionCurrency),
		TopDeclineReasons:    TopDeclineReasons(records, DefaultReasonLimit),
		TimeSeries:           TimeSeries(records),
		HourlyPattern:        HourlyPattern(records),
		RecoverableBreakdown: RecoverableBreakdown(records),
		Cohort:               CohortAnalysis(records),
	}
}
