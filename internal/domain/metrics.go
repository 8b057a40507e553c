package domain

// KPIMetrics holds the global figures for a record set. All revenue values
// are in USD reference units.
type KPIMetrics struct {
	TotalTransactions  int     `json:"total_transactions"`
	Approved           int     `json:"approved"`
	Declined           int     `json:"declined"`
	ApprovalRate       float64 `json:"approval_rate"`
	TotalRevenue       float64 `json:"total_revenue"`
	LostRevenue        float64 `json:"lost_revenue"`
	RecoverableRevenue float64 `json:"recoverable_revenue"`
}

// DimensionMetric is one row of a per-dimension breakdown (payment method,
// country, processor or currency).
type DimensionMetric struct {
	Dimension    string  `json:"dimension"`
	Value        string  `json:"value"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	Declined     int     `json:"declined"`
	ApprovalRate float64 `json:"approval_rate"`
	Revenue      float64 `json:"revenue"`
	LostRevenue  float64 `json:"lost_revenue"`
}

// DeclineReasonMetric is one row of the top-decline-reason breakdown.
// Percentage is relative to declined-with-reason records, not all records.
type DeclineReasonMetric struct {
	Reason        DeclineReason   `json:"reason"`
	Label         string          `json:"label"`
	Count         int             `json:"count"`
	Percentage    float64         `json:"percentage"`
	RevenueImpact float64         `json:"revenue_impact"`
	Category      DeclineCategory `json:"category"`
	IsRecoverable bool            `json:"is_recoverable"`
}

// TimeSeriesPoint aggregates one UTC calendar day.
type TimeSeriesPoint struct {
	Date         string  `json:"date"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	Declined     int     `json:"declined"`
	ApprovalRate float64 `json:"approval_rate"`
	Revenue      float64 `json:"revenue"`
}

// HourlyMetric aggregates one UTC hour (0-23). All 24 hours are always
// reported, including hours with zero volume.
type HourlyMetric struct {
	Hour         int     `json:"hour"`
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalRate float64 `json:"approval_rate"`
}

// RecoverableBreakdown partitions declined volume by decline category.
type RecoverableBreakdown struct {
	SoftDeclines           int     `json:"soft_declines"`
	HardDeclines           int     `json:"hard_declines"`
	ProcessingErrors       int     `json:"processing_errors"`
	SoftDeclineRevenue     float64 `json:"soft_decline_revenue"`
	HardDeclineRevenue     float64 `json:"hard_decline_revenue"`
	ProcessingErrorRevenue float64 `json:"processing_error_revenue"`
}

// CohortMetric reports one side of the new/returning customer split.
type CohortMetric struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalRate float64 `json:"approval_rate"`
}

// CohortAnalysis splits the record set by the returning-customer flag.
type CohortAnalysis struct {
	NewCustomers       CohortMetric `json:"new_customers"`
	ReturningCustomers CohortMetric `json:"returning_customers"`
}

// MetricsResponse bundles every aggregation over one filtered record set.
// It is recomputed fresh per call and never persisted.
type MetricsResponse struct {
	KPIs                 KPIMetrics            `json:"kpis"`
	ByPaymentMethod      []DimensionMetric     `json:"by_payment_method"`
	ByCountry            []DimensionMetric     `json:"by_country"`
	ByProcessor          []DimensionMetric     `json:"by_processor"`
	ByCurrency           []DimensionMetric     `json:"by_currency"`
	TopDeclineReasons    []DeclineReasonMetric `json:"top_decline_reasons"`
	TimeSeries           []TimeSeriesPoint     `json:"time_series"`
	HourlyPattern        []HourlyMetric        `json:"hourly_pattern"`
	RecoverableBreakdown RecoverableBreakdown  `json:"recoverable_breakdown"`
	Cohort               CohortAnalysis        `json:"cohort"`
}
