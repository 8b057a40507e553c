// Package generator produces a deterministic demo transaction feed with the
// same statistical shape as production traffic: per-country payment-method
// and processor mixes, an underperforming processor, peak-hour and weekend
// dips, and weighted decline reasons. The same seed always yields the same
// feed, so a reseeded database is reproducible.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

const (
	// DefaultCount and DefaultSeed match the demo dataset shipped with the
	// dashboard.
	DefaultCount = 5500
	DefaultSeed  = 42

	merchantID = "merchant_vitahealth"
)

type countryConfig struct {
	currency         string
	methods          []string
	methodWeights    []int
	processors       []string
	processorWeights []int
	baseApprovalRate float64
}

var countries = []string{"Brazil", "Mexico", "Indonesia", "US"}

var countryWeights = []int{35, 30, 25, 10}

var countryConfigs = map[string]countryConfig{
	"Brazil": {
		currency:         "BRL",
		methods:          []string{"credit_card", "pix"},
		methodWeights:    []int{40, 60},
		processors:       []string{"PayUBrasil", "StripeConnect", "AdyenLatam"},
		processorWeights: []int{50, 30, 20},
		baseApprovalRate: 0.72,
	},
	"Mexico": {
		currency:         "MXN",
		methods:          []string{"credit_card", "oxxo"},
		methodWeights:    []int{45, 55},
		processors:       []string{"ConektaMX", "StripeConnect", "AdyenLatam"},
		processorWeights: []int{55, 25, 20},
		baseApprovalRate: 0.52,
	},
	"Indonesia": {
		currency:         "IDR",
		methods:          []string{"credit_card", "gopay"},
		methodWeights:    []int{35, 65},
		processors:       []string{"AdyenLatam", "StripeConnect"},
		processorWeights: []int{60, 40},
		baseApprovalRate: 0.58,
	},
	"US": {
		currency:         "USD",
		methods:          []string{"credit_card"},
		methodWeights:    []int{100},
		processors:       []string{"StripeConnect", "AdyenLatam"},
		processorWeights: []int{70, 30},
		baseApprovalRate: 0.75,
	},
}

// Approval-rate modifiers stack on the country base rate.
var methodModifiers = map[string]float64{
	"credit_card": 0.0,
	"pix":         0.20,
	"oxxo":        -0.15,
	"gopay":       -0.05,
}

var processorModifiers = map[string]float64{
	"StripeConnect": 0.05,
	"AdyenLatam":    -0.02,
	"PayUBrasil":    0.03,
	"ConektaMX":     -0.12, // deliberately underperforming
}

// declineWeights index into domain.DeclineReasons, per payment method.
var declineWeights = map[string][]int{
	"credit_card": {25, 18, 12, 10, 8, 7, 5, 5, 5, 5},
	"pix":         {10, 5, 0, 5, 0, 40, 0, 30, 0, 10},
	"oxxo":        {30, 20, 5, 8, 15, 10, 2, 5, 2, 3},
	"gopay":       {20, 15, 0, 10, 5, 20, 0, 15, 5, 10},
}

// amountRanges are [min, max] in local currency units.
var amountRanges = map[string][2]float64{
	"BRL": {15, 2500},
	"MXN": {50, 8000},
	"IDR": {15000, 5000000},
	"USD": {5, 500},
}

var binPrefixes = []string{
	"411111", "424242", "555555", "378282", "601111", "350000", "400000", "510000",
}

func weightedPick(rng *rand.Rand, items []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	for i, w := range weights {
		r -= w
		if r < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func weightedReason(rng *rand.Rand, weights []int) domain.DeclineReason {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	for i, w := range weights {
		r -= w
		if r < 0 {
			return domain.DeclineReasons[i]
		}
	}
	return domain.DeclineReasons[len(domain.DeclineReasons)-1]
}

func hexID(rng *rand.Rand, prefix string, n int) string {
	const chars = "abcdef0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return prefix + string(b)
}

// Generate builds count transactions over a fixed 90-day window, sorted by
// timestamp. Identical seeds yield identical feeds.
func Generate(count int, seed int64) []domain.Transaction {
	rng := rand.New(rand.NewSource(seed))

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)
	window := end.Sub(start)

	var customerPool []string
	txns := make([]domain.Transaction, 0, count)

	for i := 0; i < count; i++ {
		ts := start.Add(time.Duration(rng.Int63n(int64(window))))
		hour := ts.Hour()
		weekday := ts.Weekday()

		country := weightedPick(rng, countries, countryWeights)
		cfg := countryConfigs[country]
		method := weightedPick(rng, cfg.methods, cfg.methodWeights)
		processor := weightedPick(rng, cfg.processors, cfg.processorWeights)

		isReturning := rng.Float64() < 0.4
		var customerID string
		if isReturning && len(customerPool) > 0 {
			customerID = customerPool[rng.Intn(len(customerPool))]
		} else {
			customerID = hexID(rng, "cust_", 16)
			customerPool = append(customerPool, customerID)
		}
		if len(customerPool) > 2000 {
			customerPool = customerPool[500:]
		}

		amtRange := amountRanges[cfg.currency]
		amount := float64(int((amtRange[0]+rng.Float64()*(amtRange[1]-amtRange[0]))*100)) / 100

		prob := cfg.baseApprovalRate
		prob += methodModifiers[method]
		prob += processorModifiers[processor]
		if hour >= 18 && hour <= 22 {
			prob -= 0.06 // peak-hour dip
		}
		if weekday == time.Saturday || weekday == time.Sunday {
			prob -= 0.03
		}
		if isReturning {
			prob += 0.08
		}
		if ratio := (amount - amtRange[0]) / (amtRange[1] - amtRange[0]); ratio > 0.8 {
			prob -= 0.05
		}
		if prob < 0.15 {
			prob = 0.15
		}
		if prob > 0.98 {
			prob = 0.98
		}

		t := domain.Transaction{
			ID:                  hexID(rng, "txn_", 24),
			Timestamp:           ts,
			MerchantID:          merchantID,
			CustomerID:          customerID,
			Amount:              amount,
			Currency:            cfg.currency,
			Country:             country,
			PaymentMethod:       method,
			Processor:           processor,
			Status:              domain.StatusApproved,
			IsReturningCustomer: isReturning,
		}
		if method == "credit_card" {
			t.BIN = binPrefixes[rng.Intn(len(binPrefixes))]
		}

		if rng.Float64() >= prob {
			reason := weightedReason(rng, declineWeights[method])
			t.Status = domain.StatusDeclined
			t.DeclineReason = reason
			t.DeclineCategory = reason.Category()
			t.IsRecoverable = reason.Recoverable()
		}

		txns = append(txns, t)
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Timestamp.Before(txns[j].Timestamp)
	})
	return txns
}

// GenerateValidated generates a feed and re-checks every record against the
// domain invariants, failing loudly on a generator bug.
func GenerateValidated(count int, seed int64) ([]domain.Transaction, error) {
	txns := Generate(count, seed)
	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return nil, fmt.Errorf("generated record %d: %w", i, err)
		}
	}
	return txns, nil
}
