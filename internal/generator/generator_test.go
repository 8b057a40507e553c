package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulgutierrezyuno/ZenithPay/internal/domain"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(500, 42)
	b := Generate(500, 42)

	require.Len(t, a, 500)
	assert.Equal(t, a, b, "same seed must yield an identical feed")

	c := Generate(500, 43)
	assert.NotEqual(t, a, c, "different seeds should diverge")
}

func TestGenerateRecordsAreValid(t *testing.T) {
	txns, err := GenerateValidated(1000, 42)
	require.NoError(t, err)

	for i := range txns {
		require.NoError(t, txns[i].Validate(), "record %d", i)
	}
}

func TestGenerateSortedByTimestamp(t *testing.T) {
	txns := Generate(400, 1)
	for i := 1; i < len(txns); i++ {
		assert.False(t, txns[i].Timestamp.Before(txns[i-1].Timestamp))
	}
}

func TestGenerateShape(t *testing.T) {
	txns := Generate(2000, 42)

	countries := map[string]int{}
	statuses := map[domain.TransactionStatus]int{}
	for i := range txns {
		tx := &txns[i]
		countries[tx.Country]++
		statuses[tx.Status]++

		cfg, ok := countryConfigs[tx.Country]
		require.True(t, ok, "unknown country %q", tx.Country)
		assert.Equal(t, cfg.currency, tx.Currency)
		assert.Contains(t, cfg.methods, tx.PaymentMethod)
		assert.Contains(t, cfg.processors, tx.Processor)

		if tx.PaymentMethod == "credit_card" {
			assert.NotEmpty(t, tx.BIN)
		} else {
			assert.Empty(t, tx.BIN)
		}
	}

	// Every configured market shows up, and traffic contains both outcomes.
	for _, c := range countries {
		assert.Greater(t, c, 0)
	}
	assert.Len(t, countries, 4)
	assert.Greater(t, statuses[domain.StatusApproved], 0)
	assert.Greater(t, statuses[domain.StatusDeclined], 0)
}
