package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		code   string
		want   float64
	}{
		{"usd passthrough", 100, "USD", 100},
		{"brl", 100, "BRL", 18},
		{"mxn", 1000, "MXN", 55},
		{"idr", 1000000, "IDR", 62},
		{"unknown code treated as usd", 42, "XYZ", 42},
		{"zero amount", 0, "BRL", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToUSD(tt.amount, tt.code), 1e-9)
		})
	}
}

func TestRateUnknownDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1.0, Rate("GBP"))
	assert.Equal(t, 0.18, Rate("BRL"))
}
