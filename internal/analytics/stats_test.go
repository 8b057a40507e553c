package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty sample", nil, 0},
		{"single value", []float64{5}, 0},
		{"identical values", []float64{3, 3, 3, 3}, 0},
		{"known spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, stdDev(tt.values), 1e-9)
		})
	}
}

func TestZScore(t *testing.T) {
	// A value equal to the mean always scores 0.
	assert.Equal(t, 0.0, zScore(10, 10, 2))

	// Zero sigma never divides; it scores 0 instead.
	assert.Equal(t, 0.0, zScore(99, 10, 0))

	assert.InDelta(t, -1.5, zScore(7, 10, 2), 1e-9)
	assert.InDelta(t, 2.0, zScore(14, 10, 2), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, round2(200.0/3.0))
	assert.Equal(t, 50.0, round2(50))
}
