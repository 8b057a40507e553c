package analytics

import "math"

// mean returns the arithmetic mean of the sample, 0 for an empty sample.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation of the sample. Samples
// with fewer than two values have no spread and return 0.
func stdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	variance /= float64(n)
	return math.Sqrt(variance)
}

// zScore returns how many standard deviations value lies from the mean.
// A zero standard deviation yields 0, never a division by zero.
func zScore(value, m, sd float64) float64 {
	if sd == 0 {
		return 0
	}
	return (value - m) / sd
}

// round2 rounds to two decimal places, used for reported approval rates.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
