package health

import (
	"math"
	"sort"
)

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stdDev is the population standard deviation.
func stdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// coefficientOfVariation returns std/mean. ok is false when fewer than two
// values exist or the mean is zero.
func coefficientOfVariation(vals []float64) (float64, bool) {
	if len(vals) < 2 {
		return 0, false
	}
	m := mean(vals)
	if m == 0 {
		return 0, false
	}
	return stdDev(vals) / m, true
}
