package utils

import (
	"math"
	"sort"
)

// Percentile computes the percent-th percentile of values with linear
// interpolation between closest ranks: rank = percent/100 * (n-1),
// result interpolated between the two surrounding order statistics.
func Percentile(values []float64, percent float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if percent <= 0 {
		return sorted[0]
	}

	if percent >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := percent / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	fraction := rank - float64(lower)

	return sorted[lower] + fraction*(sorted[upper]-sorted[lower])
}
