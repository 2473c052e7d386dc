package calculator

import "sort"

// WindowStart returns the index of the first ordinal within days of the last
// (largest) ordinal. ordinals must be sorted ascending; an empty slice yields 0.
func WindowStart(ordinals []int64, days int64) int {
	if len(ordinals) == 0 {
		return 0
	}
	cutoff := ordinals[len(ordinals)-1] - days
	return sort.Search(len(ordinals), func(i int) bool { return ordinals[i] >= cutoff })
}

// DistinctCount returns how many different values xs holds.
func DistinctCount(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}
