package match

import "sort"

// Resolve keeps the longest candidates that overlap nothing already kept.
// Equal lengths keep their discovery order. The selection is greedy, not a
// maximum coverage packing.
func Resolve(candidates []Match) []Match {
	sorted := make([]Match, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Len() > sorted[j].Len()
	})

	kept := make([]Match, 0, len(sorted))
	for _, c := range sorted {
		if !overlapsAny(kept, c) {
			kept = append(kept, c)
		}
	}
	return kept
}

func overlapsAny(kept []Match, c Match) bool {
	for _, k := range kept {
		if k.Overlaps(c) {
			return true
		}
	}
	return false
}
