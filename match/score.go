package match

// Score is the share of the shorter document covered by matches, as a
// percentage. Disjoint matches cannot exceed 100; the clamp guards callers
// passing unresolved candidates.
func Score(matches []Match, normA, normB []rune) float64 {
	shorter := min(len(normA), len(normB))
	if shorter == 0 {
		return 0
	}

	matched := 0
	for _, m := range matches {
		matched += m.Len()
	}

	score := float64(matched) / float64(shorter) * 100
	if score > 100 {
		return 100
	}
	return score
}
