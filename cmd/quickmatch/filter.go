package main

import (
	"github.com/cespare/xxhash/v2"

	"github.com/asynkron/Asynkron.QuickMatch/match"
)

// DisplayMatch is a match with the fingerprint used to ignore it
type DisplayMatch struct {
	match.Match
	Fingerprint uint64
}

// fingerprint identifies a matched text independently of where it occurs
func fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}

// FilterMatches drops matches whose fingerprint the user ignored. Only the
// listing changes; the score always covers every match.
// Returns the kept matches in their original order and the number dropped.
func FilterMatches(matches []match.Match, ignored map[uint64]bool) ([]DisplayMatch, int) {
	kept := make([]DisplayMatch, 0, len(matches))
	skipped := 0
	for _, m := range matches {
		fp := fingerprint(m.Text)
		if ignored[fp] {
			skipped++
			continue
		}
		kept = append(kept, DisplayMatch{Match: m, Fingerprint: fp})
	}
	return kept, skipped
}

// TopN returns at most n matches from the slice; n <= 0 keeps all
func TopN(matches []DisplayMatch, n int) []DisplayMatch {
	if n <= 0 || len(matches) < n {
		return matches
	}
	return matches[:n]
}
