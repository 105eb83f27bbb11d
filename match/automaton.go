package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AutomatonMatcher is the Knuth-Morris-Pratt strategy: every window of A
// becomes a pattern whose failure function drives a linear scan of B.
// It rebuilds a pattern for every start offset in A and so costs far more
// than HashingMatcher; candidates come out in A-major order.
type AutomatonMatcher struct {
	Workers int // window sizes scanned concurrently, <=1 for sequential
	Logger  *slog.Logger
}

func (m *AutomatonMatcher) Name() string {
	return "kmp"
}

func (m *AutomatonMatcher) Algorithm() Algorithm {
	return Automaton
}

// FindCandidates returns the equal windows of a and b in discovery order
func (m *AutomatonMatcher) FindCandidates(ctx context.Context, a, b []rune, minLen int) ([]Match, error) {
	if minLen < 1 {
		return nil, fmt.Errorf("%w: minimum match length %d", ErrInvalidArgument, minLen)
	}
	logger := orDiscard(m.Logger)
	start := time.Now()
	found, err := walkWindows(ctx, m, a, b, minLen, m.Workers, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("automaton scan complete", "candidates", len(found), "took", time.Since(start))
	return found, nil
}

func (m *AutomatonMatcher) scanWindow(a, b []rune, w int, cov coverage, emit func(posA, posB int) bool) {
	for i := 0; i+w <= len(a); i++ {
		if !cov.freeA(i, w) {
			continue
		}
		pattern := a[i : i+w]
		lps := BuildLPS(pattern)
		for _, j := range SearchAll(b, pattern, lps) {
			if !cov.freeB(j, w) {
				continue
			}
			if emit(i, j) {
				// A side is now covered, later occurrences would overlap
				break
			}
		}
	}
}

// BuildLPS returns the failure function of pattern: lps[i] is the length of
// the longest proper prefix of pattern[:i+1] that is also its suffix
func BuildLPS(pattern []rune) []int {
	lps := make([]int, len(pattern))
	length := 0
	for i := 1; i < len(pattern); {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}
	return lps
}

// SearchAll returns the start of every occurrence of pattern in text,
// overlapping occurrences included. lps must come from BuildLPS(pattern).
func SearchAll(text, pattern []rune, lps []int) []int {
	if len(pattern) == 0 || len(pattern) > len(text) {
		return nil
	}
	var occurrences []int
	j := 0
	for i := 0; i < len(text); i++ {
		for j > 0 && text[i] != pattern[j] {
			j = lps[j-1]
		}
		if text[i] == pattern[j] {
			j++
		}
		if j == len(pattern) {
			occurrences = append(occurrences, i-j+1)
			j = lps[j-1]
		}
	}
	return occurrences
}
