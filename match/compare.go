package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"
)

// DefaultMinMatchLength is the shortest segment reported when none is set
const DefaultMinMatchLength = 5

// Options tunes a comparison
type Options struct {
	Algorithm      Algorithm
	MinMatchLength int // zero means DefaultMinMatchLength
	Workers        int // window sizes scanned concurrently, <=1 for sequential
	Logger         *slog.Logger
}

// Compare finds the segments textA and textB share using algo and reports
// them with a similarity score. minLen must be at least 1.
func Compare(textA, textB string, algo Algorithm, minLen int) (*Result, error) {
	if minLen < 1 {
		return nil, fmt.Errorf("%w: minimum match length must be at least 1, got %d", ErrInvalidArgument, minLen)
	}
	return CompareContext(context.Background(), textA, textB, Options{
		Algorithm:      algo,
		MinMatchLength: minLen,
	})
}

// CompareContext is Compare with cancellation, checked before every window
// size. A cancelled comparison returns no partial result.
func CompareContext(ctx context.Context, textA, textB string, opts Options) (*Result, error) {
	minLen := opts.MinMatchLength
	if minLen == 0 {
		minLen = DefaultMinMatchLength
	}
	if minLen < 1 {
		return nil, fmt.Errorf("%w: minimum match length must be at least 1, got %d", ErrInvalidArgument, minLen)
	}
	if !utf8.ValidString(textA) {
		return nil, fmt.Errorf("%w: first document is not valid UTF-8", ErrInvalidArgument)
	}
	if !utf8.ValidString(textB) {
		return nil, fmt.Errorf("%w: second document is not valid UTF-8", ErrInvalidArgument)
	}

	logger := orDiscard(opts.Logger)
	matcher, err := NewMatcher(opts.Algorithm, opts.Workers, logger)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	normA := normalizeRunes(textA)
	normB := normalizeRunes(textB)

	candidates, err := matcher.FindCandidates(ctx, normA, normB, minLen)
	if err != nil {
		return nil, fmt.Errorf("%s comparison: %w", matcher.Name(), err)
	}
	matches := Resolve(candidates)

	result := &Result{
		Matches:     matches,
		Score:       Score(matches, normA, normB),
		Algorithm:   matcher.Algorithm(),
		MinLength:   minLen,
		NormalizedA: string(normA),
		NormalizedB: string(normB),
		Candidates:  len(candidates),
		Elapsed:     time.Since(start),
	}
	logger.Debug("comparison complete",
		"algorithm", matcher.Name(),
		"lenA", len(normA),
		"lenB", len(normB),
		"matches", len(matches),
		"score", result.Score,
		"took", result.Elapsed)
	return result, nil
}
