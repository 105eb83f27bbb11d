package match

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Matcher finds the segments of at least minLen runes shared by two
// normalized documents. The returned candidates are in discovery order and
// still have to go through Resolve.
type Matcher interface {
	Name() string
	Algorithm() Algorithm
	FindCandidates(ctx context.Context, a, b []rune, minLen int) ([]Match, error)
}

// windowScanner reports the equal windows of one size. emit returns true
// when the pair was accepted into the running output.
type windowScanner interface {
	scanWindow(a, b []rune, w int, cov coverage, emit func(posA, posB int) bool)
}

// matchers maps every algorithm to its constructor
var matchers = map[Algorithm]func(workers int, logger *slog.Logger) Matcher{
	Hashing: func(workers int, logger *slog.Logger) Matcher {
		return &HashingMatcher{Workers: workers, Logger: logger}
	},
	Automaton: func(workers int, logger *slog.Logger) Matcher {
		return &AutomatonMatcher{Workers: workers, Logger: logger}
	},
}

// NewMatcher returns the matcher registered for algo
func NewMatcher(algo Algorithm, workers int, logger *slog.Logger) (Matcher, error) {
	ctor, ok := matchers[algo]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algo)
	}
	return ctor(workers, logger), nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
