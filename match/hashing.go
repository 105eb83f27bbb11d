package match

import (
	"context"
	"fmt"
	"log/slog"
	"math/bits"
	"slices"
	"time"
)

const (
	hashBase    = 101
	hashModulus = 1<<61 - 1
)

// windowHashes enumerates the window hashes of a text; scanWindow only
// relies on equal windows hashing equal
var windowHashes = rollWindows

// HashingMatcher is the Rabin-Karp strategy: for every window size it indexes
// the windows of A by polynomial hash and probes the index with the windows
// of B, confirming every hash hit by comparing the runes.
type HashingMatcher struct {
	Workers int // window sizes scanned concurrently, <=1 for sequential
	Logger  *slog.Logger
}

func (m *HashingMatcher) Name() string {
	return "rabin-karp"
}

func (m *HashingMatcher) Algorithm() Algorithm {
	return Hashing
}

// FindCandidates returns the equal windows of a and b in discovery order
func (m *HashingMatcher) FindCandidates(ctx context.Context, a, b []rune, minLen int) ([]Match, error) {
	if minLen < 1 {
		return nil, fmt.Errorf("%w: minimum match length %d", ErrInvalidArgument, minLen)
	}
	logger := orDiscard(m.Logger)
	start := time.Now()
	found, err := walkWindows(ctx, m, a, b, minLen, m.Workers, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("hashing scan complete", "candidates", len(found), "took", time.Since(start))
	return found, nil
}

func (m *HashingMatcher) scanWindow(a, b []rune, w int, cov coverage, emit func(posA, posB int) bool) {
	// Step 1: hash every free window of A
	index := make(map[uint64][]int)
	windowHashes(a, w, func(pos int, h uint64) {
		if cov.freeA(pos, w) {
			index[h] = append(index[h], pos)
		}
	})
	if len(index) == 0 {
		return
	}

	// Step 2: probe with every free window of B, verifying each hit
	windowHashes(b, w, func(pos int, h uint64) {
		if !cov.freeB(pos, w) {
			return
		}
		window := b[pos : pos+w]
		for _, posA := range index[h] {
			if !slices.Equal(a[posA:posA+w], window) {
				continue // collision
			}
			if emit(posA, pos) {
				// B side is now covered, later A candidates would overlap
				return
			}
		}
	})
}

// rollWindows calls visit with the hash of every length-w window of text,
// updating the hash in O(1) per shift
func rollWindows(text []rune, w int, visit func(pos int, h uint64)) {
	if w <= 0 || w > len(text) {
		return
	}
	lead := powMod(hashBase, w-1)

	var h uint64
	for _, r := range text[:w] {
		h = addMod(mulMod(h, hashBase), uint64(r))
	}
	visit(0, h)

	for pos := 1; pos+w <= len(text); pos++ {
		h = subMod(h, mulMod(uint64(text[pos-1]), lead))
		h = addMod(mulMod(h, hashBase), uint64(text[pos+w-1]))
		visit(pos, h)
	}
}

// polyHash computes the window hash from scratch
func polyHash(window []rune) uint64 {
	var h uint64
	for _, r := range window {
		h = addMod(mulMod(h, hashBase), uint64(r))
	}
	return h
}

// mulMod multiplies modulo 2^61-1 using the Mersenne folding trick
func mulMod(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	r := (hi<<3 | lo>>61) + lo&hashModulus
	for r >= hashModulus {
		r -= hashModulus
	}
	return r
}

func addMod(x, y uint64) uint64 {
	s := x + y
	if s >= hashModulus {
		s -= hashModulus
	}
	return s
}

func subMod(x, y uint64) uint64 {
	if x >= y {
		return x - y
	}
	return x + hashModulus - y
}

func powMod(base uint64, exp int) uint64 {
	result := uint64(1)
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result = mulMod(result, base)
		}
		base = mulMod(base, base)
	}
	return result
}
