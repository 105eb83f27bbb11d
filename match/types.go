package match

import (
	"fmt"
	"strings"
	"time"
)

// Span is a half-open [Start, End) rune interval into a normalized text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of runes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two half-open spans intersect
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Match is a segment found verbatim in both normalized documents
type Match struct {
	Text string `json:"text"`
	A    Span   `json:"a"` // location in the first document
	B    Span   `json:"b"` // location in the second document
}

// Len returns the matched length in runes
func (m Match) Len() int {
	return m.A.Len()
}

// Overlaps reports whether m and o collide on either document
func (m Match) Overlaps(o Match) bool {
	return m.A.Overlaps(o.A) || m.B.Overlaps(o.B)
}

// Swap returns the match as seen from the other document
func (m Match) Swap() Match {
	return Match{Text: m.Text, A: m.B, B: m.A}
}

func newMatch(a []rune, posA, posB, length int) Match {
	return Match{
		Text: string(a[posA : posA+length]),
		A:    Span{Start: posA, End: posA + length},
		B:    Span{Start: posB, End: posB + length},
	}
}

// Result is the outcome of comparing two documents
type Result struct {
	Matches     []Match       // longest first, pairwise disjoint on both sides
	Score       float64       // matched coverage of the shorter document, 0-100
	Algorithm   Algorithm     // strategy that produced the candidates
	MinLength   int           // minimum match length used
	NormalizedA string        // text the A spans refer to
	NormalizedB string        // text the B spans refer to
	Candidates  int           // matcher output before Resolve; windows walk longest first, so this equals len(Matches)
	Elapsed     time.Duration // wall time spent in the engine
}

// MatchedRunes returns the total number of runes covered by the matches
func (r *Result) MatchedRunes() int {
	total := 0
	for _, m := range r.Matches {
		total += m.Len()
	}
	return total
}

// SpansA returns the A-side spans ordered by position, for highlighting
func (r *Result) SpansA() []Span {
	return sortedSpans(r.Matches, func(m Match) Span { return m.A })
}

// SpansB returns the B-side spans ordered by position, for highlighting
func (r *Result) SpansB() []Span {
	return sortedSpans(r.Matches, func(m Match) Span { return m.B })
}

func sortedSpans(matches []Match, side func(Match) Span) []Span {
	spans := make([]Span, len(matches))
	for i, m := range matches {
		spans[i] = side(m)
	}
	sortSpans(spans)
	return spans
}

// Algorithm selects the candidate matching strategy
type Algorithm int

const (
	// Hashing is the Rabin-Karp rolling hash strategy
	Hashing Algorithm = iota
	// Automaton is the Knuth-Morris-Pratt failure function strategy
	Automaton
)

// Algorithms lists every supported strategy
func Algorithms() []Algorithm {
	return []Algorithm{Hashing, Automaton}
}

func (a Algorithm) String() string {
	switch a {
	case Hashing:
		return "rabin-karp"
	case Automaton:
		return "kmp"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// Label returns the human readable name of the strategy
func (a Algorithm) Label() string {
	switch a {
	case Hashing:
		return "Rabin-Karp (Hashing)"
	case Automaton:
		return "KMP (Knuth-Morris-Pratt)"
	default:
		return a.String()
	}
}

// ParseAlgorithm maps a strategy name to its Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rabin-karp", "rabinkarp", "rk", "hashing", "hash":
		return Hashing, nil
	case "kmp", "knuth-morris-pratt", "automaton":
		return Automaton, nil
	}
	return 0, fmt.Errorf("%w: %q (use rabin-karp or kmp)", ErrUnknownAlgorithm, name)
}

// MarshalText encodes the algorithm by name
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes the algorithm from its name
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
