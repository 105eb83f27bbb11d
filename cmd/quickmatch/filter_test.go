package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asynkron/Asynkron.QuickMatch/match"
)

func sampleMatches() []match.Match {
	return []match.Match{
		{Text: "the quick brown", A: match.Span{Start: 0, End: 15}, B: match.Span{Start: 4, End: 19}},
		{Text: "lazy dog", A: match.Span{Start: 30, End: 38}, B: match.Span{Start: 40, End: 48}},
		{Text: "jumps", A: match.Span{Start: 20, End: 25}, B: match.Span{Start: 25, End: 30}},
	}
}

func TestFingerprintDependsOnTextOnly(t *testing.T) {
	assert.Equal(t, fingerprint("lazy dog"), fingerprint("lazy dog"))
	assert.NotEqual(t, fingerprint("lazy dog"), fingerprint("lazy cat"))
}

func TestFilterMatches(t *testing.T) {
	matches := sampleMatches()

	kept, hidden := FilterMatches(matches, nil)
	assert.Len(t, kept, 3)
	assert.Zero(t, hidden)
	for i, dm := range kept {
		assert.Equal(t, matches[i], dm.Match)
		assert.Equal(t, fingerprint(matches[i].Text), dm.Fingerprint)
	}

	kept, hidden = FilterMatches(matches, map[uint64]bool{fingerprint("lazy dog"): true})
	assert.Equal(t, 1, hidden)
	if assert.Len(t, kept, 2) {
		assert.Equal(t, "the quick brown", kept[0].Text)
		assert.Equal(t, "jumps", kept[1].Text)
	}
}

func TestTopN(t *testing.T) {
	kept, _ := FilterMatches(sampleMatches(), nil)

	assert.Len(t, TopN(kept, 0), 3)
	assert.Len(t, TopN(kept, 5), 3)
	top := TopN(kept, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "lazy dog", top[1].Text)
}
