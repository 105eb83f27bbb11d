package match

import "sort"

// occupancy is the running output of a matcher: the matches accepted so far
// and the runes they cover on each document
type occupancy struct {
	accepted []Match
	coveredA []bool
	coveredB []bool
	dirty    bool
	cov      coverage
}

func newOccupancy(lenA, lenB int) *occupancy {
	return &occupancy{
		coveredA: make([]bool, lenA),
		coveredB: make([]bool, lenB),
		dirty:    true,
	}
}

// tryAccept appends the pair as a match unless it overlaps an accepted one
func (o *occupancy) tryAccept(a []rune, posA, posB, length int) bool {
	if anyCovered(o.coveredA[posA:posA+length]) || anyCovered(o.coveredB[posB:posB+length]) {
		return false
	}
	markCovered(o.coveredA[posA : posA+length])
	markCovered(o.coveredB[posB : posB+length])
	o.accepted = append(o.accepted, newMatch(a, posA, posB, length))
	o.dirty = true
	return true
}

// snapshot returns the coverage as of now. Coverage only grows, so a stale
// snapshot may call a window free that is already taken, never the reverse.
func (o *occupancy) snapshot() coverage {
	if o.dirty {
		o.cov = coverage{
			prefixA: prefixCounts(o.coveredA),
			prefixB: prefixCounts(o.coveredB),
		}
		o.dirty = false
	}
	return o.cov
}

func anyCovered(runes []bool) bool {
	for _, c := range runes {
		if c {
			return true
		}
	}
	return false
}

func markCovered(runes []bool) {
	for i := range runes {
		runes[i] = true
	}
}

// coverage answers "is this window untouched" in O(1) via prefix sums
type coverage struct {
	prefixA []int
	prefixB []int
}

func (c coverage) freeA(pos, length int) bool {
	return c.prefixA[pos+length]-c.prefixA[pos] == 0
}

func (c coverage) freeB(pos, length int) bool {
	return c.prefixB[pos+length]-c.prefixB[pos] == 0
}

func prefixCounts(covered []bool) []int {
	prefix := make([]int, len(covered)+1)
	for i, c := range covered {
		prefix[i+1] = prefix[i]
		if c {
			prefix[i+1]++
		}
	}
	return prefix
}

func sortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}
