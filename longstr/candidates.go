package longstr

import "sort"

// candidateList is the bounded, sorted top-K structure from spec §4.3.
// Entries are kept sorted ascending by score, so the worst survivor sits at
// index 0 (the natural eviction point once the list is full) and
// "better-scoring" means "at a higher index".
type candidateList struct {
	maxScores int
	items     []Candidate
}

func newCandidateList(maxScores int) *candidateList {
	return &candidateList{maxScores: maxScores, items: make([]Candidate, 0, maxScores)}
}

func occurrenceRange(c *Candidate) (lo, hi int) {
	lo = c.LastMatchIndex1 - len(c.Symbols) + 1
	hi = c.LastMatchIndex1
	return
}

func rangesOverlap(aLo, aHi, bLo, bHi int) bool {
	return aLo <= bHi && bLo <= aHi
}

// consider implements spec §4.3's insertion rule: binary-search by score,
// reject on position-overlap against any strictly-better surviving
// candidate, insert, cap at maxScores by evicting the worst, then run the
// single-eviction pass against the immediately-following (next worse)
// neighbor.
func (l *candidateList) consider(cand Candidate) {
	idx := sort.Search(len(l.items), func(i int) bool { return l.items[i].Score >= cand.Score })

	if len(l.items) >= l.maxScores && idx == 0 {
		// Would land at or below the current worst survivor with the list
		// already full: reject outright.
		return
	}

	candLo, candHi := occurrenceRange(&cand)
	for i := idx; i < len(l.items); i++ {
		if l.items[i].Score == cand.Score {
			continue
		}
		betterLo, betterHi := occurrenceRange(&l.items[i])
		if rangesOverlap(candLo, candHi, betterLo, betterHi) {
			return
		}
	}

	l.items = append(l.items, Candidate{})
	copy(l.items[idx+1:], l.items[idx:])
	l.items[idx] = cand

	if len(l.items) > l.maxScores {
		l.items = l.items[1:]
		idx--
	}

	// Single-eviction pass: the one immediately-following (next worse)
	// neighbor is dropped if it now overlaps the just-inserted candidate.
	if idx > 0 {
		neighborLo, neighborHi := occurrenceRange(&l.items[idx-1])
		if rangesOverlap(candLo, candHi, neighborLo, neighborHi) {
			l.items = append(l.items[:idx-1], l.items[idx:]...)
		}
	}
}

// sortedDescending returns the accepted candidates best-first, used by the
// overlap arbiter to assign score numbers in priority order.
func (l *candidateList) sortedDescending() []Candidate {
	out := make([]Candidate, len(l.items))
	for i := range l.items {
		out[i] = l.items[len(l.items)-1-i]
	}
	return out
}
