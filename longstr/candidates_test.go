package longstr

import "testing"

func cand(score float64, lastIndex, length int) Candidate {
	return Candidate{
		Score:           score,
		Symbols:         make([]int32, length),
		LastMatchIndex1: lastIndex,
		LastMatchIndex2: lastIndex,
	}
}

func TestCandidateList_SortedAscendingByScore(t *testing.T) {
	l := newCandidateList(10)
	l.consider(cand(5, 100, 3))
	l.consider(cand(1, 200, 3))
	l.consider(cand(9, 300, 3))

	for i := 1; i < len(l.items); i++ {
		if l.items[i-1].Score > l.items[i].Score {
			t.Fatalf("items not sorted ascending: %v", l.items)
		}
	}
}

func TestCandidateList_RejectsOverlapWithBetterCandidate(t *testing.T) {
	l := newCandidateList(10)
	l.consider(cand(10, 100, 5)) // occupies [96, 100]

	before := len(l.items)
	l.consider(cand(2, 98, 3)) // occupies [96, 98], overlaps the better one
	if len(l.items) != before {
		t.Errorf("overlapping lower-score candidate was inserted, len = %d, want %d", len(l.items), before)
	}
}

func TestCandidateList_AcceptsNonOverlapping(t *testing.T) {
	l := newCandidateList(10)
	l.consider(cand(10, 100, 5)) // [96, 100]
	l.consider(cand(2, 50, 3))   // [48, 50], no overlap

	if len(l.items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(l.items))
	}
}

func TestCandidateList_EvictsWorstWhenFull(t *testing.T) {
	l := newCandidateList(2)
	l.consider(cand(1, 1000, 2))
	l.consider(cand(2, 2000, 2))
	l.consider(cand(3, 3000, 2))

	if len(l.items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(l.items))
	}
	for _, c := range l.items {
		if c.Score == 1 {
			t.Error("worst candidate (score 1) survived eviction")
		}
	}
}

func TestCandidateList_RejectsWhenFullAndWorse(t *testing.T) {
	l := newCandidateList(1)
	l.consider(cand(10, 1000, 2))
	l.consider(cand(1, 2000, 2))

	if len(l.items) != 1 || l.items[0].Score != 10 {
		t.Fatalf("items = %v, want single candidate with score 10", l.items)
	}
}

func TestCandidateList_SortedDescendingReversesOrder(t *testing.T) {
	l := newCandidateList(10)
	l.consider(cand(1, 1000, 2))
	l.consider(cand(5, 2000, 2))
	l.consider(cand(9, 3000, 2))

	desc := l.sortedDescending()
	for i := 1; i < len(desc); i++ {
		if desc[i-1].Score < desc[i].Score {
			t.Fatalf("sortedDescending not descending: %v", desc)
		}
	}
}

func TestOccurrenceRange(t *testing.T) {
	c := cand(1, 10, 4)
	lo, hi := occurrenceRange(&c)
	if lo != 7 || hi != 10 {
		t.Errorf("occurrenceRange = (%d, %d), want (7, 10)", lo, hi)
	}
}

func TestRangesOverlap(t *testing.T) {
	if !rangesOverlap(1, 5, 5, 10) {
		t.Error("touching ranges should overlap")
	}
	if rangesOverlap(1, 5, 6, 10) {
		t.Error("adjacent non-touching ranges should not overlap")
	}
}
