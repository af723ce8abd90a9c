package pair

import (
	"testing"

	"github.com/coregx/graco/internal/seq"
)

func TestIndexAllCountsOverlappingOccurrences(t *testing.T) {
	s := seq.New(symbolsOf("aaaa"))
	idx, pq := indexAll(s)

	r, ok := idx.lookup(digram{int32('a'), int32('a')})
	if !ok {
		t.Fatalf("expected a record for (a,a)")
	}
	if r.freq != 3 {
		t.Fatalf("freq = %d, want 3 (three overlapping occurrences in 'aaaa')", r.freq)
	}
	if pq.empty() {
		t.Fatalf("expected (a,a) to be indexed in the priority structure")
	}
}

func TestIndexAllSkipsSingleOccurrence(t *testing.T) {
	s := seq.New(symbolsOf("ab"))
	idx, pq := indexAll(s)

	if _, ok := idx.lookup(digram{int32('a'), int32('b')}); !ok {
		t.Fatalf("expected a record for (a,b) even at freq 1")
	}
	if !pq.empty() {
		t.Fatalf("a single occurrence should never reach the priority structure")
	}
}

// occurrence list length must always equal freq (P2 from spec §8).
func TestOccurrenceListLengthMatchesFreq(t *testing.T) {
	s := seq.New(symbolsOf("abababab"))
	idx, _ := indexAll(s)

	r, ok := idx.lookup(digram{int32('a'), int32('b')})
	if !ok {
		t.Fatalf("expected a record for (a,b)")
	}
	count := 0
	for p := r.head; p != -1; p = idx.links[p].next {
		count++
	}
	if count != r.freq {
		t.Fatalf("occurrence list length %d != freq %d", count, r.freq)
	}
}
