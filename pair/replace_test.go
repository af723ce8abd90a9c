package pair

import (
	"context"
	"testing"
)

// TestGapLinksPointToLivePositions checks P3 from spec §8: every gap cell's
// recorded target is a live (non-negative) position, for a run that
// exercises several replacement rounds without triggering compaction.
func TestGapLinksPointToLivePositions(t *testing.T) {
	eng := New(Config{CompactionFactor: 0.01}) // compaction nearly disabled
	symbols := symbolsOf("mississippimississippimississippi")
	w := newWalker(symbols, 256, eng.cfg.CompactionFactor)

	for {
		r := w.pq.extractMax()
		if r == nil {
			break
		}
		w.replace(r)
		w.pq.purge()
	}

	for i := 0; i < w.s.Len(); i++ {
		if !w.s.IsGap(i) {
			continue
		}
		target := w.s.GapTarget(i)
		if target == -1 {
			continue
		}
		if w.s.IsGap(target) {
			t.Fatalf("gap at %d points to another gap at %d", i, target)
		}
	}
}

// TestCompactionPreservesRoundTrip forces compaction to run (a high factor
// threshold, reached quickly with a small sequence) and checks the result
// still round-trips.
func TestCompactionPreservesRoundTrip(t *testing.T) {
	eng := New(Config{CompactionFactor: 0.99}) // compacts aggressively
	input := "the quick brown fox the quick brown fox the quick brown fox"
	g, stats, err := eng.Compress(context.Background(), symbolsOf(input))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if stats.CompactionCount == 0 {
		t.Fatalf("expected at least one compaction with factor 0.99")
	}
	got := expand(t, g)
	if string(int32sToBytes(got)) != input {
		t.Fatalf("round trip failed after compaction: got %q", string(int32sToBytes(got)))
	}
}

// TestLiveChainConsistentAfterReplace checks that prevLive/nextLive remain
// mutual inverses through a run with no compaction.
func TestLiveChainConsistentAfterReplace(t *testing.T) {
	w := newWalker(symbolsOf("banana banana banana"), 256, 0.0)
	for {
		r := w.pq.extractMax()
		if r == nil {
			break
		}
		w.replace(r)
		w.pq.purge()
	}

	for i := 0; i < w.s.Len(); i++ {
		if w.s.IsGap(i) {
			continue
		}
		if n := w.nextLive[i]; n != -1 {
			if w.prevLive[n] != i {
				t.Fatalf("live chain broken: nextLive[%d]=%d but prevLive[%d]=%d", i, n, n, w.prevLive[n])
			}
		}
	}
}
