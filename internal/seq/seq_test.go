package seq

import "testing"

func TestNewAndValues(t *testing.T) {
	s := New([]Symbol{1, 2, 3, 4})
	if s.Len() != 4 || s.Live() != 4 {
		t.Fatalf("unexpected sizes: u=%d c=%d", s.Len(), s.Live())
	}
	got := s.Values()
	want := []Symbol{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestGapLinkRoundTrip(t *testing.T) {
	s := New([]Symbol{10, 20, 30, 40})
	// Delete position 1, linking 0 -> 2 via a gap at 1.
	s.LinkGap(1, 2)
	s.MarkDead()

	if !s.IsGap(1) {
		t.Fatal("expected position 1 to be a gap")
	}
	if got := s.GapTarget(1); got != 2 {
		t.Fatalf("gap target = %d, want 2", got)
	}
	if got := s.LiveNext(0); got != 2 {
		// LiveNext(0) looks at position 1 directly; since it's a gap it
		// must resolve through the gap link to 2.
		t.Fatalf("LiveNext(0) = %d, want 2 (via gap)", got)
	}
}

func TestCompactDropsGaps(t *testing.T) {
	s := New([]Symbol{10, 20, 30, 40})
	s.LinkGap(1, 2)
	s.MarkDead()

	mapping := s.Compact()
	if s.Len() != 3 {
		t.Fatalf("expected compacted length 3, got %d", s.Len())
	}
	vals := s.Values()
	want := []Symbol{10, 30, 40}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("got %v want %v", vals, want)
		}
	}
	if mapping[0] != 0 || mapping[2] != 1 || mapping[3] != 2 {
		t.Fatalf("unexpected mapping: %v", mapping)
	}
}

func TestShouldCompact(t *testing.T) {
	s := New([]Symbol{1, 2, 3, 4})
	if s.ShouldCompact(0.75) {
		t.Fatal("fresh sequence should not need compaction")
	}
	s.LinkGap(1, 2)
	s.LinkGap(2, 3)
	s.MarkDead()
	s.MarkDead()
	if !s.ShouldCompact(0.75) {
		t.Fatal("sequence with half its cells dead should need compaction")
	}
}

func TestFirstLiveEmptyGapAtHead(t *testing.T) {
	s := New([]Symbol{1, 2, 3})
	s.LinkGap(0, 1)
	s.MarkDead()
	if got := s.FirstLive(); got != 1 {
		t.Fatalf("FirstLive() = %d, want 1", got)
	}
}
