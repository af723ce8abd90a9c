package pair

import "testing"

func TestPriorityQueueInsertionOrderTieBreak(t *testing.T) {
	q := newPriorityQueue()
	r1 := &record{id: 1, pair: digram{1, 2}, freq: 3}
	r2 := &record{id: 2, pair: digram{3, 4}, freq: 3}
	r3 := &record{id: 3, pair: digram{5, 6}, freq: 3}

	q.insert(r1)
	q.insert(r2)
	q.insert(r3)

	for i, want := range []*record{r1, r2, r3} {
		got := q.extractMax()
		if got != want {
			t.Fatalf("extraction %d: got record %d, want %d", i, got.id, want.id)
		}
	}
	if q.extractMax() != nil {
		t.Fatalf("expected empty queue")
	}
}

func TestPriorityQueueFreqOneNeverIndexed(t *testing.T) {
	q := newPriorityQueue()
	r := &record{id: 1, pair: digram{1, 2}, freq: 1}
	q.insert(r)
	if r.inBucket {
		t.Fatalf("freq-1 record should not be indexed")
	}
	if !q.empty() {
		t.Fatalf("queue with only a freq-1 record should report empty")
	}
}

func TestPriorityQueueMaxFrequencyWins(t *testing.T) {
	q := newPriorityQueue()
	low := &record{id: 1, pair: digram{1, 2}, freq: 2}
	high := &record{id: 2, pair: digram{3, 4}, freq: 5}
	q.insert(low)
	q.insert(high)

	got := q.extractMax()
	if got != high {
		t.Fatalf("expected highest-frequency record first, got id %d", got.id)
	}
}

func TestPriorityQueueIncDecFreq(t *testing.T) {
	q := newPriorityQueue()
	r := &record{id: 1, pair: digram{1, 2}, freq: 2}
	q.insert(r)

	r.freq++
	q.incFreq(r)
	if !r.inBucket {
		t.Fatalf("record should remain indexed after incFreq")
	}

	r.freq--
	q.decFreq(r)
	r.freq--
	q.decFreq(r)
	if r.inBucket {
		t.Fatalf("record should drop out of the structure once freq < 2")
	}
}

// TestPriorityQueuePurgeDropsLowFrequency exercises purge() as the
// defensive sweep it is documented to be: a record that, through whatever
// path, ends up sitting in a sub-2 bucket (incFreq/decFreq normally prevent
// this) is removed, while buckets at or above the threshold are untouched.
func TestPriorityQueuePurgeDropsLowFrequency(t *testing.T) {
	q := newPriorityQueue()
	survivor := &record{id: 1, pair: digram{1, 2}, freq: 3}
	q.insert(survivor)

	doomed := &record{id: 2, pair: digram{3, 4}, freq: 1}
	el := q.bucket(1).PushBack(doomed)
	q.elems[doomed.id] = el
	doomed.inBucket = true

	q.purge()
	if doomed.inBucket {
		t.Fatalf("purge should have dropped the frequency-1 record")
	}
	if !survivor.inBucket {
		t.Fatalf("purge should not touch surviving records")
	}
}
