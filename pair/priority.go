package pair

import "container/list"

// priorityQueue is the frequency-bucketed priority structure H from spec
// §3: a map from frequency to the set of records sharing that frequency,
// supporting extractMax, incFreq, decFreq and purge.
//
// Within a bucket, records are kept in an insertion-ordered doubly linked
// list (container/list, the same primitive itgcl-ahocorasick's trie
// builder uses for its BFS queue) so that the required tie-break —
// "first-insertion order" (spec §9 open question) — is satisfied without
// extra bookkeeping: list.PushBack preserves arrival order and the front of
// the bucket is always the earliest-inserted surviving record.
type priorityQueue struct {
	buckets map[int]*list.List     // freq -> ordered list of *record
	elems   map[int]*list.Element  // record id -> its element, for O(1) removal
	maxFreq int
}

func newPriorityQueue() *priorityQueue {
	return &priorityQueue{
		buckets: make(map[int]*list.List),
		elems:   make(map[int]*list.Element),
	}
}

func (q *priorityQueue) bucket(freq int) *list.List {
	b, ok := q.buckets[freq]
	if !ok {
		b = list.New()
		q.buckets[freq] = b
	}
	return b
}

// insert adds r to the bucket for its current frequency. Frequency-1
// records are never inserted (spec §3: "records with freq == 1 are not
// indexed in the priority structure").
func (q *priorityQueue) insert(r *record) {
	if r.freq < 2 {
		return
	}
	el := q.bucket(r.freq).PushBack(r)
	q.elems[r.id] = el
	r.inBucket = true
	if r.freq > q.maxFreq {
		q.maxFreq = r.freq
	}
}

func (q *priorityQueue) removeFromBucket(r *record, freq int) {
	el, ok := q.elems[r.id]
	if !ok {
		return
	}
	q.bucket(freq).Remove(el)
	delete(q.elems, r.id)
	r.inBucket = false
}

// incFreq notifies the structure that r's frequency just increased by one
// (the caller has already bumped r.freq). Moves r to the new bucket,
// inserting it for the first time if it just crossed the freq==2
// threshold.
func (q *priorityQueue) incFreq(r *record) {
	oldFreq := r.freq - 1
	if r.inBucket {
		q.removeFromBucket(r, oldFreq)
	}
	q.insert(r)
}

// decFreq notifies the structure that r's frequency just decreased by one
// (the caller has already decremented r.freq). Moves r to the new bucket,
// purging it out of the structure if it dropped below 2.
func (q *priorityQueue) decFreq(r *record) {
	oldFreq := r.freq + 1
	if r.inBucket {
		q.removeFromBucket(r, oldFreq)
	}
	q.insert(r)
}

// extractMax removes and returns the highest-frequency record, breaking
// ties by insertion order. Returns nil if the structure is empty.
func (q *priorityQueue) extractMax() *record {
	for q.maxFreq >= 2 {
		b, ok := q.buckets[q.maxFreq]
		if !ok || b.Len() == 0 {
			q.maxFreq--
			continue
		}
		front := b.Front()
		r := front.Value.(*record)
		b.Remove(front)
		delete(q.elems, r.id)
		r.inBucket = false
		return r
	}
	return nil
}

// purge drops every record whose frequency has fallen below 2 from the
// structure. incFreq/decFreq already do this incrementally per spec §3,
// but the replacer additionally calls purge once per outer step after
// retiring the chosen pair, matching spec §4.1's explicit "purge
// frequency-1 records" step.
func (q *priorityQueue) purge() {
	for freq, b := range q.buckets {
		if freq >= 2 {
			continue
		}
		for el := b.Front(); el != nil; {
			next := el.Next()
			r := el.Value.(*record)
			b.Remove(el)
			delete(q.elems, r.id)
			r.inBucket = false
			el = next
		}
	}
}

// empty reports whether any record with freq >= 2 remains, i.e. whether
// the outer loop should terminate (spec §4.1 "Termination").
func (q *priorityQueue) empty() bool {
	for freq, b := range q.buckets {
		if freq >= 2 && b.Len() > 0 {
			return false
		}
	}
	return true
}
