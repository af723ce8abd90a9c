// Package pair implements the pair-replacement (Re-Pair family) grammar
// engine described in spec §4.1: iteratively replace the highest-frequency
// adjacent digram with a fresh non-terminal until no digram repeats.
package pair

// digram is the unordered-by-identity, ordered-by-adjacency pair key from
// spec §3: distinguished by (left, right).
type digram struct {
	left, right int32
}

// link is one cell of the occurrence-list parallel array. Per design note
// §9 this module uses an explicit side array instead of threading the list
// through the sequence's own freed cells; "active" plays the role of the
// spec's NullFreq sentinel ("this cell belongs to no list").
type link struct {
	active bool
	prev   int // position of the previous occurrence, -1 if this is the head
	next   int // position of the next occurrence, -1 if this is the tail
}

// record is the pair record from spec §3: {pair, freq, cpos}, plus the
// bookkeeping this implementation needs to support O(1) priority-structure
// membership and removal.
type record struct {
	id       int
	pair     digram
	freq     int
	head     int // position of the first occurrence, -1 if empty
	tail     int // position of the last occurrence, -1 if empty
	inSeq    int // insertion order; the priority queue breaks ties by bucket arrival order and does not read it (spec §9 open question)
	inBucket bool
}

// digramIndex owns every record ever created for a pair, keyed by the pair
// itself, plus the per-position link array threaded through the engine's
// Sequence.
type digramIndex struct {
	byPair  map[digram]*record
	byID    []*record
	links   []link
	nextSeq int
}

func newDigramIndex(n int) *digramIndex {
	return &digramIndex{
		byPair: make(map[digram]*record, n),
		byID:   make([]*record, 0, n),
		links:  make([]link, n),
	}
}

func (d *digramIndex) ensureLinkCapacity(n int) {
	if n <= len(d.links) {
		return
	}
	grown := make([]link, n)
	copy(grown, d.links)
	d.links = grown
}

// getOrCreate returns the record for p, creating one (freq 0, empty list)
// if it doesn't exist yet.
func (d *digramIndex) getOrCreate(p digram) *record {
	if r, ok := d.byPair[p]; ok {
		return r
	}
	r := &record{id: len(d.byID), pair: p, head: -1, tail: -1, inSeq: d.nextSeq}
	d.nextSeq++
	d.byID = append(d.byID, r)
	d.byPair[p] = r
	return r
}

func (d *digramIndex) lookup(p digram) (*record, bool) {
	r, ok := d.byPair[p]
	return r, ok
}

// linkOccurrence appends position i to r's occurrence list and bumps freq.
func (d *digramIndex) linkOccurrence(r *record, i int) {
	d.ensureLinkCapacity(i + 1)
	d.links[i] = link{active: true, prev: r.tail, next: -1}
	if r.tail != -1 {
		d.links[r.tail].next = i
	} else {
		r.head = i
	}
	r.tail = i
	r.freq++
}

// unlinkHead removes and returns the head occurrence of r's list,
// decrementing freq. Panics (invariant violation) if the list is empty.
func (d *digramIndex) unlinkHead(r *record) int {
	assertInvariant(r.head != -1, "unlinkHead called on empty occurrence list for pair (%d,%d)", r.pair.left, r.pair.right)
	pos := r.head
	next := d.links[pos].next
	d.links[pos].active = false
	r.head = next
	if next == -1 {
		r.tail = -1
	} else {
		d.links[next].prev = -1
	}
	r.freq--
	return pos
}

// unlink removes an arbitrary occurrence position from r's list (used when
// a neighboring pair's occurrence must be retired because one of its
// symbols was just replaced). Reports whether it actually removed anything;
// a stale position whose cell was already retired is a no-op, matching
// spec §4.1's note about overlapping occurrences of the same pair.
func (d *digramIndex) unlink(r *record, pos int) bool {
	l := d.links[pos]
	if !l.active {
		return false
	}
	d.links[pos].active = false
	if l.prev != -1 {
		d.links[l.prev].next = l.next
	} else {
		r.head = l.next
	}
	if l.next != -1 {
		d.links[l.next].prev = l.prev
	} else {
		r.tail = l.prev
	}
	r.freq--
	return true
}

// remove drops r from the index entirely (used once a pair has been fully
// replaced and removed from circulation).
func (d *digramIndex) remove(r *record) {
	delete(d.byPair, r.pair)
}

func assertInvariant(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(invariantViolation(format, args...))
}
