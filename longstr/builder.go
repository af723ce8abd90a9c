package longstr

import (
	"sync"
	"sync/atomic"
)

// Tree is the completed generalized suffix tree: one slab per builder
// worker, each owning a disjoint partition of firstSymbol values and its
// own root fan-out table (spec §4.2 "Parallelism").
type Tree struct {
	slabs         []*slab
	numWorkers    int
	capExceededN  int
	maxStringLen  int
}

// CapacityExceeded reports whether any worker's slab hit its hard limit
// during the build (spec §4.2 "Node exhaustion").
func (t *Tree) CapacityExceeded() bool { return t.capExceededN > 0 }

// MaxStringLength returns the edge-run cap this tree was built with.
func (t *Tree) MaxStringLength() int { return t.maxStringLen }

func (t *Tree) slabFor(firstSymbol int32) *slab {
	return t.slabs[int(uint32(firstSymbol))%t.numWorkers]
}

// roots returns every root-table entry across all worker slabs, paired with
// the owning slab and the firstSymbol that bucketed it, for the scorer's
// tree walk. firstSymbol is recovered from the root key rather than stored
// again per node: it was never written into any node's text, since the
// node chain under a root entry represents the suffix from the *second*
// character on, the first being implicit in which bucket you're in.
func (t *Tree) roots() func(yield func(s *slab, ref int32, firstSymbol int32)) {
	return func(yield func(s *slab, ref int32, firstSymbol int32)) {
		for _, s := range t.slabs {
			for key, ref := range s.roots {
				yield(s, ref, int32(key>>4))
			}
		}
	}
}

// BuildTree constructs a generalized suffix tree over seqv[start:end] (spec
// §4.2). numWorkers partitions firstSymbol values by `firstSymbol %
// numWorkers`; worker 0 additionally runs inline on the calling goroutine,
// modeling spec §4.2's "main thread does its own insertions for a hot
// low-symbol range to keep the workers busy" — here the hot range is
// whichever partition maps to bucket 0, processed first and synchronously
// while the remaining buckets run concurrently.
//
// The two atomic cursors from spec §4.2 (scanSymbolPtr, maxSymbolPtr) model
// a streaming build where the main thread advances the scan frontier while
// workers race behind it. Since the full window [start, end) is already
// materialized before BuildTree is called, both cursors are set to end
// immediately; they are kept as real atomics rather than collapsed away.
// Each worker reads scanSymbolPtr as the upper bound of its scan;
// maxSymbolPtr is stored but not read.
func BuildTree(seqv []int32, start, end, maxStringLength, numWorkers, nodesPerSlab int) *Tree {
	if numWorkers < 1 {
		numWorkers = 1
	}

	t := &Tree{
		slabs:        make([]*slab, numWorkers),
		numWorkers:   numWorkers,
		maxStringLen: maxStringLength,
	}
	for i := range t.slabs {
		t.slabs[i] = newSlab(nodesPerSlab)
	}

	var scanSymbolPtr int64
	var maxSymbolPtr int64
	atomic.StoreInt64(&scanSymbolPtr, int64(end))
	atomic.StoreInt64(&maxSymbolPtr, int64(end))

	runPartition := func(workerID int) {
		s := t.slabs[workerID]
		limit := int(atomic.LoadInt64(&scanSymbolPtr))
		for p := start; p < limit && p+1 < len(seqv); p++ {
			first := seqv[p]
			if first == sequenceEnd {
				continue
			}
			if t.slabFor(first) != s {
				continue
			}
			s.insertPosition(seqv, p, maxStringLength)
		}
	}

	// Hot range (worker 0) runs inline first.
	runPartition(0)

	if numWorkers > 1 {
		var wg sync.WaitGroup
		for w := 1; w < numWorkers; w++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				runPartition(id)
			}(w)
		}
		wg.Wait()
	}

	for _, s := range t.slabs {
		if s.exceeded {
			t.capExceededN++
		}
	}
	return t
}

// insertPosition is the per-position insertion algorithm from spec §4.2.
func (s *slab) insertPosition(seqv []int32, p int, maxStringLength int) {
	if p+1 >= len(seqv) {
		return
	}
	firstSymbol := seqv[p]
	searchSymbol := seqv[p+1]
	if searchSymbol == sequenceEnd {
		return
	}

	key := rootKey(firstSymbol, searchSymbol)
	ref, ok := s.roots[key]
	if !ok {
		ref = nilRef
	}

	s.insertIntoChain(&ref, seqv, searchSymbol, p+1, p, maxStringLength, 4)
	s.roots[key] = ref
}

func newLeafNode(sym int32, p, contPos int) node {
	return node{
		symbol:          sym,
		lastMatchIndex:  int32(p),
		textAnchor:      int32(contPos),
		childRef:        nilRef,
		siblingRef:      [2]int32{nilRef, nilRef},
		numExtraSymbols: 0,
		instances:       1,
	}
}

// insertIntoChain finds or creates, within the binary sibling chain rooted
// at *headRef, the node matching searchSymbol at live-sequence position
// contPos (the occurrence of searchSymbol belonging to the suffix that
// started at p), then extends the match. bitStart is the next unconsumed
// bit of searchSymbol used for sibling dispatch: 4 for root-table chains
// (the low nibble already selected the bucket), 0 for ordinary child
// sibling chains.
func (s *slab) insertIntoChain(headRef *int32, seqv []int32, searchSymbol int32, contPos, p, maxStringLength int, bitStart int) {
	if *headRef == nilRef {
		sym := s.newLeafSymbol(searchSymbol, contPos, p, maxStringLength)
		ref := s.alloc(newLeafNode(sym, p, contPos))
		if ref != nilRef {
			*headRef = ref
		}
		return
	}

	cur := *headRef
	bit := bitStart
	for {
		n := s.get(cur)
		if n.symbol == searchSymbol {
			s.extendEdge(cur, seqv, contPos, p, maxStringLength)
			return
		}
		if bit > 31 {
			return
		}
		dir := int((uint32(searchSymbol) >> uint(bit)) & 1)
		bit++
		next := s.get(cur).siblingRef[dir]
		if next == nilRef {
			sym := s.newLeafSymbol(searchSymbol, contPos, p, maxStringLength)
			ref := s.alloc(newLeafNode(sym, p, contPos))
			if ref != nilRef {
				s.get(cur).siblingRef[dir] = ref
			}
			return
		}
		cur = next
	}
}

// newLeafSymbol returns searchSymbol, or the length-cap sentinel if this
// new node's depth already reaches maxStringLength (spec §4.2's
// "terminate insertion with a sentinel ... to prevent collisions across
// different suffix origins").
func (s *slab) newLeafSymbol(searchSymbol int32, contPos, p, maxStringLength int) int32 {
	if (contPos-p)+1 >= maxStringLength {
		return lengthCapSentinel(p)
	}
	return searchSymbol
}

// extendEdge walks ref's stored edge-run, comparing it against the live
// continuation of the new occurrence, then either applies the overlap-aware
// update and descends further (full match) or splits the edge (mismatch).
//
// A leaf with no children yet represents exactly one past occurrence and
// has committed to no particular edge length: when a second occurrence
// matches all the way through it, extendEdge is free to grow
// numExtraSymbols further by comparing straight off the stored
// occurrence's continuation, since nothing downstream depends on the edge
// staying short. Once a child exists the edge length is committed and
// later mismatches are resolved by splitEdge instead.
func (s *slab) extendEdge(ref int32, seqv []int32, contPos, p, maxStringLength int) {
	n := *s.get(ref)
	depthBeforeEdge := contPos - p
	extra := int(n.numExtraSymbols)

	i := 0
	for i < extra {
		newIdx := contPos + 1 + i
		oldIdx := int(n.textAnchor) + 1 + i
		if newIdx >= len(seqv) || oldIdx >= len(seqv) || seqv[newIdx] != seqv[oldIdx] {
			break
		}
		i++
	}

	if i < extra {
		s.splitEdge(ref, i, seqv, contPos, p, maxStringLength)
		return
	}

	if n.childRef == nilRef {
		depth := depthBeforeEdge + 1 + extra
		for depth < maxStringLength {
			newIdx := contPos + 1 + extra
			oldIdx := int(n.textAnchor) + 1 + extra
			if newIdx >= len(seqv) || oldIdx >= len(seqv) || seqv[newIdx] != seqv[oldIdx] {
				break
			}
			extra++
			depth++
		}
		if extra != int(n.numExtraSymbols) {
			s.get(ref).numExtraSymbols = int32(extra)
		}
	}

	totalLen := depthBeforeEdge + 1 + extra
	s.applyOverlapUpdate(ref, p, totalLen)
	if totalLen >= maxStringLength {
		return
	}
	nextPos := contPos + 1 + extra
	if nextPos >= len(seqv) {
		return
	}
	nextSymbol := seqv[nextPos]
	if nextSymbol == sequenceEnd {
		return
	}
	childHead := s.get(ref).childRef
	s.insertIntoChain(&childHead, seqv, nextSymbol, nextPos, p, maxStringLength, 0)
	s.get(ref).childRef = childHead
}

// applyOverlapUpdate is the overlap-aware update rule from spec §3. When
// the previous occurrence's span ends at or before p, it's a genuine new
// non-overlapping hit. When it overlaps, spec calls for splitting the node
// so a non-overlapping prefix is tracked separately; this implementation
// takes the documented simplification of not double-counting the
// overlapping occurrence instead of performing that additional split (see
// DESIGN.md).
func (s *slab) applyOverlapUpdate(ref int32, p, totalLen int) {
	n := s.get(ref)
	prevEnd := int(n.lastMatchIndex) + totalLen
	if prevEnd <= p {
		n.instances++
		n.lastMatchIndex = int32(p)
	}
}

// splitEdge handles a mismatch partway through ref's edge run: the shared
// prefix [0, i) stays on ref, the old continuation becomes a new child
// ("tail"), and the new occurrence's divergent continuation is inserted as
// tail's sibling.
func (s *slab) splitEdge(ref int32, i int, seqv []int32, contPos, p, maxStringLength int) {
	n := *s.get(ref)
	oldExtra := int(n.numExtraSymbols)

	oldNextIdx := int(n.textAnchor) + 1 + i
	newNextIdx := contPos + 1 + i
	if oldNextIdx >= len(seqv) || newNextIdx >= len(seqv) {
		// Degenerate boundary: one side has no further symbol to diverge
		// on. Leave the edge as-is rather than attempting a three-way
		// split (accepted approximation, see DESIGN.md).
		return
	}
	oldSym := seqv[oldNextIdx]
	newSym := seqv[newNextIdx]
	if oldSym == newSym {
		return
	}

	tailRef := s.alloc(node{
		symbol:          oldSym,
		lastMatchIndex:  n.lastMatchIndex,
		textAnchor:      int32(oldNextIdx),
		childRef:        n.childRef,
		siblingRef:      [2]int32{nilRef, nilRef},
		numExtraSymbols: int32(oldExtra - i - 1),
		instances:       n.instances,
	})
	if tailRef == nilRef {
		return
	}

	shared := s.get(ref)
	shared.numExtraSymbols = int32(i)
	shared.childRef = tailRef

	// The arriving occurrence matched the shared prefix [0, i) before
	// diverging, so it's a genuine hit on the shorter string ref now
	// represents, subject to the same overlap rule as a full match.
	s.applyOverlapUpdate(ref, p, contPos-p+1+i)

	childHead := shared.childRef
	s.insertIntoChain(&childHead, seqv, newSym, newNextIdx, p, maxStringLength, 0)
	s.get(ref).childRef = childHead
}
