package pair

import "github.com/coregx/graco/internal/seq"

// replacer holds the live state of one Engine.Compress run: the packed
// sequence, the digram index and priority structure built over it, and an
// explicit doubly linked "live position" chain.
//
// The live chain (prevLive/nextLive) is this package's answer to needing
// the symbol immediately before a chosen occurrence (spec §4.1's `a`): the
// Sequence type only walks forward through gap links, so the replacer keeps
// its own parallel prev/next arrays rather than requiring Sequence to
// support backward traversal. After a Compact, the chain collapses back to
// plain arithmetic (no gaps remain), so it is simply rebuilt rather than
// remapped.
type replacer struct {
	s   *seq.Sequence
	idx *digramIndex
	pq  *priorityQueue

	prevLive []int
	nextLive []int

	numTerminals int32
	nextSymbol   int32
	rules        []Rule
	factor       float64
}

// replace retires every occurrence of r's pair, writing a fresh non-terminal
// in their place and repairing the neighboring pairs' frequencies (spec
// §4.1 "Replacer"). One Rule is appended to w.rules for the pair.
func (w *replacer) replace(r *record) {
	e := w.nextSymbol
	w.nextSymbol++
	p := r.pair

	for r.head != -1 {
		cpos := w.idx.unlinkHead(r)

		sgte := w.nextLive[cpos]
		assertInvariant(sgte != -1, "chosen pair at position %d has no following live position", cpos)
		ssgte := w.nextLive[sgte]

		bSym := w.s.At(cpos)
		cSym := w.s.At(sgte)
		assertInvariant(bSym == p.left && cSym == p.right,
			"occurrence at %d = (%d,%d) does not match chosen pair (%d,%d)", cpos, bSym, cSym, p.left, p.right)

		a := w.prevLive[cpos]
		haveA := a != -1
		var aSym int32
		if haveA {
			aSym = w.s.At(a)
			if nr, ok := w.idx.lookup(digram{aSym, bSym}); ok {
				if w.idx.unlink(nr, a) && nr != r {
					w.pq.decFreq(nr)
				}
			}
		}

		haveD := ssgte != -1
		var dSym int32
		if haveD {
			dSym = w.s.At(ssgte)
			if nr, ok := w.idx.lookup(digram{cSym, dSym}); ok {
				if w.idx.unlink(nr, sgte) && nr != r {
					w.pq.decFreq(nr)
				}
			}
		}

		// Splice the dead middle position (sgte) out of the live chain and
		// collapse the pair's two cells into one, holding e. Every gap cell
		// between cpos and ssgte is relinked so it points at a live position.
		w.nextLive[cpos] = ssgte
		if haveD {
			w.prevLive[ssgte] = cpos
		}
		for k := cpos + 1; k <= sgte; k++ {
			w.s.LinkGap(k, ssgte)
		}
		w.s.Set(cpos, e)
		w.s.MarkDead()

		if haveA {
			nr := w.idx.getOrCreate(digram{aSym, e})
			w.idx.linkOccurrence(nr, a)
			w.bumpUp(nr)
		}
		if haveD {
			nr := w.idx.getOrCreate(digram{e, dSym})
			w.idx.linkOccurrence(nr, cpos)
			w.bumpUp(nr)
		}
	}

	w.idx.remove(r)
	w.rules = append(w.rules, Rule{LHS: e, RHS: []int32{p.left, p.right}})
}

// bumpUp notifies the priority structure that r's frequency just increased
// by one via linkOccurrence, inserting it the moment it crosses the
// freq == 2 threshold.
func (w *replacer) bumpUp(r *record) {
	switch {
	case r.freq == 2:
		w.pq.insert(r)
	case r.freq > 2:
		w.pq.incFreq(r)
	}
}

// maybeCompact runs a density-triggered compaction (spec §4.1
// "Compaction"): drops every gap cell from the sequence and repairs the
// digram index's occurrence-list positions and the live chain to match.
// Returns 1 if a compaction ran, 0 otherwise (so callers can accumulate a
// CompactionCount stat without a separate bool-to-int conversion at the
// call site).
func (w *replacer) maybeCompact() int {
	if !w.s.ShouldCompact(w.factor) {
		return 0
	}

	oldLinks := w.idx.links
	mapping := w.s.Compact()

	newLinks := make([]link, len(mapping))
	for oldPos, l := range oldLinks {
		if !l.active {
			continue
		}
		newPos, ok := mapping[oldPos]
		if !ok {
			continue
		}
		newLinks[newPos] = link{
			active: true,
			prev:   remapPos(mapping, l.prev),
			next:   remapPos(mapping, l.next),
		}
	}
	w.idx.links = newLinks

	for _, r := range w.idx.byID {
		if r.head != -1 {
			r.head = mapping[r.head]
		}
		if r.tail != -1 {
			r.tail = mapping[r.tail]
		}
	}

	n := w.s.Len()
	w.prevLive = make([]int, n)
	w.nextLive = make([]int, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			w.prevLive[i] = -1
		} else {
			w.prevLive[i] = i - 1
		}
		if i == n-1 {
			w.nextLive[i] = -1
		} else {
			w.nextLive[i] = i + 1
		}
	}
	return 1
}

func remapPos(mapping map[int]int, pos int) int {
	if pos == -1 {
		return -1
	}
	np, ok := mapping[pos]
	if !ok {
		return -1
	}
	return np
}
