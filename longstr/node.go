// Package longstr implements the longest-string grammar engine (spec
// §4.2-4.6): a generalized suffix tree over the live sequence, an
// entropy-weighted scorer, an overlap arbiter built on an Aho-Corasick-style
// match automaton, and a producer/consumer substituter.
package longstr

// nilRef is the "no node" sentinel used throughout the slab-indexed tree,
// playing the role of a null pointer without needing a boxed type.
const nilRef int32 = -1

// sequenceEnd is the only reserved symbol value in a live sequence (spec
// §6: "terminated by the sentinel 0xFFFFFFFE", which as a signed 32-bit
// two's complement value is -2). Every other int32 value, including
// symbol 0 and the high-bit-set non-terminals Substitute mints, is a
// valid live symbol.
const sequenceEnd int32 = -2

// node is one suffix-tree node (spec §3). Child and sibling links are
// indices into a worker's own node slab rather than pointers, so a whole
// subtree can be discarded by resetting a slice length.
//
// Two positions are tracked, deliberately kept separate because they answer
// different questions and are updated on different schedules:
//   - lastMatchIndex is the *suffix-start* position of the most recent
//     non-overlapping occurrence reaching this node (the `p` from spec
//     §3's overlap-aware update rule); it changes every time a new
//     non-overlapping hit lands here.
//   - textAnchor is the live-sequence position of this edge's own dispatch
//     symbol, fixed whenever the edge's (symbol, numExtraSymbols) content
//     is last written (creation or split) and stable in between. Reading
//     this edge's current text is always seq[textAnchor] followed by
//     seq[textAnchor+1 : textAnchor+1+numExtraSymbols].
//
// Using lastMatchIndex for text lookups would be wrong in general: a node
// can be revisited by an occurrence whose ancestor chain differs from the
// chain that last modified one of its ancestors, so the two are not
// interchangeable.
type node struct {
	symbol          int32
	lastMatchIndex  int32
	textAnchor      int32
	childRef        int32
	siblingRef      [2]int32
	numExtraSymbols int32
	instances       int32
}

// lengthCapSentinel marks a leaf created because maxStringLength was
// reached partway through an insertion (spec §4.2): "terminate insertion
// with a sentinel 0xF0000000 - p ... to prevent collisions across different
// suffix origins." p is folded in so two different truncated insertions
// never collide on the same synthetic symbol.
func lengthCapSentinel(p int) int32 {
	return int32(uint32(0xF0000000) - uint32(p))
}

// slab is one builder worker's private node storage plus its share of the
// root fan-out table. Per spec §4.2, workers never share node storage or
// root-table entries; each owns a disjoint partition of firstSymbol values.
type slab struct {
	nodes    []node
	roots    map[int64]int32 // key: firstSymbol<<4 | (searchSymbol & 0xF)
	capacity int
	exceeded bool
}

func newSlab(capacity int) *slab {
	return &slab{
		nodes:    make([]node, 0, capacity),
		roots:    make(map[int64]int32),
		capacity: capacity,
	}
}

func rootKey(firstSymbol, searchSymbol int32) int64 {
	return int64(firstSymbol)<<4 | int64(uint32(searchSymbol)&0xF)
}

// alloc appends a new node, returning its ref, or nilRef if the slab's hard
// limit has been reached (spec §4.2 "Node exhaustion": silent drop, an
// accepted approximation).
func (s *slab) alloc(n node) int32 {
	if len(s.nodes) >= s.capacity {
		s.exceeded = true
		return nilRef
	}
	s.nodes = append(s.nodes, n)
	return int32(len(s.nodes) - 1)
}

func (s *slab) get(ref int32) *node { return &s.nodes[ref] }
