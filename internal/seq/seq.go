// Package seq implements the packed symbol sequence shared by both grammar
// engines: a contiguous array of symbols that doubles as a doubly linked
// list of "gaps" left behind by substitution.
//
// A production implementation of Re-Pair threads its occurrence lists
// through the empty cells of the symbol array itself, so a negative value
// at a position means "this cell is empty, the next live cell is here".
// This package keeps that gap-link contract (so the live-position walk and
// the invariants it supports are bit-for-bit the same) but does not pack
// occurrence links into the same cells: the pair engine keeps those in its
// own parallel array (pair's digramIndex.links) rather than re-using freed
// cells for two purposes at once.
package seq

// Symbol is a single element of the sequence. Non-negative values in
// [0, numTerminals) are terminals; values >= numTerminals are non-terminal
// (production) identifiers. A Symbol is never negative inside a Sequence's
// exported view — negative packed values are gap links, an implementation
// detail of Sequence itself.
type Symbol = int32

// NullFreq marks a gap cell that belongs to no occurrence list.
const NullFreq = -1

// Sequence is the packed symbol array described in spec §3: it has a
// physical span U (including gap cells) and a live count C, and walking
// from position 0 while following gap links visits exactly C live symbols
// in original order.
type Sequence struct {
	c []Symbol // packed values; negative entries are gap links (-next-1)
	u int      // physical span (len(c) logically in use, <= cap)
	n int      // live count
}

// New creates a Sequence pre-loaded with the given terminal symbols. No
// cell is a gap initially.
func New(symbols []Symbol) *Sequence {
	c := make([]Symbol, len(symbols))
	copy(c, symbols)
	return &Sequence{c: c, u: len(c), n: len(c)}
}

// Len returns the physical span U.
func (s *Sequence) Len() int { return s.u }

// Live returns the live count C.
func (s *Sequence) Live() int { return s.n }

// IsGap reports whether position i holds a gap link rather than a symbol.
func (s *Sequence) IsGap(i int) bool { return s.c[i] < 0 }

// At returns the raw packed value at position i (may be a gap link).
func (s *Sequence) At(i int) Symbol { return s.c[i] }

// Set writes a live symbol at position i. Panics (InvariantViolation by
// convention of the caller) if sym is negative, since negative values are
// reserved for gap links.
func (s *Sequence) Set(i int, sym Symbol) {
	if sym < 0 {
		panic("seq: attempted to store a negative value as a live symbol")
	}
	s.c[i] = sym
}

// LinkGap marks position i as empty, pointing forward to the next live
// position `next`. next == -1 means "no further live position" (tail).
func (s *Sequence) LinkGap(i, next int) {
	s.c[i] = encodeGap(next)
}

// GapTarget decodes the next-live-position pointer stored at a gap cell.
func (s *Sequence) GapTarget(i int) int {
	return decodeGap(s.c[i])
}

// tailGap is the packed value of a gap with no live position after it
// (LinkGap with next == -1); -next-1 would give 0, which reads as live.
const tailGap Symbol = -1 << 31

func encodeGap(next int) Symbol {
	if next < 0 {
		return tailGap
	}
	return Symbol(-int64(next) - 1)
}

func decodeGap(v Symbol) int {
	if v == tailGap {
		return -1
	}
	return int(-int64(v) - 1)
}

// LiveNext returns the next live position strictly after i, following gap
// links as needed (spec §3 "liveNext"). Returns -1 if there is none.
func (s *Sequence) LiveNext(i int) int {
	j := i + 1
	if j >= s.u {
		return -1
	}
	if s.c[j] >= 0 {
		return j
	}
	return s.GapTarget(j)
}

// FirstLive returns the first live position, or -1 if the sequence is
// empty.
func (s *Sequence) FirstLive() int {
	if s.u == 0 {
		return -1
	}
	if s.c[0] >= 0 {
		return 0
	}
	return s.GapTarget(0)
}

// Values materializes the live symbols in order. Used for tests and by the
// pair engine to emit its residual sequence.
func (s *Sequence) Values() []Symbol {
	out := make([]Symbol, 0, s.n)
	for i := s.FirstLive(); i != -1; i = s.LiveNext(i) {
		out = append(out, s.c[i])
	}
	return out
}

// MarkDead collapses the live count by one. Callers are responsible for
// wiring the surrounding gap links; this only maintains the C bookkeeping.
func (s *Sequence) MarkDead() { s.n-- }

// Compact rewrites the packed array contiguously, dropping every gap cell,
// and returns the mapping from old live position to new position (needed by
// callers that must repair record cpos pointers, e.g. the pair engine's
// occurrence lists). Spec §4.1: triggered when c < factor*u.
func (s *Sequence) Compact() map[int]int {
	mapping := make(map[int]int, s.n)
	out := make([]Symbol, 0, s.n)
	for i := s.FirstLive(); i != -1; i = s.LiveNext(i) {
		mapping[i] = len(out)
		out = append(out, s.c[i])
	}
	s.c = out
	s.u = len(out)
	return mapping
}

// ShouldCompact reports whether the live ratio has dropped below factor.
func (s *Sequence) ShouldCompact(factor float64) bool {
	if s.u == 0 {
		return false
	}
	return float64(s.n) < factor*float64(s.u)
}

// Grow appends extra capacity for new symbols and returns the starting
// index.
func (s *Sequence) Grow(extra int) int {
	start := s.u
	s.c = append(s.c, make([]Symbol, extra)...)
	s.u += extra
	s.n += extra
	return start
}

// Raw exposes the packed backing array for direct, bounds-checked-by-caller
// access. Mutating the returned slice bypasses the Sequence's own
// bookkeeping; callers must keep U/C consistent themselves when they do
// this (see SetLive). The pair engine's replacer does not use it.
func (s *Sequence) Raw() []Symbol { return s.c }

// SetLive directly overwrites U and C, for callers that mutate Raw() in
// place and need to report the new sizes.
func (s *Sequence) SetLive(u, n int) {
	s.u = u
	s.n = n
}
