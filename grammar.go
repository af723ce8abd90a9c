// Package graco implements a grammar-based text compressor built around
// two engines that both reduce a symbol sequence to a straight-line
// grammar plus a residual top-level sequence: a pair-replacement engine
// (Re-Pair family, package pair) and a longest-string engine (GLZA family,
// package longstr).
//
// Package graco itself is a thin facade, in the same spirit as the
// teacher's regex.go: Config/Stats/error types live here, the actual
// engines live in their own sub-packages.
package graco

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Rule is a single production Nk -> (a, b) in the pair engine's grammar,
// or Nk -> w_1 w_2 ... w_k in the longest-string engine's grammar (spec
// §3 "Production table", §4.5 "Append phase").
type Rule struct {
	LHS int32
	RHS []int32
}

// Grammar is the output of a Compressor: a residual sequence plus an
// ordered list of rules such that expanding rules in order (replacing each
// LHS occurrence with its RHS, recursively) restores the original symbol
// sequence.
type Grammar struct {
	Rules    []Rule
	Residual []int32
}

// Stats collects engine-run counters, the teacher's alternative to logging
// (see meta.Engine.Stats): every fact about a run that might be printed or
// inspected is a counter here rather than a log line.
type Stats struct {
	SymbolsIn         int64
	RulesDefined      int64
	MaxUnicodeValue   int32
	CapacityExceededN int64 // count of non-fatal CapacityExceeded events (spec §7)
	Cycles            int64 // outer-loop iterations (longstr only; 1 for pair)
	CompactionCount   int64 // pair engine only
}

// Compressor is the "GrammarCompressor capability" of design note §9: both
// engines implement it, and callers that don't care which algorithm is in
// use can depend on the interface alone.
type Compressor interface {
	Compress(ctx context.Context, symbols []int32) (*Grammar, Stats, error)
}

// DecodeBytes expands a Grammar back into an int32 symbol stream by
// recursively substituting rule right-hand sides into the residual
// sequence, then maps symbols back through alphabet to produce the
// original byte sequence (non-UTF8 mode) or UTF-8 text.
//
// This is not part of the production decompression path (spec §1 Non-goals
// explicitly place decoding "outside this spec"); it exists so this
// module's own round-trip property (P1) can be tested without depending on
// an external decoder.
func (g *Grammar) DecodeBytes(alphabet Alphabet) ([]byte, error) {
	byRule := make(map[int32][]int32, len(g.Rules))
	for _, r := range g.Rules {
		byRule[r.LHS] = r.RHS
	}

	var out []int32
	var expand func(sym int32, depth int) error
	expand = func(sym int32, depth int) error {
		if depth > 10_000 {
			return &EngineError{Kind: KindInvariantViolation, Message: "rule expansion recursion too deep (cyclic grammar?)"}
		}
		if rhs, ok := byRule[sym]; ok {
			for _, s := range rhs {
				if err := expand(s, depth+1); err != nil {
					return err
				}
			}
			return nil
		}
		out = append(out, sym)
		return nil
	}

	for _, sym := range g.Residual {
		if err := expand(sym, 0); err != nil {
			return nil, err
		}
	}

	buf := make([]byte, 0, len(out))
	for _, sym := range out {
		if sym < 0 || int(sym) >= len(alphabet.ByteOf) {
			return nil, &EngineError{Kind: KindInvariantViolation, Message: fmt.Sprintf("symbol %d has no alphabet entry", sym)}
		}
		v := alphabet.ByteOf[sym]
		if alphabet.UTF8Mode {
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], rune(v))
			buf = append(buf, tmp[:n]...)
		} else {
			buf = append(buf, byte(v))
		}
	}
	return buf, nil
}
