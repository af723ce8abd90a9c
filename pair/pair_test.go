package pair

import (
	"context"
	"testing"
)

// expand recursively replaces non-terminals in residual using the rule
// list, used by tests to check round-trip correctness without depending on
// the root package's Grammar.DecodeBytes.
func expand(t *testing.T, g *Grammar) []int32 {
	t.Helper()
	byLHS := make(map[int32][]int32, len(g.Rules))
	for _, r := range g.Rules {
		byLHS[r.LHS] = r.RHS
	}

	var out []int32
	var rec func(sym int32, depth int)
	rec = func(sym int32, depth int) {
		if depth > 10000 {
			t.Fatalf("expansion depth exceeded for symbol %d, suspected cycle", sym)
		}
		rhs, ok := byLHS[sym]
		if !ok {
			out = append(out, sym)
			return
		}
		for _, s := range rhs {
			rec(s, depth+1)
		}
	}
	for _, s := range g.Residual {
		rec(s, 0)
	}
	return out
}

func symbolsOf(s string) []int32 {
	out := make([]int32, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int32(s[i])
	}
	return out
}

func TestCompressEmpty(t *testing.T) {
	eng := New(DefaultConfig())
	g, stats, err := eng.Compress(context.Background(), nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(g.Rules) != 0 || len(g.Residual) != 0 {
		t.Fatalf("expected empty grammar, got %+v", g)
	}
	if stats.SymbolsIn != 0 {
		t.Fatalf("SymbolsIn = %d, want 0", stats.SymbolsIn)
	}
}

func TestCompressRepeatedPair(t *testing.T) {
	eng := New(DefaultConfig())
	symbols := symbolsOf("aaaaaaaa")
	g, _, err := eng.Compress(context.Background(), symbols)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(g.Rules) == 0 {
		t.Fatalf("expected at least one rule for repeated pair")
	}
	if len(g.Residual) > 4 {
		t.Fatalf("residual length = %d, want <= 4", len(g.Residual))
	}
	got := expand(t, g)
	if string(int32sToBytes(got)) != "aaaaaaaa" {
		t.Fatalf("round trip failed: got %v", got)
	}
}

func TestCompressRepeatedTriple(t *testing.T) {
	eng := New(DefaultConfig())
	symbols := symbolsOf("abcabcabcabc")
	g, _, err := eng.Compress(context.Background(), symbols)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(g.Rules) == 0 {
		t.Fatalf("expected at least one rule")
	}
	got := expand(t, g)
	if string(int32sToBytes(got)) != "abcabcabcabc" {
		t.Fatalf("round trip failed: got %v", got)
	}
}

func TestCompressMississippi(t *testing.T) {
	eng := New(DefaultConfig())
	symbols := symbolsOf("mississippi")
	g, _, err := eng.Compress(context.Background(), symbols)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	got := expand(t, g)
	if string(int32sToBytes(got)) != "mississippi" {
		t.Fatalf("round trip failed: got %v", got)
	}
}

func TestCompressNoRepeats(t *testing.T) {
	eng := New(DefaultConfig())
	symbols := symbolsOf("abcdefgh")
	g, stats, err := eng.Compress(context.Background(), symbols)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(g.Rules) != 0 {
		t.Fatalf("expected no rules for a string with no repeated digrams, got %d", len(g.Rules))
	}
	if stats.RulesDefined != 0 {
		t.Fatalf("RulesDefined = %d, want 0", stats.RulesDefined)
	}
	got := expand(t, g)
	if string(int32sToBytes(got)) != "abcdefgh" {
		t.Fatalf("round trip failed: got %v", got)
	}
}

func TestCompressContextCancelled(t *testing.T) {
	eng := New(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := eng.Compress(ctx, symbolsOf("aaaa"))
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func int32sToBytes(in []int32) []byte {
	out := make([]byte, len(in))
	for i, v := range in {
		out[i] = byte(v)
	}
	return out
}
