package longstr

import (
	"context"
	"strings"
	"testing"
)

func expandLongstr(symbol int32, rules map[int32][]int32, depth int) []int32 {
	if depth > 10000 {
		return []int32{symbol}
	}
	rhs, ok := rules[symbol]
	if !ok {
		return []int32{symbol}
	}
	out := make([]int32, 0, len(rhs))
	for _, s := range rhs {
		out = append(out, expandLongstr(s, rules, depth+1)...)
	}
	return out
}

func reconstructLongstr(g *Grammar) []int32 {
	rules := make(map[int32][]int32, len(g.Rules))
	for _, r := range g.Rules {
		rules[r.LHS] = r.RHS
	}
	var out []int32
	for _, s := range g.Residual {
		if s == sequenceEnd {
			continue
		}
		out = append(out, expandLongstr(s, rules, 0)...)
	}
	return out
}

func TestEngineCompress_Empty(t *testing.T) {
	eng := New(DefaultConfig())
	g, stats, err := eng.Compress(context.Background(), nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if stats.SymbolsIn != 0 {
		t.Errorf("SymbolsIn = %d, want 0", stats.SymbolsIn)
	}
	if len(g.Rules) != 0 {
		t.Errorf("Rules = %v, want none", g.Rules)
	}
}

func TestEngineCompress_RoundTripsRepeatedText(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 40)
	symbols := make([]int32, len(text)+1)
	for i := 0; i < len(text); i++ {
		symbols[i] = int32(text[i])
	}
	symbols[len(text)] = sequenceEnd

	cfg := DefaultConfig()
	cfg.NumBuilderWorkers = 2
	cfg.MaxStringLength = 64
	eng := New(cfg)

	g, _, err := eng.Compress(context.Background(), symbols)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	got := reconstructLongstr(g)
	if len(got) != len(text) {
		t.Fatalf("reconstructed length = %d, want %d", len(got), len(text))
	}
	for i := range got {
		if byte(got[i]) != text[i] {
			t.Fatalf("mismatch at %d: got %q want %q", i, byte(got[i]), text[i])
		}
	}
}

func TestEngineCompress_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng := New(DefaultConfig())
	_, _, err := eng.Compress(ctx, []int32{1, 2, 3, sequenceEnd})
	if err == nil {
		t.Error("expected context cancellation error")
	}
}

func TestEngineCompress_NoRepeatsProducesNoRules(t *testing.T) {
	symbols := []int32{'a', 'b', 'c', 'd', 'e', sequenceEnd}
	eng := New(DefaultConfig())
	g, _, err := eng.Compress(context.Background(), symbols)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(g.Rules) != 0 {
		t.Errorf("Rules = %v, want none for a string with no repeated substrings", g.Rules)
	}
}
