package longstr

import "testing"

func TestInvalidateContained_DropsSubstringOfBetterCandidate(t *testing.T) {
	ranked := []Candidate{
		candFromString("hello"), // best
		candFromString("ell"),   // contained within "hello"
		candFromString("world"), // independent
	}
	tr := buildTrie(ranked)
	valid := invalidateContained(ranked, tr)

	if !valid[0] {
		t.Error("best candidate marked invalid")
	}
	if valid[1] {
		t.Error("\"ell\" (substring of \"hello\") should be invalidated")
	}
	if !valid[2] {
		t.Error("\"world\" should remain valid")
	}
}

func TestEncodeSymbols_FixedStride(t *testing.T) {
	symbols := []int32{1, -2, 1000000, 0}
	encoded := encodeSymbols(symbols)
	if len(encoded) != 4*len(symbols) {
		t.Fatalf("len(encoded) = %d, want %d", len(encoded), 4*len(symbols))
	}
}

func TestRebuildFinal_DropsZeroOccurrenceSurvivors(t *testing.T) {
	survivors := []Candidate{candFromString("ab"), candFromString("cd")}
	occs := []occurrence{{candidate: 0, start: 3, length: 2}}

	result := rebuildFinal(survivors, occs)
	if len(result.Accepted) != 1 {
		t.Fatalf("Accepted = %v, want 1 survivor", result.Accepted)
	}
	if result.Accepted[0].scoreNumber != 0 {
		t.Errorf("scoreNumber = %d, want 0", result.Accepted[0].scoreNumber)
	}
	if len(result.Occurrences[0]) != 1 || result.Occurrences[0][0] != 3 {
		t.Errorf("Occurrences[0] = %v, want [3]", result.Occurrences[0])
	}
}

func TestRunArbiter_EmptyCandidatesReturnsEmptyResult(t *testing.T) {
	result, err := RunArbiter(nil, []int32{1, 2, 3}, 4)
	if err != nil {
		t.Fatalf("RunArbiter: %v", err)
	}
	if len(result.Accepted) != 0 {
		t.Errorf("Accepted = %v, want empty", result.Accepted)
	}
}
