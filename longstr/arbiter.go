package longstr

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/coregx/ahocorasick"
)

// occurrence is one accepted, non-overlapping placement of a surviving
// candidate in the live sequence.
type occurrence struct {
	candidate int // index into the survivors slice
	start     int
	length    int
}

// ArbiterResult is the overlap arbiter's output (spec §4.4): the final
// candidate list in substitution priority order, each with its accepted,
// mutually non-overlapping occurrence set.
type ArbiterResult struct {
	Accepted    []Candidate
	Occurrences [][]int // Occurrences[i] are sorted start positions for Accepted[i]
}

// RunArbiter resolves overlap and containment among scored candidates
// before substitution (spec §4.4). candidates must already be ordered
// best-first (candidateList.sortedDescending's contract).
//
// Pass 1 builds the match trie over every candidate (structural insertion
// plus the miss/hit BFS, both folded into buildTrie, mirroring the trie
// build and failure-function phases of the corpus's Aho-Corasick matcher).
// Pass 2 uses that trie to drop candidates wholly contained within a
// higher-priority candidate's string, since substituting the longer one
// already consumes those positions. Pass 3 builds a real Aho-Corasick
// automaton over the survivors and scans the live sequence in parallel
// chunks to collect every occurrence, then greedily keeps the
// highest-priority, non-overlapping ones. Pass 4 drops any candidate left
// with zero accepted occurrences and renumbers the rest in final order.
func RunArbiter(candidates []Candidate, seqv []int32, numChunks int) (*ArbiterResult, error) {
	if len(candidates) == 0 {
		return &ArbiterResult{}, nil
	}

	t := buildTrie(candidates) // Pass 1

	valid := invalidateContained(candidates, t) // Pass 2
	survivors := make([]Candidate, 0, len(candidates))
	for i, c := range candidates {
		if valid[i] {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 0 {
		return &ArbiterResult{}, nil
	}

	occs, err := findOverlapFreeOccurrences(survivors, seqv, numChunks) // Pass 3
	if err != nil {
		return nil, err
	}

	return rebuildFinal(survivors, occs), nil // Pass 4
}

// invalidateContained drops any candidate whose symbol string occurs as a
// substring of a strictly higher-priority candidate's string.
func invalidateContained(ranked []Candidate, t *trie) []bool {
	valid := make([]bool, len(ranked))
	for i := range valid {
		valid[i] = true
	}

	hits := make([]int, 0, 8)
	for i, c := range ranked {
		n := t.root
		for _, sym := range c.Symbols {
			n = t.step(n, sym)
			hits = hits[:0]
			hits = t.matchesAt(n, hits)
			for _, h := range hits {
				if h > i {
					valid[h] = false
				}
			}
		}
	}
	return valid
}

func encodeSymbols(symbols []int32) []byte {
	out := make([]byte, 4*len(symbols))
	for i, s := range symbols {
		binary.BigEndian.PutUint32(out[4*i:], uint32(s))
	}
	return out
}

// findOverlapFreeOccurrences scans seqv for every occurrence of every
// survivor, then greedily keeps the highest-priority, non-overlapping
// subset. Symbols are encoded as fixed 4-byte big-endian words so the
// byte-oriented automaton from the corpus can be reused for int32 symbol
// matching: every pattern and the haystack share the same 4-byte stride, and
// a byte match whose start is not on a 4-byte boundary is discarded, so no
// accepted match straddles symbol boundaries.
func findOverlapFreeOccurrences(survivors []Candidate, seqv []int32, numChunks int) ([]occurrence, error) {
	builder := ahocorasick.NewBuilder()
	for _, c := range survivors {
		builder.AddPattern(encodeSymbols(c.Symbols))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}

	patternByBytes := make(map[string]int, len(survivors))
	maxLen := 0
	for i, c := range survivors {
		patternByBytes[string(encodeSymbols(c.Symbols))] = i
		if len(c.Symbols) > maxLen {
			maxLen = len(c.Symbols)
		}
	}

	if numChunks < 1 {
		numChunks = 1
	}
	n := len(seqv)
	if n == 0 {
		return nil, nil
	}
	chunkSize := (n + numChunks - 1) / numChunks

	var wg sync.WaitGroup
	raw := make([][]occurrence, numChunks)
	for ci := 0; ci < numChunks; ci++ {
		lo := ci * chunkSize
		if lo >= n {
			break
		}
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		overlapHi := hi + maxLen - 1
		if overlapHi > n {
			overlapHi = n
		}

		wg.Add(1)
		go func(ci, lo, hi, overlapHi int) {
			defer wg.Done()
			haystack := encodeSymbols(seqv[lo:overlapHi])
			var found []occurrence
			at := 0
			for at*4 < len(haystack) {
				m := automaton.Find(haystack, at*4)
				if m == nil {
					break
				}
				startSym := lo + m.Start/4
				lengthBytes := m.End - m.Start
				lengthSym := lengthBytes / 4
				if m.Start%4 == 0 && startSym < hi { // symbol-aligned only; dedupe the overlap tail against the next chunk
					pat := haystack[m.Start:m.End]
					if idx, ok := patternByBytes[string(pat)]; ok {
						found = append(found, occurrence{candidate: idx, start: startSym, length: lengthSym})
					}
				}
				at = m.Start/4 + 1
			}
			raw[ci] = found
		}(ci, lo, hi, overlapHi)
	}
	wg.Wait()

	var all []occurrence
	for _, r := range raw {
		all = append(all, r...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].candidate != all[j].candidate {
			return all[i].candidate < all[j].candidate
		}
		return all[i].start < all[j].start
	})

	taken := make([]bool, n)
	accepted := make([]occurrence, 0, len(all))
	for _, o := range all {
		overlaps := false
		for k := o.start; k < o.start+o.length; k++ {
			if taken[k] {
				overlaps = true
				break
			}
		}
		if !overlaps {
			for k := o.start; k < o.start+o.length; k++ {
				taken[k] = true
			}
			accepted = append(accepted, o)
		}
	}
	return accepted, nil
}

// rebuildFinal drops survivors with no accepted occurrence and renumbers the
// rest in final priority order, matching spec §4.4's "fresh non-terminal ids
// in candidate-index order".
func rebuildFinal(survivors []Candidate, occs []occurrence) *ArbiterResult {
	byCandidate := make(map[int][]int, len(survivors))
	for _, o := range occs {
		byCandidate[o.candidate] = append(byCandidate[o.candidate], o.start)
	}

	result := &ArbiterResult{}
	for i, c := range survivors {
		starts := byCandidate[i]
		if len(starts) == 0 {
			continue
		}
		sort.Ints(starts)
		c.scoreNumber = len(result.Accepted)
		result.Accepted = append(result.Accepted, c)
		result.Occurrences = append(result.Occurrences, starts)
	}
	return result
}
