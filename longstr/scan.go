package longstr

// scoreTree walks every node of tree with instances >= 2, scores each
// substring, and returns the accepted top-K candidates (spec §4.3). The
// walk runs as the ring buffer's producer goroutine; this function is the
// consumer, draining candidateMsg values into the sorted list until the
// producer closes the channel.
//
// Each root entry's own path is seeded with its firstSymbol: the bucket
// that selected it is the suffix's actual first character, never written
// into any node's edge text (see Tree.roots).
func scoreTree(tree *Tree, seqv []int32, ctx *ScoreContext, maxScores int, wordMode bool) *candidateList {
	ring := newScoreRing()
	list := newCandidateList(maxScores)

	go func() {
		defer close(ring)
		tree.roots()(func(s *slab, ref int32, firstSymbol int32) {
			walkNode(s, ref, seqv, []int32{firstSymbol}, ctx, wordMode, ring)
		})
	}()

	for msg := range ring {
		list.consider(msg.cand)
	}
	return list
}

// edgeText reconstructs ref's own edge content (not including ancestors)
// from its textAnchor, per node.go's documented split between
// lastMatchIndex (overlap tracking) and textAnchor (stable text lookup).
func edgeText(s *slab, ref int32, seqv []int32) []int32 {
	n := s.get(ref)
	extra := int(n.numExtraSymbols)
	out := make([]int32, 1+extra)
	out[0] = n.symbol
	anchor := int(n.textAnchor)
	for i := 0; i < extra; i++ {
		idx := anchor + 1 + i
		if idx >= 0 && idx < len(seqv) {
			out[1+i] = seqv[idx]
		}
	}
	return out
}

func walkNode(s *slab, ref int32, seqv []int32, prefix []int32, ctx *ScoreContext, wordMode bool, out chan<- candidateMsg) {
	if ref == nilRef {
		return
	}
	n := s.get(ref)
	text := edgeText(s, ref, seqv)
	path := make([]int32, 0, len(prefix)+len(text))
	path = append(path, prefix...)
	path = append(path, text...)

	if n.instances >= 2 {
		if !wordMode || isWordModeCandidate(path) {
			if score, ok := ctx.scoreString(path, int(n.instances)); ok {
				endPos := int(n.lastMatchIndex) + len(path) - 1
				out <- candidateMsg{cand: Candidate{
					Score:           score,
					Symbols:         append([]int32{}, path...),
					Instances:       int(n.instances),
					LastMatchIndex1: endPos,
					LastMatchIndex2: endPos,
				}}
			}
		}
		if n.childRef != nilRef {
			walkNode(s, n.childRef, seqv, path, ctx, wordMode, out)
		}
	}

	for _, sib := range n.siblingRef {
		if sib != nilRef {
			walkNode(s, sib, seqv, prefix, ctx, wordMode, out)
		}
	}
}

// isWordModeCandidate restricts scoring to space-led strings ending on a
// word-boundary character (spec §4.6 "first-cycle word-mode").
func isWordModeCandidate(path []int32) bool {
	if len(path) == 0 || path[0] != spaceSymbol {
		return false
	}
	return isWordBoundarySymbol(path[len(path)-1])
}

func isWordBoundarySymbol(sym int32) bool {
	switch {
	case sym >= 'a' && sym <= 'z', sym >= 'A' && sym <= 'Z', sym >= '0' && sym <= '9':
		return false
	default:
		return true
	}
}
