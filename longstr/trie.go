package longstr

import "container/list"

// trieNode is one node of the match trie used by the overlap arbiter (spec
// §4.4). It plays the same role as the example Aho-Corasick matcher's node:
// miss is the fail pointer (where to resume matching after a symbol fails
// to extend the current node) and hit is the suffix pointer (the longest
// proper suffix of this node's string that is itself a candidate), so a
// single symbol-by-symbol scan reports every candidate ending at each
// position without ever rescanning from the root.
type trieNode struct {
	root           bool
	output         bool
	candidateIndex int
	child          map[int32]*trieNode
	miss           *trieNode
	hit            *trieNode
}

// trie indexes a set of candidate symbol strings for the arbiter's
// containment and overlap passes (spec §4.4).
type trie struct {
	root *trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{candidateIndex: -1}
}

// buildTrie inserts candidates in the given order (candidateIndex is that
// order's index, not candidates[i].scoreNumber) and computes miss/hit links
// via the same BFS the example matcher uses for its fail/suffix pointers.
func buildTrie(candidates []Candidate) *trie {
	t := &trie{root: newTrieNode()}
	t.root.root = true

	for i, c := range candidates {
		n := t.root
		for _, sym := range c.Symbols {
			if n.child == nil {
				n.child = make(map[int32]*trieNode)
			}
			next, ok := n.child[sym]
			if !ok {
				next = newTrieNode()
				n.child[sym] = next
			}
			n = next
		}
		n.output = true
		n.candidateIndex = i
	}

	l := list.New()
	for _, c := range t.root.child {
		c.miss = t.root
		l.PushBack(c)
	}
	for l.Len() > 0 {
		n := l.Remove(l.Front()).(*trieNode)
		for sym, child := range n.child {
			l.PushBack(child)

			f := n.miss
			for {
				if failChild, ok := f.child[sym]; ok {
					child.miss = failChild
					break
				}
				if f.root {
					child.miss = t.root
					break
				}
				f = f.miss
			}

			if child.miss.output {
				child.hit = child.miss
			} else {
				child.hit = child.miss.hit
			}
		}
	}
	return t
}

// step advances the automaton by one symbol from n, following miss links
// until a match is found or the root is reached.
func (t *trie) step(n *trieNode, sym int32) *trieNode {
	for {
		if child, ok := n.child[sym]; ok {
			return child
		}
		if n.root {
			return n
		}
		n = n.miss
	}
}

// matchesAt appends every candidate index ending at the current position to
// out, walking the hit chain the way the example matcher walks its suffix
// chain to report every pattern ending at the current text position.
func (t *trie) matchesAt(n *trieNode, out []int) []int {
	if n.output {
		out = append(out, n.candidateIndex)
	}
	for f := n.hit; f != nil; f = f.hit {
		out = append(out, f.candidateIndex)
	}
	return out
}
