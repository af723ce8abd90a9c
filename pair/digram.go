package pair

import "github.com/coregx/graco/internal/seq"

// indexAll is the Digram indexer (spec §4.1 step 2): scan the sequence
// once, inserting every adjacent pair into the hash table, linking each
// occurrence into its pair's doubly linked list, and registering pairs
// that reach frequency >= 2 in the priority structure.
func indexAll(s *seq.Sequence) (*digramIndex, *priorityQueue) {
	idx := newDigramIndex(s.Len())
	pq := newPriorityQueue()

	for i := s.FirstLive(); i != -1; {
		j := s.LiveNext(i)
		if j == -1 {
			break
		}
		p := digram{left: s.At(i), right: s.At(j)}
		r := idx.getOrCreate(p)
		idx.linkOccurrence(r, i)
		if r.freq == 2 {
			pq.insert(r)
		} else if r.freq > 2 {
			pq.incFreq(r)
		}
		i = j
	}
	return idx, pq
}
