package longstr

// candidateMsg is one entry passed from the scoring producer to the top-K
// consumer (spec §4.3). end is never set or read: the producer ends the
// stream by closing the channel, and the consumer drains it until closed.
type candidateMsg struct {
	end  bool
	cand Candidate
}

// scoreRingCapacity and scoreRingHighWater mirror spec §4.3's concrete SPSC
// sizing (65,536 entries, high-water mark 61,440). Only scoreRingCapacity is
// used: the producer blocks once all 65,536 slots are full, and
// scoreRingHighWater is not consulted.
const (
	scoreRingCapacity  = 65536
	scoreRingHighWater = 61440
)

// newScoreRing is the producer/consumer channel between the scoring walk
// and the top-K consumer. Per design note §9 ("model as single-producer
// single-consumer channels with explicit acquire/release indices; any
// runtime primitive that provides bounded-channel backpressure satisfies
// the contract"), a buffered channel stands in for the spec's hand-rolled
// ring buffer: sending blocks once the channel is full, which is the same
// backpressure effect as the spec's producer-spins-past-high-water rule,
// just expressed as a blocking send instead of a spin loop.
func newScoreRing() chan candidateMsg {
	return make(chan candidateMsg, scoreRingCapacity)
}
