package pair

import (
	"context"

	"github.com/coregx/graco/internal/seq"
)

// Config bundles the pair engine's single tunable: the compaction density
// threshold from spec §4.1.
type Config struct {
	// CompactionFactor: the sequence is compacted once live/physical falls
	// below this fraction. Default 0.75, per spec.
	CompactionFactor float64
}

// DefaultConfig returns the spec's documented default.
func DefaultConfig() Config {
	return Config{CompactionFactor: 0.75}
}

func (c Config) Validate() error {
	if c.CompactionFactor <= 0 || c.CompactionFactor > 1 {
		return configError("CompactionFactor", "must be in (0, 1]")
	}
	return nil
}

// Rule is a single production Nk -> (a, b), a length-2 right-hand side of
// terminal or earlier non-terminal ids (spec §4.1 contract).
type Rule struct {
	LHS int32
	RHS []int32
}

// Grammar is the pair engine's output: the residual sequence plus the
// ordered rule list needed to restore the original input.
type Grammar struct {
	Rules    []Rule
	Residual []int32
}

// Stats collects pair-engine run counters.
type Stats struct {
	SymbolsIn       int
	RulesDefined    int
	CompactionCount int
}

// Engine implements the pair-replacement grammar engine (spec §4.1).
type Engine struct {
	cfg Config
}

// New constructs a pair Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compress implements the §4.1 contract: given an integer sequence over a
// dense terminal alphabet, produce a residual sequence and an ordered rule
// list such that expanding the rules restores the input.
//
// ctx is checked between outer-loop steps (each step retires one pair and
// is always finite, so cancellation is cooperative rather than
// interrupting work mid-step, matching spec §5's "a round runs to
// completion" policy applied at the step granularity natural to this
// engine).
func (e *Engine) Compress(ctx context.Context, symbols []int32) (g *Grammar, stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*Error); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	if err := e.cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}

	stats.SymbolsIn = len(symbols)
	if len(symbols) == 0 {
		return &Grammar{}, stats, nil
	}

	numTerminals := int32(0)
	for _, s := range symbols {
		if s+1 > numTerminals {
			numTerminals = s + 1
		}
	}

	w := newWalker(symbols, numTerminals, e.cfg.CompactionFactor)

	for {
		select {
		case <-ctx.Done():
			return nil, stats, ctx.Err()
		default:
		}

		r := w.pq.extractMax()
		if r == nil {
			break
		}
		w.replace(r)
		w.pq.purge()
		stats.CompactionCount += w.maybeCompact()
	}

	stats.RulesDefined = len(w.rules)
	return &Grammar{Rules: w.rules, Residual: w.s.Values()}, stats, nil
}

// newWalker builds the initial Sequence, digram index, and priority
// structure from a fresh symbol stream (spec §4.1 steps 1-2).
func newWalker(symbols []int32, numTerminals int32, factor float64) *replacer {
	s := seq.New(symbols)
	idx, pq := indexAll(s)

	n := s.Len()
	prevLive := make([]int, n)
	nextLive := make([]int, n)
	for i := 0; i < n; i++ {
		if i == 0 {
			prevLive[i] = -1
		} else {
			prevLive[i] = i - 1
		}
		if i == n-1 {
			nextLive[i] = -1
		} else {
			nextLive[i] = i + 1
		}
	}

	return &replacer{
		s:            s,
		idx:          idx,
		pq:           pq,
		prevLive:     prevLive,
		nextLive:     nextLive,
		numTerminals: numTerminals,
		nextSymbol:   numTerminals,
		factor:       factor,
	}
}
