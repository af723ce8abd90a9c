package longstr

import "context"

// maxSymbolsDefined bounds the total non-terminal budget across an entire
// run (spec §4.6): "0x00900000". The outer loop stops minting new rules
// once the next non-terminal id would cross this line.
const maxSymbolsDefined = 0x00900000

// approxNodeBytes estimates one suffix-tree node's footprint for turning a
// RAM budget into a per-slab node capacity. node.go's struct holds eight
// int32 values, exactly 32 bytes; slice and map overhead elsewhere in the
// slab is not counted.
const approxNodeBytes = 32

// Rule is one grammar production, matching pair.Rule's shape so both
// engines plug into graco.Grammar identically.
type Rule struct {
	LHS int32
	RHS []int32
}

// Grammar is the longest-string engine's output: the rules defined across
// every cycle, plus whatever live sequence remains unexpanded.
type Grammar struct {
	Rules    []Rule
	Residual []int32
}

// Stats reports per-run counters for observability (spec §4.6, §7).
type Stats struct {
	SymbolsIn             int
	RulesDefined          int
	CapacityExceededCount int
	Cycles                int
}

// Config bundles every tunable knob for the longest-string engine (spec
// §4.2-4.6, plus the CLI surface in spec §6). Fields mirror the flags
// documented there: ProductionCostOverride is `-c`, ProfitRatioPowerOverride
// is `-p`, RAMBudgetMB is `-r`, and WordMode being false is `-w0`.
type Config struct {
	MaxStringLength          int
	MaxScores                int
	MinScore                 float64
	ProductionCostOverride   float64
	ProfitRatioPowerOverride *float64
	RAMBudgetMB              int
	WordMode                 bool
	NumBuilderWorkers        int
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxStringLength:   8000,
		MaxScores:         5000,
		MinScore:          1e-9,
		RAMBudgetMB:       512,
		WordMode:          true,
		NumBuilderWorkers: 12,
	}
}

// Engine runs the longest-string grammar construction loop (spec §4.6),
// tying the suffix-tree builder, scorer, overlap arbiter, and substituter
// together across repeated cycles.
type Engine struct {
	cfg Config
}

// New constructs an Engine. cfg is assumed already validated by the caller
// (graco.Config.Validate covers the fields that matter here).
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compress runs the outer loop from spec §4.6 until either no candidate
// clears minScore or the non-terminal budget is nearly exhausted.
func (e *Engine) Compress(ctx context.Context, symbols []int32) (*Grammar, Stats, error) {
	stats := Stats{SymbolsIn: len(symbols)}
	if len(symbols) == 0 {
		return &Grammar{}, stats, nil
	}

	seqv := append([]int32{}, symbols...)
	nextNonTerminal := int32(0)
	for _, s := range seqv {
		if s >= 0 && s+1 > nextNonTerminal {
			nextNonTerminal = s + 1
		}
	}

	nodesPerSlab := (e.cfg.RAMBudgetMB * 1024 * 1024) / (e.cfg.NumBuilderWorkers * approxNodeBytes)
	if nodesPerSlab < 1024 {
		nodesPerSlab = 1024
	}

	schedule := newThresholdSchedule(e.cfg.MinScore, e.cfg.MaxScores)
	window := newWindowSchedule(0.25)

	// capEncoded is inferred from WordMode: the input-mode flag byte that
	// decides real cap-encoding lives in the initializer stage (spec §6),
	// out of this engine's scope, so WordMode stands in as the caller's
	// signal that cap-encoded penalty heuristics and first-cycle
	// word-boundary scoring should apply.
	capEncoded := e.cfg.WordMode

	var rules []Rule

	for {
		select {
		case <-ctx.Done():
			return nil, stats, ctx.Err()
		default:
		}

		if int(nextNonTerminal) >= maxSymbolsDefined {
			break
		}

		start, end := window.next(len(seqv))
		tree := BuildTree(seqv, start, end, e.cfg.MaxStringLength, e.cfg.NumBuilderWorkers, nodesPerSlab)
		if tree.CapacityExceeded() {
			stats.CapacityExceededCount++
		}

		scoreCtx := e.newScoreContext(seqv, capEncoded, schedule.minScore)
		wordMode := firstCycleWordMode(capEncoded, e.cfg.WordMode, stats.Cycles)
		list := scoreTree(tree, seqv, scoreCtx, schedule.maxScores, wordMode)
		candidates := list.sortedDescending()
		if len(candidates) == 0 {
			break
		}

		arb, err := RunArbiter(candidates, seqv, 8)
		if err != nil {
			return nil, stats, err
		}
		if len(arb.Accepted) == 0 {
			break
		}

		sub := Substitute(seqv, arb, nextNonTerminal, 6, substituteRingCapacity)
		seqv = sub.Sequence
		rules = append(rules, sub.Rules...)
		nextNonTerminal += int32(len(sub.Rules))
		stats.RulesDefined += len(sub.Rules)
		stats.Cycles++

		roundMin := candidates[len(candidates)-1].Score
		wasFull := len(candidates) >= schedule.maxScores
		schedule.update(wasFull, roundMin, len(sub.Rules))

		if roundMin < e.cfg.MinScore {
			break
		}
	}

	return &Grammar{Rules: rules, Residual: seqv}, stats, nil
}

// newScoreContext derives the corpus-wide statistics the scorer needs from
// the current live sequence.
func (e *Engine) newScoreContext(seqv []int32, capEncoded bool, minScore float64) *ScoreContext {
	counts := make(map[int32]int)
	active := make(map[int32]struct{})
	live := 0
	for _, s := range seqv {
		if s == sequenceEnd {
			continue
		}
		counts[s]++
		active[s] = struct{}{}
		live++
	}

	ctx := &ScoreContext{
		LiveCount:     live,
		ActiveSymbols: len(active),
		SymbolCounts:  counts,
		CapEncoded:    capEncoded,
		UTF8Mode:      false,
		Binary:        !capEncoded,
		MinScore:      minScore,
	}
	if e.cfg.ProductionCostOverride != 0 {
		ctx.ProductionCost = e.cfg.ProductionCostOverride
	}
	if e.cfg.ProfitRatioPowerOverride != nil {
		ctx.Alpha = *e.cfg.ProfitRatioPowerOverride
	}
	return ctx
}
