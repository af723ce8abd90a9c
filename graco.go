package graco

import (
	"context"

	"github.com/coregx/graco/longstr"
	"github.com/coregx/graco/pair"
)

// EngineKind selects which grammar-construction algorithm Compress uses.
type EngineKind uint8

const (
	// PairEngineKind selects the Re-Pair-family digram replacement engine
	// (spec §4.1).
	PairEngineKind EngineKind = iota

	// LongestStringEngineKind selects the GLZA-family longest-string
	// engine (spec §4.2-4.6).
	LongestStringEngineKind
)

// Config bundles every tunable knob for both engines into one struct,
// following meta.Config's "one struct, validate every field" shape. Not
// every field matters to every engine; DefaultConfig sets sane values for
// both and Validate only checks fields relevant to the selected Engine.
type Config struct {
	// Engine selects which algorithm Compress dispatches to.
	Engine EngineKind

	// CompactionFactor is the pair engine's density threshold (spec §4.1):
	// the sequence is compacted once live/physical falls below this
	// fraction. Must be in (0, 1].
	CompactionFactor float64

	// MaxStringLength caps suffix-tree edge runs (spec §4.2). Default 8000.
	MaxStringLength int

	// MaxScores is the longest-string engine's top-K candidate list size,
	// initial value before the threshold schedule grows it (spec §4.3,
	// §4.6). Default 5000, schedule caps it at 30000.
	MaxScores int

	// MinScore is the initial acceptance threshold for candidates (spec
	// §4.3, §4.6). Default a small positive epsilon; the outer loop lowers
	// it adaptively.
	MinScore float64

	// ProductionCostOverride, if non-zero, replaces the computed
	// productionCost term in the score formula (spec §4.3, CLI flag -c).
	ProductionCostOverride float64

	// ProfitRatioPowerOverride, if non-nil, replaces the alpha exponent
	// chosen from input mode (spec §4.3, CLI flag -p).
	ProfitRatioPowerOverride *float64

	// RAMBudgetMB caps the arena used for the longest-string engine's
	// suffix-tree slabs (spec §5, CLI flag -r). Minimum 60.
	RAMBudgetMB int

	// WordMode enables the first-cycle word-boundary-only scoring pass for
	// cap-encoded input (spec §4.6, CLI flag -w0 disables it).
	WordMode bool

	// NumBuilderWorkers caps the suffix-tree builder's worker count (spec
	// §4.2 describes 12; configurable for smaller machines/tests).
	NumBuilderWorkers int
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		Engine:            LongestStringEngineKind,
		CompactionFactor:  0.75,
		MaxStringLength:   8000,
		MaxScores:         5000,
		MinScore:          1e-9,
		RAMBudgetMB:       512,
		WordMode:          true,
		NumBuilderWorkers: 12,
	}
}

// Validate checks configuration ranges relevant to the selected engine,
// following meta.Config.Validate's per-field range checks.
func (c Config) Validate() error {
	switch c.Engine {
	case PairEngineKind:
		if c.CompactionFactor <= 0 || c.CompactionFactor > 1 {
			return configError("CompactionFactor", "must be in (0, 1]")
		}
	case LongestStringEngineKind:
		if c.MaxStringLength < 1 {
			return configError("MaxStringLength", "must be >= 1")
		}
		if c.MaxScores < 1 {
			return configError("MaxScores", "must be >= 1")
		}
		if c.MinScore < 0 {
			return configError("MinScore", "must be >= 0")
		}
		if c.RAMBudgetMB < 60 {
			return configError("RAMBudgetMB", "must be >= 60")
		}
		if c.NumBuilderWorkers < 1 {
			return configError("NumBuilderWorkers", "must be >= 1")
		}
	default:
		return configError("Engine", "unknown engine kind")
	}
	return nil
}

// NewPairEngine builds a Compressor backed by the pair-replacement engine.
func NewPairEngine(cfg Config) (Compressor, error) {
	cfg.Engine = PairEngineKind
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &pairCompressor{eng: pair.New(pair.Config{CompactionFactor: cfg.CompactionFactor})}, nil
}

// NewLongestStringEngine builds a Compressor backed by the longest-string
// engine.
func NewLongestStringEngine(cfg Config) (Compressor, error) {
	cfg.Engine = LongestStringEngineKind
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lc := longstr.DefaultConfig()
	lc.MaxStringLength = cfg.MaxStringLength
	lc.MaxScores = cfg.MaxScores
	lc.MinScore = cfg.MinScore
	lc.ProductionCostOverride = cfg.ProductionCostOverride
	lc.ProfitRatioPowerOverride = cfg.ProfitRatioPowerOverride
	lc.RAMBudgetMB = cfg.RAMBudgetMB
	lc.WordMode = cfg.WordMode
	lc.NumBuilderWorkers = cfg.NumBuilderWorkers
	return &longstrCompressor{eng: longstr.New(lc)}, nil
}

type pairCompressor struct{ eng *pair.Engine }

func (p *pairCompressor) Compress(ctx context.Context, symbols []int32) (*Grammar, Stats, error) {
	g, stats, err := p.eng.Compress(ctx, symbols)
	if err != nil {
		return nil, Stats{}, err
	}
	return fromPairGrammar(g), fromPairStats(stats), nil
}

type longstrCompressor struct{ eng *longstr.Engine }

func (l *longstrCompressor) Compress(ctx context.Context, symbols []int32) (*Grammar, Stats, error) {
	g, stats, err := l.eng.Compress(ctx, symbols)
	if err != nil {
		return nil, Stats{}, err
	}
	return fromLongstrGrammar(g), fromLongstrStats(stats), nil
}

func fromPairGrammar(g *pair.Grammar) *Grammar {
	out := &Grammar{Residual: g.Residual, Rules: make([]Rule, len(g.Rules))}
	for i, r := range g.Rules {
		out.Rules[i] = Rule{LHS: r.LHS, RHS: r.RHS}
	}
	return out
}

func fromPairStats(s pair.Stats) Stats {
	return Stats{
		SymbolsIn:       int64(s.SymbolsIn),
		RulesDefined:    int64(s.RulesDefined),
		CompactionCount: int64(s.CompactionCount),
		Cycles:          1,
	}
}

func fromLongstrGrammar(g *longstr.Grammar) *Grammar {
	out := &Grammar{Residual: g.Residual, Rules: make([]Rule, len(g.Rules))}
	for i, r := range g.Rules {
		out.Rules[i] = Rule{LHS: r.LHS, RHS: r.RHS}
	}
	return out
}

func fromLongstrStats(s longstr.Stats) Stats {
	return Stats{
		SymbolsIn:         int64(s.SymbolsIn),
		RulesDefined:      int64(s.RulesDefined),
		CapacityExceededN: int64(s.CapacityExceededCount),
		Cycles:            int64(s.Cycles),
	}
}
