package longstr

// thresholdSchedule tracks minScore/maxScores adaptation across outer
// cycles (spec §4.6). The formulas below are applied literally; the
// resulting maxScores value can occasionally dip before climbing again
// when newRules is small, which matches the growth formula as written
// rather than enforcing an artificial monotonic floor.
type thresholdSchedule struct {
	priorMinScore float64
	minScore      float64
	maxScores     int
	cycle         int
}

func newThresholdSchedule(initialMinScore float64, initialMaxScores int) *thresholdSchedule {
	return &thresholdSchedule{minScore: initialMinScore, maxScores: initialMaxScores}
}

// update absorbs one completed cycle: full reports whether the candidate
// list was at capacity, roundMin is the lowest accepted score this cycle,
// newRules is the number of rules defined this cycle.
func (t *thresholdSchedule) update(full bool, roundMin float64, newRules int) {
	prior := t.priorMinScore
	if prior == 0 {
		prior = roundMin
	}
	min := roundMin

	var newMin float64
	if full && min < prior {
		aggressiveness := 0.98
		switch {
		case t.cycle >= 6:
			aggressiveness = 0.993
		case t.cycle >= 3:
			aggressiveness = 0.99
		}
		newMin = aggressiveness*min*(min/prior) - 0.001
	} else {
		blend := 0.47
		if t.cycle >= 3 {
			blend = 0.45
		}
		newMin = blend*(prior+min) - 0.001
	}
	if newMin < 1e-9 {
		newMin = 1e-9
	}

	t.priorMinScore = min
	t.minScore = newMin
	t.cycle++

	grown := (t.maxScores + 2*(29*newRules/32+5000)) / 3
	if grown > 30000 {
		grown = 30000
	}
	t.maxScores = grown
}

// windowSchedule tracks which slice of the sequence the suffix-tree builder
// scans each cycle (spec §4.6 "Window schedule"). Unscanned territory is
// preferred; once the end of the sequence is reached, the next cycle wraps
// to a fresh full pass from the start.
type windowSchedule struct {
	startRatio, endRatio float64
	windowRatio          float64
}

func newWindowSchedule(windowRatio float64) *windowSchedule {
	if windowRatio <= 0 || windowRatio > 1 {
		windowRatio = 0.25
	}
	return &windowSchedule{windowRatio: windowRatio}
}

// next returns the [start, end) symbol bounds to scan this cycle, for a
// sequence of length n.
func (w *windowSchedule) next(n int) (start, end int) {
	if w.endRatio >= 0.999 {
		w.startRatio = 0
	} else {
		w.startRatio = w.endRatio
	}
	w.endRatio = w.startRatio + w.windowRatio
	if w.endRatio > 1 {
		w.endRatio = 1
	}

	start = int(w.startRatio * float64(n))
	end = int(w.endRatio * float64(n))
	if end <= start {
		w.startRatio, w.endRatio = 0, 1
		return 0, n
	}
	return start, end
}

// firstCycleWordMode reports whether this cycle should restrict scoring to
// space-led, word-boundary-ending strings (spec §4.6 "First-cycle
// word-mode").
func firstCycleWordMode(capEncoded, wordModeEnabled bool, cycle int) bool {
	return cycle == 0 && capEncoded && wordModeEnabled
}
