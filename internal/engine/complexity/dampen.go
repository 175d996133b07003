package complexity

import (
	"math"

	"debtrank/internal/engine/analysis"
)

// Entropy-based dampening. Low token entropy means repetitive, pattern-heavy
// code (dispatchers, lookup tables) whose raw complexity overstates the real
// maintenance burden.
//
// This is the only place dampening is computed. Classifier, scorer and
// display all go through Effective; keeping one authority is what prevents
// the raw-vs-effective mismatches between call sites.
const (
	// EntropyThreshold is the token entropy above which no dampening applies.
	EntropyThreshold = 0.2

	// MinFactor bounds the reduction: effective complexity is never less
	// than half of raw.
	MinFactor = 0.5
)

// Factor maps token entropy to a dampening factor in [MinFactor, 1.0].
func Factor(tokenEntropy float64) float64 {
	if tokenEntropy >= EntropyThreshold {
		return 1.0
	}
	if tokenEntropy < 0 {
		tokenEntropy = 0
	}
	f := 1.0 - MinFactor*(EntropyThreshold-tokenEntropy)/EntropyThreshold
	if f < MinFactor {
		f = MinFactor
	}
	return f
}

// Dampen maps a raw complexity value and an entropy score to the effective
// value. Missing entropy means no dampening.
func Dampen(raw int, e *analysis.Entropy) int {
	if e == nil || raw <= 0 {
		return raw
	}
	return int(math.Round(float64(raw) * Factor(e.TokenEntropy)))
}

// EffectiveMetrics are the dampened complexity values used for decisions.
// Raw values stay on the unit for display.
type EffectiveMetrics struct {
	Cyclomatic int
	Cognitive  int
}

// Effective derives the dampened metrics for a unit.
func Effective(u *analysis.Unit) EffectiveMetrics {
	return EffectiveMetrics{
		Cyclomatic: Dampen(u.Raw.Cyclomatic, u.Entropy),
		Cognitive:  Dampen(u.Raw.Cognitive, u.Entropy),
	}
}
