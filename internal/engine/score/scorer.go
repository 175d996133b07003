package score

import (
	"math"

	"debtrank/internal/engine/classify"
	"debtrank/internal/engine/complexity"
)

// Config holds the scoring weights, exponents and boost multipliers.
// Validated fail-fast by the config package.
type Config struct {
	ComplexityWeight float64
	CoverageWeight   float64
	DependencyWeight float64

	GodObjectExponent          float64 // architectural types, top of range
	HighComplexityExponent     float64 // effective cyclomatic > 30
	ModerateComplexityExponent float64 // effective cyclomatic > 15
	TestingGapExponent         float64 // testing gap with cyclomatic > 20

	HighDependencyBoost  float64
	EntryPointBoost      float64
	ComplexUntestedBoost float64

	HighDependencyCount     int
	ComplexUntestedCyclo    int
	UntestedCoverageCeiling float64

	ScoreCeiling float64
}

// Item is a scored classified item. FinalScore is a pure deterministic
// function of the recorded inputs:
//
//	FinalScore = max(BaseScore, 1.0)^Exponent * RiskBoost * PatternAdjust
//
// clamped to the configured ceiling.
type Item struct {
	*classify.Item

	BaseScore     float64
	Exponent      float64
	RiskBoost     float64
	PatternAdjust float64
	FinalScore    float64

	// Invalid marks NaN/Inf scores. The filter stage excludes these with a
	// recorded reason instead of aborting the run.
	Invalid bool
}

// Score computes the three scoring stages for one classified item.
func Score(item *classify.Item, cfg *Config) *Item {
	u := item.Unit

	complexityFactor := complexity.Normalize(item.Effective.Cyclomatic, item.Effective.Cognitive)
	coverageFactor := coverageFactor(u.Coverage, u.IsTest)
	dependencyFactor := dependencyFactor(u.Graph.Upstream + u.Graph.Downstream)

	base := complexityFactor*cfg.ComplexityWeight +
		coverageFactor*cfg.CoverageWeight +
		dependencyFactor*cfg.DependencyWeight

	exponent := exponentFor(item, cfg)
	boost := riskBoost(item, cfg)
	adjust := patternAdjust(item)

	// Floor before exponentiation: base^exp degenerates at zero.
	safeBase := math.Max(base, 1.0)
	final := math.Pow(safeBase, exponent) * boost * adjust
	if final > cfg.ScoreCeiling {
		final = cfg.ScoreCeiling
	}

	scored := &Item{
		Item:          item,
		BaseScore:     base,
		Exponent:      exponent,
		RiskBoost:     boost,
		PatternAdjust: adjust,
		FinalScore:    final,
	}
	if math.IsNaN(final) || math.IsInf(final, 0) {
		scored.Invalid = true
		scored.FinalScore = 0
	}
	return scored
}

// ScoreAll scores a batch in input order.
func ScoreAll(items []*classify.Item, cfg *Config) []*Item {
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		out = append(out, Score(it, cfg))
	}
	return out
}

// coverageFactor expresses testing urgency on a 0-10 scale. Known 0%
// coverage on non-test code scores 10.0 and decays smoothly toward a small
// residual at full coverage. Unknown coverage is neutral, not penalized.
// Test code never needs coverage of its own.
func coverageFactor(coverage *float64, isTest bool) float64 {
	if isTest || coverage == nil {
		return 0.0
	}
	c := *coverage
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return 10.0*math.Pow(1.0-c, 1.5) + 0.5*c
}

// dependencyFactor is a centrality proxy over total edge count. Stepped
// rather than linear so a handful of callers already signals a shared path.
func dependencyFactor(totalEdges int) float64 {
	switch {
	case totalEdges <= 0:
		return 0.0
	case totalEdges == 1:
		return 2.0
	case totalEdges == 2:
		return 3.0
	case totalEdges <= 5:
		return float64(totalEdges) + 1.0
	case totalEdges <= 7:
		return 7.0
	case totalEdges <= 9:
		return 8.0
	case totalEdges <= 14:
		return 9.0
	default:
		return 10.0
	}
}

// exponentFor picks the debt-type exponent. Architecturally significant
// types use the top of the range: exponential rather than additive scaling
// makes severity separation grow with the base score.
func exponentFor(item *classify.Item, cfg *Config) float64 {
	if item.Has(classify.DebtGodObject) || item.Has(classify.DebtGodModule) {
		return cfg.GodObjectExponent
	}
	if d := item.Debt(classify.DebtComplexityHotspot); d != nil {
		switch {
		case d.EffectiveCyclomatic > 30:
			return cfg.HighComplexityExponent
		case d.EffectiveCyclomatic > 15:
			return cfg.ModerateComplexityExponent
		}
	}
	if d := item.Debt(classify.DebtTestingGap); d != nil && d.Cyclomatic > 20 {
		return cfg.TestingGapExponent
	}
	return 1.0
}

// riskBoost composes the independent multiplicative risk boosts.
func riskBoost(item *classify.Item, cfg *Config) float64 {
	u := item.Unit
	boost := 1.0

	if u.Graph.Upstream+u.Graph.Downstream > cfg.HighDependencyCount {
		boost *= cfg.HighDependencyBoost
	}
	if u.Graph.IsEntryPoint {
		boost *= cfg.EntryPointBoost
	}
	if cov, known := u.CoveragePct(); known && cov < cfg.UntestedCoverageCeiling &&
		item.Effective.Cyclomatic > cfg.ComplexUntestedCyclo {
		boost *= cfg.ComplexUntestedBoost
	}
	return boost
}

// patternAdjust applies the registry multiplier when the item was exempted
// into a LargeRegistry finding.
func patternAdjust(item *classify.Item) float64 {
	if d := item.Debt(classify.DebtLargeRegistry); d != nil && d.Multiplier > 0 {
		return d.Multiplier
	}
	return 1.0
}
