package rank

import (
	"debtrank/internal/engine/classify"
	"debtrank/internal/engine/score"
)

// Tier is the coarse priority bucket. It is orthogonal to the numeric
// score: tiers drive grouping and display filters only and never
// participate in sort order.
type Tier int

const (
	TierT1CriticalArchitecture Tier = iota + 1
	TierT2ComplexUntested
	TierT3TestingGaps
	TierT4Maintenance
)

func (t Tier) String() string { return t.Short() }

// Short returns the compact tier label.
func (t Tier) Short() string {
	switch t {
	case TierT1CriticalArchitecture:
		return "T1"
	case TierT2ComplexUntested:
		return "T2"
	case TierT3TestingGaps:
		return "T3"
	default:
		return "T4"
	}
}

// Label returns the display tier label.
func (t Tier) Label() string {
	switch t {
	case TierT1CriticalArchitecture:
		return "Tier 1: Critical Architecture"
	case TierT2ComplexUntested:
		return "Tier 2: Complex Untested"
	case TierT3TestingGaps:
		return "Tier 3: Testing Gaps"
	default:
		return "Tier 4: Maintenance"
	}
}

// TierConfig holds the tier boundary thresholds.
type TierConfig struct {
	T1MinScore            float64
	T2ComplexityThreshold int
	T2DependencyThreshold int
	T2CognitiveThreshold  int
	T2NestingThreshold    int
	T3ComplexityThreshold int
}

// TierFor assigns a tier from the item's debt types and final score. Pure;
// the same item always lands in the same tier.
func TierFor(item *score.Item, cfg *TierConfig) Tier {
	if item.Has(classify.DebtGodObject) || item.Has(classify.DebtGodModule) {
		return TierT1CriticalArchitecture
	}

	if hotspot := item.Debt(classify.DebtComplexityHotspot); hotspot != nil {
		if item.FinalScore >= cfg.T1MinScore || hotspot.EffectiveCyclomatic > 50 {
			return TierT1CriticalArchitecture
		}
		if hotspot.EffectiveCyclomatic >= cfg.T2ComplexityThreshold ||
			hotspot.EffectiveCognitive >= cfg.T2CognitiveThreshold ||
			item.Unit.Raw.Nesting >= cfg.T2NestingThreshold {
			return TierT2ComplexUntested
		}
	}

	if gap := item.Debt(classify.DebtTestingGap); gap != nil {
		deps := item.Unit.Graph.Upstream + item.Unit.Graph.Downstream
		if gap.EffectiveCyclomatic >= cfg.T2ComplexityThreshold ||
			deps >= cfg.T2DependencyThreshold ||
			item.Unit.Graph.IsEntryPoint {
			return TierT2ComplexUntested
		}
		if gap.EffectiveCyclomatic >= cfg.T3ComplexityThreshold {
			return TierT3TestingGaps
		}
	}

	if item.Has(classify.DebtDeadCode) {
		return TierT3TestingGaps
	}

	return TierT4Maintenance
}
