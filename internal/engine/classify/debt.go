package classify

import (
	"debtrank/internal/engine/analysis"
	"debtrank/internal/engine/complexity"
)

// DebtKind enumerates the debt type variants.
type DebtKind string

const (
	DebtComplexityHotspot DebtKind = "complexity_hotspot"
	DebtGodObject         DebtKind = "god_object"
	DebtGodModule         DebtKind = "god_module"
	DebtLargeRegistry     DebtKind = "large_registry"
	DebtTestingGap        DebtKind = "testing_gap"
	DebtDeadCode          DebtKind = "dead_code"
)

// DebtType is one classified debt finding with its display payload. Raw
// metric values are carried alongside the effective ones so renderers never
// recompute dampening.
type DebtType struct {
	Kind DebtKind

	// ComplexityHotspot / TestingGap payload.
	Cyclomatic          int
	Cognitive           int
	EffectiveCyclomatic int
	EffectiveCognitive  int

	// TestingGap payload.
	Coverage float64

	// GodObject payload.
	Struct          string
	MethodCount     int
	SelfChosenCount int
	WeightedMethods float64
	FieldCount      int

	// GodModule payload.
	FunctionCount int
	Lines         int

	// LargeRegistry payload.
	ImplCount   int
	AvgImplSize float64
	Multiplier  float64
}

// Item is a classified analysis unit: the unit, its ordered debt list, the
// effective metrics every later stage reuses, and the signals that caused
// any exemption or adjustment.
type Item struct {
	Unit      *analysis.Unit
	Effective complexity.EffectiveMetrics
	Debts     []DebtType
	Signals   []analysis.PatternSignal

	// Recommendation is the human-facing summary the advisory filter
	// matches against. Advisory marks items where a recognized intentional
	// pattern means no action is needed.
	Recommendation string
	Advisory       bool
}

// Has reports whether the item carries a debt of the given kind.
func (it *Item) Has(kind DebtKind) bool {
	return it.Debt(kind) != nil
}

// Debt returns the first debt of the given kind, or nil.
func (it *Item) Debt(kind DebtKind) *DebtType {
	for i := range it.Debts {
		if it.Debts[i].Kind == kind {
			return &it.Debts[i]
		}
	}
	return nil
}
