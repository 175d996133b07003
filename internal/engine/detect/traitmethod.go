package detect

import "debtrank/internal/engine/analysis"

// TraitMandatedDetector reports how much of a file's method surface exists
// because a trait demands it. The classifier uses the weighted counts to
// discount extractable-method sizing for god object detection; the signal
// itself also powers downstream breakdowns ("14 of 32 methods
// trait-mandated") without re-running detection.
//
// Unlike the other detectors this one has no confidence cutoff: it is an
// adjustment input, not a finding, and partial discounts matter too.
type TraitMandatedDetector struct{}

func (d *TraitMandatedDetector) Name() string { return "trait_mandated" }

func (d *TraitMandatedDetector) Detect(u *analysis.Unit, ctx *Context) *analysis.PatternSignal {
	if u.Kind != analysis.KindFile || u.Inventory == nil || len(u.Inventory.Methods) == 0 {
		return nil
	}

	total := len(u.Inventory.Methods)
	mandated := 0
	weighted := 0.0
	for _, m := range u.Inventory.Methods {
		w := ctx.Traits.MethodWeight(m.Trait)
		weighted += w
		if m.Trait != "" {
			mandated++
		}
	}
	if mandated == 0 {
		return nil
	}

	return &analysis.PatternSignal{
		Detector:   d.Name(),
		Pattern:    analysis.PatternTraitMandated,
		Confidence: float64(mandated) / float64(total),
		Counts: map[string]float64{
			"methods_total":    float64(total),
			"trait_mandated":   float64(mandated),
			"weighted_methods": weighted,
		},
	}
}

// WeightedMethods sums the extractable-method weights for the methods of a
// single struct. Self-chosen methods count 1.0, trait-mandated methods use
// the table weight for their trait.
func WeightedMethods(inv *analysis.FileInventory, owner string, traits *TraitTable) (weighted float64, selfChosen, total int) {
	for _, m := range inv.Methods {
		if m.OwnerStruct != owner {
			continue
		}
		total++
		if m.Trait == "" {
			selfChosen++
		}
		weighted += traits.MethodWeight(m.Trait)
	}
	return weighted, selfChosen, total
}
