package detect

import "debtrank/internal/engine/analysis"

// RegistryDetector recognizes file-level registry patterns: one trait
// implemented by a large number of tiny, mostly unit-struct impls, often
// collected in a static trait-object array. Such files are intentionally
// wide, not god modules.
type RegistryDetector struct{}

func (d *RegistryDetector) Name() string { return "registry" }

func (d *RegistryDetector) Detect(u *analysis.Unit, ctx *Context) *analysis.PatternSignal {
	if u.Kind != analysis.KindFile || u.Inventory == nil || u.Inventory.Lines <= 0 {
		return nil
	}
	inv := u.Inventory

	// Group impl blocks by trait and take the dominant trait.
	byTrait := make(map[string][]analysis.ImplBlock)
	for _, impl := range inv.Impls {
		if impl.Trait == "" {
			continue
		}
		byTrait[impl.Trait] = append(byTrait[impl.Trait], impl)
	}
	var dominant []analysis.ImplBlock
	for _, impls := range byTrait {
		if len(impls) > len(dominant) {
			dominant = impls
		}
	}
	implCount := len(dominant)
	if implCount == 0 {
		return nil
	}

	implLines := 0
	for _, impl := range dominant {
		implLines += impl.Lines()
	}
	avgSize := float64(implLines) / float64(implCount)
	coverage := float64(implLines) / float64(inv.Lines)

	unitRatio := 0.0
	if len(inv.Structs) > 0 {
		units := 0
		for _, s := range inv.Structs {
			if s.IsUnit {
				units++
			}
		}
		unitRatio = float64(units) / float64(len(inv.Structs))
	}

	cfg := ctx.Cfg
	if implCount < cfg.RegistryMinImpls ||
		avgSize >= cfg.RegistryMaxAvgImplSize ||
		coverage < cfg.RegistryMinCoverage {
		return nil
	}

	confidence := 0.5
	switch {
	case avgSize < 10:
		confidence += 0.2
	case avgSize < 15:
		confidence += 0.1
	}
	switch {
	case coverage > 0.9:
		confidence += 0.15
	case coverage > 0.8:
		confidence += 0.1
	}
	if unitRatio > 0.8 {
		confidence += 0.15
	}
	if inv.HasTraitObjectArray {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < cfg.RegistryConfidence {
		return nil
	}

	return &analysis.PatternSignal{
		Detector:   d.Name(),
		Pattern:    analysis.PatternLargeRegistry,
		Confidence: confidence,
		Counts: map[string]float64{
			"impl_count":    float64(implCount),
			"avg_impl_size": avgSize,
			"impl_coverage": coverage,
			"unit_ratio":    unitRatio,
		},
	}
}
