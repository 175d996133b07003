package classify

import (
	"fmt"
	"log/slog"

	"debtrank/internal/engine/analysis"
	"debtrank/internal/engine/complexity"
	"debtrank/internal/engine/detect"
)

// Config holds the classification thresholds. Validated fail-fast by the
// config package before a Classifier is built.
type Config struct {
	ComplexityThreshold     int
	TestingGapCoverage      float64
	TestingGapMinComplexity int

	GodObjectMaxMethods   int
	GodObjectMaxFields    int
	GodModuleMaxFunctions int
	GodModuleMaxLines     int

	// ExemptionConfidence gates pattern exemptions. Signals in the band
	// below it do NOT exempt: an over-flagged item beats a hidden one.
	ExemptionConfidence float64

	RegistrySmallImplSize  float64
	RegistryMediumImplSize float64
}

// Classifier evaluates units against independent debt predicates. It is
// stateless after construction and safe for concurrent use.
type Classifier struct {
	cfg       Config
	detectors []detect.Detector
	dctx      *detect.Context
}

// New builds a classifier over the given detector set and shared detector
// context.
func New(cfg Config, detectors []detect.Detector, dctx *detect.Context) *Classifier {
	return &Classifier{cfg: cfg, detectors: detectors, dctx: dctx}
}

// IsComplexityHotspot is the single hotspot predicate. Every call site,
// single-item or batch, goes through here with effective metrics; divergent
// thresholds between paths were the historically recurring defect.
func (c *Classifier) IsComplexityHotspot(eff complexity.EffectiveMetrics) bool {
	return eff.Cyclomatic > c.cfg.ComplexityThreshold || eff.Cognitive > c.cfg.ComplexityThreshold
}

// ClassifyUnit classifies one unit. Pure: identical inputs yield identical
// debt sets and confidences.
func (c *Classifier) ClassifyUnit(u *analysis.Unit) *Item {
	eff := complexity.Effective(u)
	signals := detect.Run(c.detectors, u, c.dctx)

	item := &Item{Unit: u, Effective: eff}
	switch u.Kind {
	case analysis.KindFile:
		c.classifyFile(u, signals, item)
	default:
		c.classifyFunction(u, eff, signals, item)
	}
	if item.Recommendation == "" {
		item.Recommendation = recommend(item)
	}
	return item
}

// ClassifyAll classifies a batch. It delegates to ClassifyUnit per item so
// batch and single-item paths cannot drift apart.
func (c *Classifier) ClassifyAll(units []*analysis.Unit) []*Item {
	items := make([]*Item, 0, len(units))
	for _, u := range units {
		items = append(items, c.ClassifyUnit(u))
	}
	return items
}

func (c *Classifier) classifyFunction(u *analysis.Unit, eff complexity.EffectiveMetrics, signals []analysis.PatternSignal, item *Item) {
	exemption := c.complexityExemption(signals)

	if c.IsComplexityHotspot(eff) {
		if exemption == nil {
			item.Debts = append(item.Debts, DebtType{
				Kind:                DebtComplexityHotspot,
				Cyclomatic:          u.Raw.Cyclomatic,
				Cognitive:           u.Raw.Cognitive,
				EffectiveCyclomatic: eff.Cyclomatic,
				EffectiveCognitive:  eff.Cognitive,
			})
		} else {
			// The complexity stays visible through the signal and the
			// effective metrics; only the classification is withheld.
			slog.Debug("complexity hotspot exempted", exemption.Attrs()...)
			item.Signals = append(item.Signals, *exemption)
			item.Advisory = true
			item.Recommendation = advisoryText(exemption)
		}
	} else if exemption != nil {
		item.Signals = append(item.Signals, *exemption)
		item.Advisory = true
		item.Recommendation = advisoryText(exemption)
	}

	if cov, known := u.CoveragePct(); known &&
		!u.IsTest &&
		cov < c.cfg.TestingGapCoverage &&
		eff.Cyclomatic >= c.cfg.TestingGapMinComplexity {
		item.Debts = append(item.Debts, DebtType{
			Kind:                DebtTestingGap,
			Cyclomatic:          u.Raw.Cyclomatic,
			Cognitive:           u.Raw.Cognitive,
			EffectiveCyclomatic: eff.Cyclomatic,
			EffectiveCognitive:  eff.Cognitive,
			Coverage:            cov,
		})
	}

	// Reachability is supplied by the call-graph collaborator; it already
	// accounts for magic methods and framework hooks.
	if !u.Graph.IsReachable && !u.IsTest && !u.Graph.IsEntryPoint {
		item.Debts = append(item.Debts, DebtType{Kind: DebtDeadCode})
	}
}

func (c *Classifier) classifyFile(u *analysis.Unit, signals []analysis.PatternSignal, item *Item) {
	if u.Inventory == nil {
		return
	}
	inv := u.Inventory

	registry := detect.Find(signals, analysis.PatternLargeRegistry)
	registryExempts := registry != nil && registry.Confidence >= c.cfg.ExemptionConfidence

	if registryExempts {
		slog.Debug("registry pattern exempts god module sizing", registry.Attrs()...)
		avg := registry.Count("avg_impl_size")
		item.Signals = append(item.Signals, *registry)
		item.Debts = append(item.Debts, DebtType{
			Kind:        DebtLargeRegistry,
			ImplCount:   int(registry.Count("impl_count")),
			AvgImplSize: avg,
			Multiplier:  c.registryMultiplier(avg),
		})
	}

	if debt, adjusted := c.godObjectDebt(inv); debt != nil {
		if adjusted != nil {
			item.Signals = append(item.Signals, *adjusted)
		}
		item.Debts = append(item.Debts, *debt)
	} else if traits := detect.Find(signals, analysis.PatternTraitMandated); traits != nil && traits.Confidence >= c.cfg.ExemptionConfidence {
		// The discount kept a would-be god object below threshold.
		item.Signals = append(item.Signals, *traits)
	}

	if !registryExempts &&
		(inv.FunctionCount > c.cfg.GodModuleMaxFunctions || inv.Lines > c.cfg.GodModuleMaxLines) {
		item.Debts = append(item.Debts, DebtType{
			Kind:          DebtGodModule,
			FunctionCount: inv.FunctionCount,
			Lines:         inv.Lines,
		})
	}
}

// complexityExemption returns the signal justifying a hotspot exemption, or
// nil. Borderline confidence resolves conservatively to no exemption.
func (c *Classifier) complexityExemption(signals []analysis.PatternSignal) *analysis.PatternSignal {
	for _, pattern := range []string{analysis.PatternCoordinator, analysis.PatternCleanDispatcher} {
		if sig := detect.Find(signals, pattern); sig != nil && sig.Confidence >= c.cfg.ExemptionConfidence {
			return sig
		}
	}
	return nil
}

// godObjectDebt sizes the worst struct in the file using trait-weighted
// extractable method counts. Trait-mandated methods discount the sizing but
// never suppress it: a self-chosen remainder above threshold still fires.
func (c *Classifier) godObjectDebt(inv *analysis.FileInventory) (*DebtType, *analysis.PatternSignal) {
	var worst *DebtType
	for _, s := range inv.Structs {
		weighted, selfChosen, total := detect.WeightedMethods(inv, s.Name, c.dctx.Traits)
		over := weighted > float64(c.cfg.GodObjectMaxMethods) ||
			selfChosen > c.cfg.GodObjectMaxMethods ||
			s.FieldCount > c.cfg.GodObjectMaxFields
		if !over {
			continue
		}
		if worst == nil || weighted > worst.WeightedMethods {
			worst = &DebtType{
				Kind:            DebtGodObject,
				Struct:          s.Name,
				MethodCount:     total,
				SelfChosenCount: selfChosen,
				WeightedMethods: weighted,
				FieldCount:      s.FieldCount,
			}
		}
	}
	if worst == nil {
		return nil, nil
	}
	if worst.SelfChosenCount < worst.MethodCount {
		return worst, &analysis.PatternSignal{
			Detector:   "trait_mandated",
			Pattern:    analysis.PatternTraitMandated,
			Confidence: float64(worst.MethodCount-worst.SelfChosenCount) / float64(worst.MethodCount),
			Counts: map[string]float64{
				"methods_total":    float64(worst.MethodCount),
				"trait_mandated":   float64(worst.MethodCount - worst.SelfChosenCount),
				"weighted_methods": worst.WeightedMethods,
			},
		}
	}
	return worst, nil
}

func (c *Classifier) registryMultiplier(avgImplSize float64) float64 {
	switch {
	case avgImplSize < c.cfg.RegistrySmallImplSize:
		return 0.2
	case avgImplSize < c.cfg.RegistryMediumImplSize:
		return 0.3
	default:
		return 0.5
	}
}

func advisoryText(sig *analysis.PatternSignal) string {
	switch sig.Pattern {
	case analysis.PatternCoordinator:
		return fmt.Sprintf("No action needed: coordinator pattern (%d actions across %d state comparisons)",
			int(sig.Count("action_pushes")), int(sig.Count("state_comparisons")))
	case analysis.PatternCleanDispatcher:
		return fmt.Sprintf("No action needed: clean dispatcher (cyclomatic %d is structural, cognitive %d)",
			int(sig.Count("cyclomatic")), int(sig.Count("cognitive")))
	default:
		return "No action needed"
	}
}

func recommend(item *Item) string {
	if len(item.Debts) == 0 {
		return "No significant debt"
	}
	d := item.Debts[0]
	switch d.Kind {
	case DebtComplexityHotspot:
		return fmt.Sprintf("Reduce complexity: cyclomatic %d (effective %d), cognitive %d (effective %d)",
			d.Cyclomatic, d.EffectiveCyclomatic, d.Cognitive, d.EffectiveCognitive)
	case DebtLargeRegistry:
		return fmt.Sprintf("Registry pattern: %d impls averaging %.1f lines; no split needed while impls stay small",
			d.ImplCount, d.AvgImplSize)
	case DebtGodObject:
		return fmt.Sprintf("Split %s: %.1f weighted extractable methods (%d total, %d self-chosen), %d fields",
			d.Struct, d.WeightedMethods, d.MethodCount, d.SelfChosenCount, d.FieldCount)
	case DebtGodModule:
		return fmt.Sprintf("Split module: %d functions across %d lines", d.FunctionCount, d.Lines)
	case DebtTestingGap:
		return fmt.Sprintf("Add tests: %.0f%% coverage on complexity %d", d.Coverage*100, d.EffectiveCyclomatic)
	case DebtDeadCode:
		return "Remove unreachable code or wire it to a caller"
	default:
		return "Review flagged unit"
	}
}
