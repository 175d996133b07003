package detect

import "debtrank/internal/engine/analysis"

// CleanDispatcherDetector flags branch-heavy functions whose cognitive
// complexity stays well below their cyclomatic complexity: flat, repetitive
// dispatch tables rather than tangled logic. The signal feeds the advisory
// path and the dampener transparency report, never the classifier directly.
type CleanDispatcherDetector struct{}

func (d *CleanDispatcherDetector) Name() string { return "clean_dispatcher" }

func (d *CleanDispatcherDetector) Detect(u *analysis.Unit, ctx *Context) *analysis.PatternSignal {
	if u.Kind != analysis.KindFunction {
		return nil
	}
	cfg := ctx.Cfg
	if u.Raw.Cyclomatic < cfg.DispatcherMinCyclomatic {
		return nil
	}
	if u.Raw.Nesting > cfg.DispatcherMaxNesting {
		return nil
	}

	ratio := float64(u.Raw.Cognitive) / float64(u.Raw.Cyclomatic)
	if ratio > cfg.DispatcherMaxRatio {
		return nil
	}

	// The flatter the branches, the stronger the signal.
	confidence := 0.6 + (cfg.DispatcherMaxRatio-ratio)*0.5
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < cfg.DispatcherConfidence {
		return nil
	}

	return &analysis.PatternSignal{
		Detector:   d.Name(),
		Pattern:    analysis.PatternCleanDispatcher,
		Confidence: confidence,
		Counts: map[string]float64{
			"cyclomatic":      float64(u.Raw.Cyclomatic),
			"cognitive":       float64(u.Raw.Cognitive),
			"cognitive_ratio": ratio,
		},
	}
}
