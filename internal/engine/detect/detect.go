package detect

import "debtrank/internal/engine/analysis"

// Config holds the detector thresholds. All values are validated by the
// config package before a Context is built.
type Config struct {
	RegistryMinImpls       int
	RegistryMaxAvgImplSize float64
	RegistryMinCoverage    float64
	RegistryConfidence     float64

	CoordinatorMinComparisons int
	CoordinatorMinPushes      int
	CoordinatorConfidence     float64

	DispatcherMaxRatio      float64
	DispatcherMinCyclomatic int
	DispatcherMaxNesting    int
	DispatcherConfidence    float64
}

// Context carries the shared immutable state detectors may consult: the
// trait weight table and the detector thresholds. Built once per pipeline,
// never mutated afterwards.
type Context struct {
	Traits *TraitTable
	Cfg    Config
}

// Detector is a pure, order-independent pattern heuristic. Detect returns
// nil when the unit does not exhibit the pattern above the detector's
// confidence cutoff. Implementations must not retain or mutate the unit.
type Detector interface {
	Name() string
	Detect(u *analysis.Unit, ctx *Context) *analysis.PatternSignal
}

// Default returns the built-in detector set. New heuristics are additive:
// append another Detector implementation here or pass a custom slice to the
// pipeline.
func Default() []Detector {
	return []Detector{
		&RegistryDetector{},
		&CoordinatorDetector{},
		&TraitMandatedDetector{},
		&CleanDispatcherDetector{},
	}
}

// Run applies every detector to the unit and collects the fired signals.
// Detector order never affects the outcome; signals are independent.
func Run(detectors []Detector, u *analysis.Unit, ctx *Context) []analysis.PatternSignal {
	var signals []analysis.PatternSignal
	for _, d := range detectors {
		if sig := d.Detect(u, ctx); sig != nil {
			signals = append(signals, *sig)
		}
	}
	return signals
}

// Find returns the first signal with the given pattern name, or nil.
func Find(signals []analysis.PatternSignal, pattern string) *analysis.PatternSignal {
	for i := range signals {
		if signals[i].Pattern == pattern {
			return &signals[i]
		}
	}
	return nil
}
