package analysis

import "debtrank/internal/shared/util"

// Pattern names emitted by the detectors.
const (
	PatternLargeRegistry   = "large_registry"
	PatternCoordinator     = "coordinator"
	PatternTraitMandated   = "trait_mandated"
	PatternCleanDispatcher = "clean_dispatcher"
)

// PatternSignal is a detector's confidence-scored finding. Signals are
// produced independently per detector and never mutated afterwards.
type PatternSignal struct {
	Detector   string
	Pattern    string
	Confidence float64 // [0,1]
	Counts     map[string]float64
}

// Count returns a supporting metric by name, zero when absent.
func (s *PatternSignal) Count(name string) float64 {
	if s == nil || s.Counts == nil {
		return 0
	}
	return s.Counts[name]
}

// Attrs renders the signal as slog key-value pairs. Counts come out in
// sorted order so log lines are reproducible.
func (s *PatternSignal) Attrs() []any {
	args := []any{"detector", s.Detector, "pattern", s.Pattern, "confidence", s.Confidence}
	for _, name := range util.SortedStringKeys(s.Counts) {
		args = append(args, name, s.Counts[name])
	}
	return args
}
