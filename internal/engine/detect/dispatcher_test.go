package detect

import (
	"testing"

	"debtrank/internal/engine/analysis"
)

func dispatchUnit(cyclomatic, cognitive, nesting int) *analysis.Unit {
	return &analysis.Unit{
		Kind:     analysis.KindFunction,
		Location: analysis.Location{File: "dispatch.rs", Function: "handle_event", Line: 10},
		Raw:      analysis.RawMetrics{Cyclomatic: cyclomatic, Cognitive: cognitive, Nesting: nesting},
	}
}

func TestCleanDispatcherDetector(t *testing.T) {
	d := &CleanDispatcherDetector{}
	ctx := testContext()

	tests := []struct {
		name string
		unit *analysis.Unit
		fire bool
	}{
		{"flat dispatch table", dispatchUnit(16, 8, 1), true},
		{"ratio at limit", dispatchUnit(12, 9, 1), true},
		{"ratio above limit", dispatchUnit(12, 10, 1), false},
		{"too deeply nested", dispatchUnit(16, 8, 3), false},
		{"too few branches", dispatchUnit(6, 3, 1), false},
		{"file unit", &analysis.Unit{Kind: analysis.KindFile}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := d.Detect(tt.unit, ctx)
			if (sig != nil) != tt.fire {
				t.Fatalf("Detect fired=%v, want %v", sig != nil, tt.fire)
			}
			if sig == nil {
				return
			}
			if sig.Pattern != analysis.PatternCleanDispatcher {
				t.Errorf("pattern = %q", sig.Pattern)
			}
		})
	}
}

// Flatter dispatch earns higher confidence.
func TestCleanDispatcherConfidenceOrdering(t *testing.T) {
	d := &CleanDispatcherDetector{}
	ctx := testContext()

	flat := d.Detect(dispatchUnit(20, 5, 0), ctx)
	steep := d.Detect(dispatchUnit(20, 14, 0), ctx)
	if flat == nil || steep == nil {
		t.Fatal("both fixtures should fire")
	}
	if flat.Confidence <= steep.Confidence {
		t.Errorf("flat confidence %v not above steep %v", flat.Confidence, steep.Confidence)
	}
}
