package score

import (
	"math"
	"testing"

	"debtrank/internal/engine/analysis"
	"debtrank/internal/engine/classify"
	"debtrank/internal/engine/complexity"
)

func testConfig() *Config {
	return &Config{
		ComplexityWeight: 0.40,
		CoverageWeight:   0.40,
		DependencyWeight: 0.20,

		GodObjectExponent:          1.4,
		HighComplexityExponent:     1.2,
		ModerateComplexityExponent: 1.1,
		TestingGapExponent:         1.1,

		HighDependencyBoost:  1.2,
		EntryPointBoost:      1.15,
		ComplexUntestedBoost: 1.25,

		HighDependencyCount:     15,
		ComplexUntestedCyclo:    20,
		UntestedCoverageCeiling: 0.1,

		ScoreCeiling: 100.0,
	}
}

func coverage(v float64) *float64 { return &v }

func hotspotItem(cyclomatic, cognitive int, cov *float64, graph analysis.CallGraph) *classify.Item {
	u := &analysis.Unit{
		Kind:     analysis.KindFunction,
		Location: analysis.Location{File: "engine.rs", Function: "process", Line: 10},
		Raw:      analysis.RawMetrics{Cyclomatic: cyclomatic, Cognitive: cognitive},
		Coverage: cov,
		Graph:    graph,
	}
	eff := complexity.EffectiveMetrics{Cyclomatic: cyclomatic, Cognitive: cognitive}
	return &classify.Item{
		Unit:      u,
		Effective: eff,
		Debts: []classify.DebtType{{
			Kind:                classify.DebtComplexityHotspot,
			Cyclomatic:          cyclomatic,
			Cognitive:           cognitive,
			EffectiveCyclomatic: eff.Cyclomatic,
			EffectiveCognitive:  eff.Cognitive,
		}},
	}
}

func TestScoreDeterministic(t *testing.T) {
	cfg := testConfig()
	item := hotspotItem(18, 20, coverage(0.3), analysis.CallGraph{Upstream: 4, Downstream: 2, IsReachable: true})

	a := Score(item, cfg)
	b := Score(item, cfg)
	if a.FinalScore != b.FinalScore {
		t.Errorf("scores differ: %v vs %v", a.FinalScore, b.FinalScore)
	}
	if a.BaseScore != b.BaseScore || a.Exponent != b.Exponent || a.RiskBoost != b.RiskBoost {
		t.Error("recorded stages differ between identical runs")
	}
}

// Higher base with identical debt type and flags never yields a lower final
// score.
func TestScoreMonotonicInBase(t *testing.T) {
	cfg := testConfig()
	graph := analysis.CallGraph{Upstream: 3, Downstream: 2, IsReachable: true}

	prev := -1.0
	for cyclo := 11; cyclo <= 30; cyclo++ {
		item := hotspotItem(cyclo, cyclo, coverage(0.5), graph)
		// Pin the exponent band so only the base varies.
		item.Debts[0].EffectiveCyclomatic = 12
		got := Score(item, cfg)
		if got.FinalScore < prev {
			t.Fatalf("score decreased at cyclomatic %d: %v < %v", cyclo, got.FinalScore, prev)
		}
		prev = got.FinalScore
	}
}

func TestScoreFloor(t *testing.T) {
	cfg := testConfig()
	// Near-zero everything: base below 1 must be floored before the exponent.
	item := &classify.Item{
		Unit: &analysis.Unit{
			Kind:     analysis.KindFunction,
			Location: analysis.Location{File: "a.rs", Function: "f", Line: 1},
			Coverage: coverage(1.0),
			Graph:    analysis.CallGraph{IsReachable: true},
		},
		Effective: complexity.EffectiveMetrics{},
	}
	got := Score(item, cfg)
	if got.FinalScore < 1.0 {
		t.Errorf("final score %v below the floor", got.FinalScore)
	}
	if got.BaseScore >= 1.0 {
		t.Fatalf("fixture base %v should be below 1", got.BaseScore)
	}
}

func TestScoreCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.ScoreCeiling = 20.0
	item := hotspotItem(80, 90, coverage(0.0),
		analysis.CallGraph{Upstream: 30, Downstream: 10, IsEntryPoint: true, IsReachable: true})
	got := Score(item, cfg)
	if got.FinalScore != cfg.ScoreCeiling {
		t.Errorf("final score %v, want clamped to %v", got.FinalScore, cfg.ScoreCeiling)
	}
}

func TestRiskBoostComposition(t *testing.T) {
	cfg := testConfig()
	item := hotspotItem(25, 25, coverage(0.05),
		analysis.CallGraph{Upstream: 12, Downstream: 8, IsEntryPoint: true, IsReachable: true})
	got := Score(item, cfg)

	// 20 total edges > 15, entry point, untested at cyclomatic 25 > 20:
	// all three boosts multiply.
	want := 1.2 * 1.15 * 1.25
	if math.Abs(got.RiskBoost-want) > 1e-9 {
		t.Errorf("risk boost = %v, want %v", got.RiskBoost, want)
	}
}

func TestExponentSelection(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name string
		item *classify.Item
		want float64
	}{
		{
			"god object dominates",
			&classify.Item{
				Unit:  &analysis.Unit{Kind: analysis.KindFile, Location: analysis.Location{File: "m.rs"}},
				Debts: []classify.DebtType{{Kind: classify.DebtGodObject}},
			},
			1.4,
		},
		{
			"high complexity",
			hotspotItem(35, 35, coverage(0.5), analysis.CallGraph{IsReachable: true}),
			1.2,
		},
		{
			"moderate complexity",
			hotspotItem(18, 18, coverage(0.5), analysis.CallGraph{IsReachable: true}),
			1.1,
		},
		{
			"mild hotspot scales linearly",
			hotspotItem(12, 12, coverage(0.5), analysis.CallGraph{IsReachable: true}),
			1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.item, cfg); got.Exponent != tt.want {
				t.Errorf("exponent = %v, want %v", got.Exponent, tt.want)
			}
		})
	}
}

func TestCoverageFactor(t *testing.T) {
	tests := []struct {
		name     string
		coverage *float64
		isTest   bool
		want     float64
	}{
		{"unknown is neutral", nil, false, 0.0},
		{"test code is neutral", coverage(0.0), true, 0.0},
		{"uncovered maxes out", coverage(0.0), false, 10.0},
		{"fully covered residual", coverage(1.0), false, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coverageFactor(tt.coverage, tt.isTest)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("coverageFactor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDependencyFactor(t *testing.T) {
	tests := []struct {
		edges int
		want  float64
	}{
		{0, 0.0}, {1, 2.0}, {2, 3.0}, {3, 4.0}, {5, 6.0},
		{6, 7.0}, {7, 7.0}, {9, 8.0}, {14, 9.0}, {15, 10.0}, {40, 10.0},
	}
	for _, tt := range tests {
		if got := dependencyFactor(tt.edges); got != tt.want {
			t.Errorf("dependencyFactor(%d) = %v, want %v", tt.edges, got, tt.want)
		}
	}
}

func TestRegistryAdjustment(t *testing.T) {
	cfg := testConfig()
	item := &classify.Item{
		Unit: &analysis.Unit{
			Kind:     analysis.KindFile,
			Location: analysis.Location{File: "rules.rs"},
			Graph:    analysis.CallGraph{IsReachable: true},
		},
		Effective: complexity.EffectiveMetrics{Cyclomatic: 12, Cognitive: 12},
		Debts: []classify.DebtType{{
			Kind:       classify.DebtLargeRegistry,
			Multiplier: 0.2,
		}},
	}
	got := Score(item, cfg)
	if got.PatternAdjust != 0.2 {
		t.Errorf("pattern adjust = %v, want 0.2", got.PatternAdjust)
	}

	item.Debts[0].Multiplier = 0
	if got := Score(item, cfg); got.PatternAdjust != 1.0 {
		t.Errorf("zero multiplier adjust = %v, want fallback 1.0", got.PatternAdjust)
	}
}

func TestInvalidScoreFlagged(t *testing.T) {
	cfg := testConfig()
	nan := math.NaN()
	item := &classify.Item{
		Unit: &analysis.Unit{
			Kind:     analysis.KindFunction,
			Location: analysis.Location{File: "a.rs", Function: "f", Line: 1},
			Coverage: &nan,
			Graph:    analysis.CallGraph{IsReachable: true},
		},
		Effective: complexity.EffectiveMetrics{Cyclomatic: 12, Cognitive: 12},
	}
	got := Score(item, cfg)
	if !got.Invalid {
		t.Error("NaN input not flagged invalid")
	}
	if got.FinalScore != 0 {
		t.Errorf("invalid item kept score %v", got.FinalScore)
	}
}
