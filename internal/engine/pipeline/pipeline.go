package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"debtrank/internal/core/config"
	"debtrank/internal/core/errors"
	"debtrank/internal/engine/analysis"
	"debtrank/internal/engine/classify"
	"debtrank/internal/engine/detect"
	"debtrank/internal/engine/rank"
	"debtrank/internal/engine/score"
	"debtrank/internal/shared/observability"
)

// Pipeline runs the full analysis chain: detection, classification, scoring,
// filtering and ranking. Construction validates the configuration and
// compiles every glob; a constructed pipeline is immutable and safe for
// concurrent runs.
type Pipeline struct {
	cfg        *config.Config
	classifier *classify.Classifier
	scoreCfg   score.Config
	filterCfg  rank.FilterConfig
	workers    int
}

// New builds a pipeline from the configuration. Invalid settings, including
// unparseable glob patterns, fail here rather than mid-run.
func New(cfg *config.Config) (*Pipeline, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	dctx := &detect.Context{
		Traits: detect.NewTraitTable(),
		Cfg: detect.Config{
			RegistryMinImpls:       cfg.Detectors.RegistryMinImpls,
			RegistryMaxAvgImplSize: cfg.Detectors.RegistryMaxAvgImplSize,
			RegistryMinCoverage:    cfg.Detectors.RegistryMinCoverage,
			RegistryConfidence:     cfg.Detectors.RegistryConfidence,

			CoordinatorMinComparisons: cfg.Detectors.CoordinatorMinComparisons,
			CoordinatorMinPushes:      cfg.Detectors.CoordinatorMinPushes,
			CoordinatorConfidence:     cfg.Detectors.CoordinatorConfidence,

			DispatcherMaxRatio:      cfg.Detectors.DispatcherMaxRatio,
			DispatcherMinCyclomatic: cfg.Detectors.DispatcherMinCyclomatic,
			DispatcherMaxNesting:    cfg.Detectors.DispatcherMaxNesting,
			DispatcherConfidence:    cfg.Detectors.DispatcherConfidence,
		},
	}

	classifier := classify.New(classify.Config{
		ComplexityThreshold:     cfg.Thresholds.Complexity,
		TestingGapCoverage:      cfg.Thresholds.TestingGapCoverage,
		TestingGapMinComplexity: cfg.Thresholds.TestingGapMinComplexity,
		GodObjectMaxMethods:     cfg.Thresholds.GodObjectMaxMethods,
		GodObjectMaxFields:      cfg.Thresholds.GodObjectMaxFields,
		GodModuleMaxFunctions:   cfg.Thresholds.GodModuleMaxFunctions,
		GodModuleMaxLines:       cfg.Thresholds.GodModuleMaxLines,
		ExemptionConfidence:     cfg.Detectors.ExemptionConfidence,
		RegistrySmallImplSize:   cfg.Detectors.RegistrySmallImplSize,
		RegistryMediumImplSize:  cfg.Detectors.RegistryMediumImplSize,
	}, detect.Default(), dctx)

	filterCfg, err := buildFilterConfig(cfg)
	if err != nil {
		return nil, err
	}

	workers := cfg.Runtime.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pipeline{
		cfg:        cfg,
		classifier: classifier,
		scoreCfg: score.Config{
			ComplexityWeight: cfg.Scoring.ComplexityWeight,
			CoverageWeight:   cfg.Scoring.CoverageWeight,
			DependencyWeight: cfg.Scoring.DependencyWeight,

			GodObjectExponent:          cfg.Scoring.GodObjectExponent,
			HighComplexityExponent:     cfg.Scoring.HighComplexityExponent,
			ModerateComplexityExponent: cfg.Scoring.ModerateComplexityExponent,
			TestingGapExponent:         cfg.Scoring.TestingGapExponent,

			HighDependencyBoost:  cfg.Scoring.HighDependencyBoost,
			EntryPointBoost:      cfg.Scoring.EntryPointBoost,
			ComplexUntestedBoost: cfg.Scoring.ComplexUntestedBoost,

			HighDependencyCount:     cfg.Scoring.HighDependencyCount,
			ComplexUntestedCyclo:    cfg.Scoring.ComplexUntestedCyclo,
			UntestedCoverageCeiling: cfg.Scoring.UntestedCoverageCeiling,

			ScoreCeiling: cfg.Scoring.ScoreCeiling,
		},
		filterCfg: *filterCfg,
		workers:   workers,
	}, nil
}

func buildFilterConfig(cfg *config.Config) (*rank.FilterConfig, error) {
	compile := func(patterns []string) ([]glob.Glob, error) {
		globs := make([]glob.Glob, 0, len(patterns))
		for _, p := range patterns {
			g, err := glob.Compile(p)
			if err != nil {
				wrapped := errors.Wrap(err, errors.CodeConfiguration, "invalid glob pattern")
				return nil, errors.AddContext(wrapped, errors.CtxField, p)
			}
			globs = append(globs, g)
		}
		return globs, nil
	}

	advisory, err := compile(cfg.Filter.AdvisoryPatterns)
	if err != nil {
		return nil, err
	}
	testFiles, err := compile(cfg.Filter.TestFiles)
	if err != nil {
		return nil, err
	}
	generated, err := compile(cfg.Filter.GeneratedFiles)
	if err != nil {
		return nil, err
	}

	return &rank.FilterConfig{
		MinScore:         cfg.Filter.MinScore,
		ShowT4:           cfg.Filter.ShowT4,
		AdvisoryPatterns: advisory,

		TestFileGlobs:      testFiles,
		GeneratedFileGlobs: generated,

		TestFileMultiplier:      cfg.Filter.TestFileMultiplier,
		GeneratedFileMultiplier: cfg.Filter.GeneratedFileMultiplier,

		Tiers: rank.TierConfig{
			T1MinScore:            cfg.Tiers.T1MinScore,
			T2ComplexityThreshold: cfg.Tiers.T2ComplexityThreshold,
			T2DependencyThreshold: cfg.Tiers.T2DependencyThreshold,
			T2CognitiveThreshold:  cfg.Tiers.T2CognitiveThreshold,
			T2NestingThreshold:    cfg.Tiers.T2NestingThreshold,
			T3ComplexityThreshold: cfg.Tiers.T3ComplexityThreshold,
		},
	}, nil
}

// Run analyzes the units and returns the ranked debt items. Units are
// processed by a bounded worker pool; result order matches input order
// before ranking so score ties stay deterministic. A panic while processing
// one unit excludes that unit and the run continues.
func (p *Pipeline) Run(ctx context.Context, units []*analysis.Unit) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := observability.Tracer.Start(ctx, "pipeline.run")
	defer span.End()

	slog.Info("analysis run started", "run_id", runID, "units", len(units), "workers", p.workers)

	scored, exclusions, err := p.scoreUnits(ctx, units)
	if err != nil {
		return nil, err
	}

	filterStart := time.Now()
	result := rank.Filter(scored, &p.filterCfg)
	ranked, dropped := rank.Rank(result.Included)
	result.Metrics.FilteredDuplicate = dropped
	result.Metrics.Included = len(ranked)
	observability.StageDuration.WithLabelValues("filter_rank").Observe(time.Since(filterStart).Seconds())

	if !result.Metrics.Consistent() {
		return nil, errors.Newf(errors.CodeInvariant,
			"filter metrics inconsistent: total %d, included %d, filtered %d",
			result.Metrics.Total, result.Metrics.Included, result.Metrics.TotalFiltered())
	}

	recordFilterMetrics(&result.Metrics)
	elapsed := time.Since(start)
	observability.RunDuration.Observe(elapsed.Seconds())

	slog.Info("analysis run finished",
		"run_id", runID,
		"items", len(ranked),
		"excluded", len(exclusions),
		"filtered", result.Metrics.TotalFiltered(),
		"elapsed", elapsed)

	return &Result{
		RunID:      runID,
		Items:      ranked,
		Metrics:    result.Metrics,
		Exclusions: exclusions,
		Elapsed:    elapsed,
	}, nil
}

// scoreUnits classifies and scores the units on a worker pool. Each worker
// writes to a disjoint result slot, so no ordering coordination is needed.
func (p *Pipeline) scoreUnits(ctx context.Context, units []*analysis.Unit) ([]*score.Item, []Exclusion, error) {
	stageStart := time.Now()
	defer func() {
		observability.StageDuration.WithLabelValues("classify_score").Observe(time.Since(stageStart).Seconds())
	}()

	slots := make([]*score.Item, len(units))
	excluded := make([]Exclusion, 0)
	var mu sync.Mutex

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p.scoreOne(units[i], i, slots, &excluded, &mu)
			}
		}()
	}

	var runErr error
feed:
	for i := range units {
		select {
		case <-ctx.Done():
			runErr = errors.Wrap(ctx.Err(), errors.CodeInternal, "analysis cancelled")
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if runErr != nil {
		return nil, nil, runErr
	}

	out := make([]*score.Item, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			out = append(out, s)
			observability.UnitsAnalyzed.Inc()
		}
	}
	observability.UnitsExcluded.Add(float64(len(excluded)))
	return out, excluded, nil
}

func (p *Pipeline) scoreOne(u *analysis.Unit, slot int, slots []*score.Item, excluded *[]Exclusion, mu *sync.Mutex) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf(errors.CodeInvariant, "panic while analyzing unit: %v", r)
			err = errors.AddContext(err, errors.CtxUnit, u.Key())
			slog.Error("unit excluded from run", "unit", u.Key(), "error", err)
			mu.Lock()
			*excluded = append(*excluded, Exclusion{Unit: u, Err: err})
			mu.Unlock()
		}
	}()
	item := p.classifier.ClassifyUnit(u)
	slots[slot] = score.Score(item, &p.scoreCfg)
}

func recordFilterMetrics(m *rank.FilterMetrics) {
	observability.ItemsFiltered.WithLabelValues("t4").Add(float64(m.FilteredT4))
	observability.ItemsFiltered.WithLabelValues("below_score").Add(float64(m.FilteredBelowScore))
	observability.ItemsFiltered.WithLabelValues("advisory").Add(float64(m.FilteredAdvisory))
	observability.ItemsFiltered.WithLabelValues("invalid").Add(float64(m.FilteredInvalid))
	observability.ItemsFiltered.WithLabelValues("duplicate").Add(float64(m.FilteredDuplicate))
	observability.DuplicateItems.Add(float64(m.FilteredDuplicate))
}
