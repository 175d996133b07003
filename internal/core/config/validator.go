package config

import (
	"github.com/gobwas/glob"

	"debtrank/internal/core/errors"
)

// Validate checks the full configuration and fails on the first invalid
// section. A config that passes here never causes a stage to produce NaN
// or negative scores on valid input.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.CodeConfiguration, "config is nil")
	}
	validators := []func(*Config) error{
		validateThresholds,
		validateScoring,
		validateTiers,
		validateDetectors,
		validateFilter,
		validateRuntime,
	}
	for _, v := range validators {
		if err := v(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateThresholds(cfg *Config) error {
	t := cfg.Thresholds
	if t.Complexity <= 0 {
		return fieldErr("thresholds.complexity", "must be positive")
	}
	if t.TestingGapCoverage < 0 || t.TestingGapCoverage > 1 {
		return fieldErr("thresholds.testing_gap_coverage", "must be in [0, 1]")
	}
	if t.TestingGapMinComplexity < 0 {
		return fieldErr("thresholds.testing_gap_min_complexity", "must not be negative")
	}
	if t.GodObjectMaxMethods <= 0 || t.GodObjectMaxFields <= 0 {
		return fieldErr("thresholds.god_object", "method and field limits must be positive")
	}
	if t.GodModuleMaxFunctions <= 0 || t.GodModuleMaxLines <= 0 {
		return fieldErr("thresholds.god_module", "function and line limits must be positive")
	}
	return nil
}

func validateScoring(cfg *Config) error {
	s := cfg.Scoring
	for name, w := range map[string]float64{
		"scoring.complexity_weight": s.ComplexityWeight,
		"scoring.coverage_weight":   s.CoverageWeight,
		"scoring.dependency_weight": s.DependencyWeight,
	} {
		if w < 0 || w > 1 {
			return fieldErr(name, "must be in [0, 1]")
		}
	}
	sum := s.ComplexityWeight + s.CoverageWeight + s.DependencyWeight
	if sum < 0.999 || sum > 1.001 {
		return fieldErr("scoring weights", "must sum to 1.0")
	}
	for name, e := range map[string]float64{
		"scoring.god_object_exponent":          s.GodObjectExponent,
		"scoring.high_complexity_exponent":     s.HighComplexityExponent,
		"scoring.moderate_complexity_exponent": s.ModerateComplexityExponent,
		"scoring.testing_gap_exponent":         s.TestingGapExponent,
	} {
		if e < 1 {
			return fieldErr(name, "must be at least 1.0")
		}
	}
	for name, b := range map[string]float64{
		"scoring.high_dependency_boost":  s.HighDependencyBoost,
		"scoring.entry_point_boost":      s.EntryPointBoost,
		"scoring.complex_untested_boost": s.ComplexUntestedBoost,
	} {
		if b < 1 {
			return fieldErr(name, "must be at least 1.0")
		}
	}
	if s.HighDependencyCount < 0 || s.ComplexUntestedCyclo < 0 {
		return fieldErr("scoring boost thresholds", "must not be negative")
	}
	if s.UntestedCoverageCeiling < 0 || s.UntestedCoverageCeiling > 1 {
		return fieldErr("scoring.untested_coverage_ceiling", "must be in [0, 1]")
	}
	if s.ScoreCeiling <= 0 {
		return fieldErr("scoring.score_ceiling", "must be positive")
	}
	return nil
}

func validateTiers(cfg *Config) error {
	t := cfg.Tiers
	if t.T1MinScore <= 0 {
		return fieldErr("tiers.t1_min_score", "must be positive")
	}
	if t.T2ComplexityThreshold <= 0 || t.T2DependencyThreshold <= 0 ||
		t.T2CognitiveThreshold <= 0 || t.T2NestingThreshold <= 0 {
		return fieldErr("tiers.t2", "thresholds must be positive")
	}
	if t.T3ComplexityThreshold <= 0 {
		return fieldErr("tiers.t3_complexity_threshold", "must be positive")
	}
	return nil
}

func validateDetectors(cfg *Config) error {
	d := cfg.Detectors
	if d.RegistryMinImpls <= 0 {
		return fieldErr("detectors.registry_min_impls", "must be positive")
	}
	if d.RegistryMaxAvgImplSize <= 0 {
		return fieldErr("detectors.registry_max_avg_impl_size", "must be positive")
	}
	if d.RegistryMinCoverage < 0 || d.RegistryMinCoverage > 1 {
		return fieldErr("detectors.registry_min_coverage", "must be in [0, 1]")
	}
	if d.CoordinatorMinComparisons <= 0 || d.CoordinatorMinPushes <= 0 {
		return fieldErr("detectors.coordinator", "minimum counts must be positive")
	}
	if d.DispatcherMaxRatio <= 0 || d.DispatcherMinCyclomatic <= 0 || d.DispatcherMaxNesting < 0 {
		return fieldErr("detectors.dispatcher", "invalid dispatcher thresholds")
	}
	for name, c := range map[string]float64{
		"detectors.registry_confidence":    d.RegistryConfidence,
		"detectors.coordinator_confidence": d.CoordinatorConfidence,
		"detectors.dispatcher_confidence":  d.DispatcherConfidence,
		"detectors.exemption_confidence":   d.ExemptionConfidence,
	} {
		if c < 0 || c > 1 {
			return fieldErr(name, "must be in [0, 1]")
		}
	}
	if d.RegistrySmallImplSize <= 0 || d.RegistryMediumImplSize <= d.RegistrySmallImplSize {
		return fieldErr("detectors.registry impl sizes", "small must be positive and below medium")
	}
	return nil
}

func validateFilter(cfg *Config) error {
	f := cfg.Filter
	if f.MinScore < 0 {
		return fieldErr("filter.min_score", "must not be negative")
	}
	if f.TestFileMultiplier < 0 || f.TestFileMultiplier > 1 {
		return fieldErr("filter.test_file_multiplier", "must be in [0, 1]")
	}
	if f.GeneratedFileMultiplier < 0 || f.GeneratedFileMultiplier > 1 {
		return fieldErr("filter.generated_file_multiplier", "must be in [0, 1]")
	}
	for _, group := range [][]string{f.AdvisoryPatterns, f.TestFiles, f.GeneratedFiles} {
		for _, p := range group {
			if _, err := glob.Compile(p); err != nil {
				wrapped := errors.Wrap(err, errors.CodeConfiguration, "invalid glob pattern")
				return errors.AddContext(wrapped, errors.CtxField, p)
			}
		}
	}
	return nil
}

func validateRuntime(cfg *Config) error {
	if cfg.Runtime.Workers < 0 {
		return fieldErr("runtime.workers", "must not be negative")
	}
	return nil
}

func fieldErr(field, msg string) error {
	err := errors.New(errors.CodeConfiguration, msg).(*errors.DomainError)
	return err.WithContext(errors.CtxField, field)
}
