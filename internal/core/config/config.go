package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"debtrank/internal/core/errors"
)

// Config is the complete pipeline configuration. Every threshold, exponent
// and weight used by a stage is independently overridable; invalid values
// fail fast at pipeline construction.
type Config struct {
	Version    int        `toml:"version"`
	Thresholds Thresholds `toml:"thresholds"`
	Scoring    Scoring    `toml:"scoring"`
	Tiers      Tiers      `toml:"tiers"`
	Detectors  Detectors  `toml:"detectors"`
	Filter     Filter     `toml:"filter"`
	Runtime    Runtime    `toml:"runtime"`
}

// Thresholds gate the debt classifications.
type Thresholds struct {
	Complexity              int     `toml:"complexity"`
	TestingGapCoverage      float64 `toml:"testing_gap_coverage"`
	TestingGapMinComplexity int     `toml:"testing_gap_min_complexity"`
	GodObjectMaxMethods     int     `toml:"god_object_max_methods"`
	GodObjectMaxFields      int     `toml:"god_object_max_fields"`
	GodModuleMaxFunctions   int     `toml:"god_module_max_functions"`
	GodModuleMaxLines       int     `toml:"god_module_max_lines"`
}

// Scoring controls the three scorer stages.
type Scoring struct {
	ComplexityWeight float64 `toml:"complexity_weight"`
	CoverageWeight   float64 `toml:"coverage_weight"`
	DependencyWeight float64 `toml:"dependency_weight"`

	GodObjectExponent          float64 `toml:"god_object_exponent"`
	HighComplexityExponent     float64 `toml:"high_complexity_exponent"`
	ModerateComplexityExponent float64 `toml:"moderate_complexity_exponent"`
	TestingGapExponent         float64 `toml:"testing_gap_exponent"`

	HighDependencyBoost  float64 `toml:"high_dependency_boost"`
	EntryPointBoost      float64 `toml:"entry_point_boost"`
	ComplexUntestedBoost float64 `toml:"complex_untested_boost"`

	HighDependencyCount     int     `toml:"high_dependency_count"`
	ComplexUntestedCyclo    int     `toml:"complex_untested_cyclomatic"`
	UntestedCoverageCeiling float64 `toml:"untested_coverage_ceiling"`

	ScoreCeiling float64 `toml:"score_ceiling"`
}

// Tiers holds the tier boundary thresholds.
type Tiers struct {
	T1MinScore            float64 `toml:"t1_min_score"`
	T2ComplexityThreshold int     `toml:"t2_complexity_threshold"`
	T2DependencyThreshold int     `toml:"t2_dependency_threshold"`
	T2CognitiveThreshold  int     `toml:"t2_cognitive_threshold"`
	T2NestingThreshold    int     `toml:"t2_nesting_threshold"`
	T3ComplexityThreshold int     `toml:"t3_complexity_threshold"`
}

// Detectors holds the pattern detector thresholds and confidence cutoffs.
type Detectors struct {
	RegistryMinImpls       int     `toml:"registry_min_impls"`
	RegistryMaxAvgImplSize float64 `toml:"registry_max_avg_impl_size"`
	RegistryMinCoverage    float64 `toml:"registry_min_coverage"`
	RegistryConfidence     float64 `toml:"registry_confidence"`

	CoordinatorMinComparisons int     `toml:"coordinator_min_comparisons"`
	CoordinatorMinPushes      int     `toml:"coordinator_min_pushes"`
	CoordinatorConfidence     float64 `toml:"coordinator_confidence"`

	DispatcherMaxRatio      float64 `toml:"dispatcher_max_ratio"`
	DispatcherMinCyclomatic int     `toml:"dispatcher_min_cyclomatic"`
	DispatcherMaxNesting    int     `toml:"dispatcher_max_nesting"`
	DispatcherConfidence    float64 `toml:"dispatcher_confidence"`

	// ExemptionConfidence is the floor for pattern exemptions in the
	// classifier. Signals below it are recorded but never exempt.
	ExemptionConfidence float64 `toml:"exemption_confidence"`

	RegistrySmallImplSize  float64 `toml:"registry_small_impl_size"`
	RegistryMediumImplSize float64 `toml:"registry_medium_impl_size"`
}

// Filter configures the tier/threshold/advisory filter stage.
type Filter struct {
	MinScore float64 `toml:"min_score"`
	ShowT4   bool    `toml:"show_t4"`

	AdvisoryPatterns []string `toml:"advisory_patterns"`

	TestFiles      []string `toml:"test_files"`
	GeneratedFiles []string `toml:"generated_files"`

	TestFileMultiplier      float64 `toml:"test_file_multiplier"`
	GeneratedFileMultiplier float64 `toml:"generated_file_multiplier"`
}

// Runtime configures the worker pool.
type Runtime struct {
	Workers int `toml:"workers"` // 0 = GOMAXPROCS
}

// Load reads a TOML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfiguration, "config file not readable")
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfiguration, "config file not parseable")
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
