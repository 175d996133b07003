package config

// Default returns the built-in configuration. Every value can be overridden
// from TOML; the defaults themselves always validate.
func Default() *Config {
	return &Config{
		Version: 1,
		Thresholds: Thresholds{
			Complexity:              10,
			TestingGapCoverage:      0.5,
			TestingGapMinComplexity: 5,
			GodObjectMaxMethods:     15,
			GodObjectMaxFields:      10,
			GodModuleMaxFunctions:   50,
			GodModuleMaxLines:       1000,
		},
		Scoring: Scoring{
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
		},
		Tiers: Tiers{
			T1MinScore:            10.0,
			T2ComplexityThreshold: 8,
			T2DependencyThreshold: 10,
			T2CognitiveThreshold:  12,
			T2NestingThreshold:    3,
			T3ComplexityThreshold: 5,
		},
		Detectors: Detectors{
			RegistryMinImpls:       20,
			RegistryMaxAvgImplSize: 15,
			RegistryMinCoverage:    0.80,
			RegistryConfidence:     0.6,

			CoordinatorMinComparisons: 2,
			CoordinatorMinPushes:      3,
			CoordinatorConfidence:     0.7,

			DispatcherMaxRatio:      0.75,
			DispatcherMinCyclomatic: 8,
			DispatcherMaxNesting:    2,
			DispatcherConfidence:    0.6,

			ExemptionConfidence: 0.7,

			RegistrySmallImplSize:  10,
			RegistryMediumImplSize: 15,
		},
		Filter: Filter{
			MinScore:         3.0,
			ShowT4:           false,
			AdvisoryPatterns: []string{"*no action needed*"},
			TestFiles:        []string{"**_test.go", "**/tests/**", "**_test.rs"},
			GeneratedFiles:   []string{"**.pb.go", "**_generated*", "**.gen.go"},

			TestFileMultiplier:      0.3,
			GeneratedFileMultiplier: 0.2,
		},
		Runtime: Runtime{Workers: 0},
	}
}
