package rank

import (
	"strings"

	"github.com/gobwas/glob"

	"debtrank/internal/engine/score"
	"debtrank/internal/shared/util"
)

// FilterMetrics records every filtering decision. Always populated whether
// or not anything displays it; silent filtering was a documented defect.
//
// Invariant: Total == Included + TotalFiltered().
type FilterMetrics struct {
	Total    int
	Included int

	FilteredT4         int
	FilteredBelowScore int
	FilteredAdvisory   int
	FilteredInvalid    int
	FilteredDuplicate  int

	MinScore float64
	ShowT4   bool
}

// TotalFiltered sums every exclusion reason.
func (m *FilterMetrics) TotalFiltered() int {
	return m.FilteredT4 + m.FilteredBelowScore + m.FilteredAdvisory +
		m.FilteredInvalid + m.FilteredDuplicate
}

// Consistent reports whether the conservation invariant holds.
func (m *FilterMetrics) Consistent() bool {
	return m.Total == m.Included+m.TotalFiltered()
}

// InclusionRate returns the included percentage, zero when empty.
func (m *FilterMetrics) InclusionRate() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Included) / float64(m.Total) * 100
}

// FilterConfig carries the compiled filter settings. Globs are compiled at
// pipeline construction so invalid patterns fail fast.
type FilterConfig struct {
	MinScore float64
	ShowT4   bool

	// Advisory patterns matched case-insensitively against recommendation
	// text. Substring matching on free text is fragile to wording changes;
	// known limitation, kept configurable for that reason.
	AdvisoryPatterns []glob.Glob

	TestFileGlobs      []glob.Glob
	GeneratedFileGlobs []glob.Glob

	TestFileMultiplier      float64
	GeneratedFileMultiplier float64

	Tiers TierConfig
}

// RankedItem is a scored item after tiering and ranking. FinalScore here is
// the post-context-adjustment value the sort uses; the pre-adjustment score
// stays on the embedded item.
type RankedItem struct {
	*score.Item

	Tier            Tier
	Rank            int
	FinalScore      float64
	ContextAdjusted bool
}

// FilterResult pairs the surviving items with the audit metrics.
type FilterResult struct {
	Included []*RankedItem
	Metrics  FilterMetrics
}

// Filter applies the staged filters in order: invalid-score exclusion, tier
// assignment, T4 drop, context adjustment, score threshold, advisory drop.
// Context adjustment runs before the score threshold and applies the same
// way to file-level and function-level items.
func Filter(items []*score.Item, cfg *FilterConfig) FilterResult {
	metrics := FilterMetrics{
		Total:    len(items),
		MinScore: cfg.MinScore,
		ShowT4:   cfg.ShowT4,
	}

	included := make([]*RankedItem, 0, len(items))
	for _, item := range items {
		if item.Invalid {
			metrics.FilteredInvalid++
			continue
		}

		tier := TierFor(item, &cfg.Tiers)
		if tier == TierT4Maintenance && !cfg.ShowT4 {
			metrics.FilteredT4++
			continue
		}

		ranked := &RankedItem{Item: item, Tier: tier, FinalScore: item.FinalScore}
		applyContextAdjustment(ranked, cfg)

		if ranked.FinalScore < cfg.MinScore {
			metrics.FilteredBelowScore++
			continue
		}

		if matchesAdvisory(item.Recommendation, cfg.AdvisoryPatterns) {
			metrics.FilteredAdvisory++
			continue
		}

		included = append(included, ranked)
	}

	metrics.Included = len(included)
	return FilterResult{Included: included, Metrics: metrics}
}

// applyContextAdjustment dampens scores for test and generated files. The
// unit's structural flags and the configured globs both count.
func applyContextAdjustment(item *RankedItem, cfg *FilterConfig) {
	path := util.NormalizePatternPath(item.Unit.File)
	switch {
	case item.Unit.IsTest || matchesAny(path, cfg.TestFileGlobs):
		item.FinalScore *= cfg.TestFileMultiplier
		item.ContextAdjusted = true
	case item.Unit.IsGenerated || matchesAny(path, cfg.GeneratedFileGlobs):
		item.FinalScore *= cfg.GeneratedFileMultiplier
		item.ContextAdjusted = true
	}
}

func matchesAny(path string, globs []glob.Glob) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func matchesAdvisory(recommendation string, patterns []glob.Glob) bool {
	lower := strings.ToLower(recommendation)
	for _, g := range patterns {
		if g.Match(lower) {
			return true
		}
	}
	return false
}
