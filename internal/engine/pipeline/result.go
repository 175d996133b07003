package pipeline

import (
	"time"

	"debtrank/internal/engine/analysis"
	"debtrank/internal/engine/rank"
)

// Exclusion records a unit that could not be classified or scored. The run
// continues without it; dropping one bad unit beats aborting the analysis.
type Exclusion struct {
	Unit *analysis.Unit
	Err  error
}

// Result is the outcome of one analysis run. Items are deduplicated, sorted
// by final score descending and ranked from 1. Metrics satisfy the
// conservation invariant over every item that reached the filter stage.
type Result struct {
	RunID      string
	Items      []*rank.RankedItem
	Metrics    rank.FilterMetrics
	Exclusions []Exclusion
	Elapsed    time.Duration
}
