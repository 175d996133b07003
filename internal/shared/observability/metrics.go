package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "debtrank_stage_seconds",
		Help:    "Time spent in a pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "debtrank_run_seconds",
		Help:    "End-to-end duration of an analysis run.",
		Buckets: prometheus.DefBuckets,
	})

	UnitsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debtrank_units_analyzed_total",
		Help: "Total number of analysis units classified and scored.",
	})

	UnitsExcluded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debtrank_units_excluded_total",
		Help: "Total number of units excluded due to invariant violations.",
	})

	ItemsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "debtrank_items_filtered_total",
		Help: "Total number of classified items dropped by the filter stage.",
	}, []string{"reason"})

	DuplicateItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debtrank_duplicate_items_total",
		Help: "Total number of duplicate debt items collapsed by the ranker.",
	})
)
