package rank

import (
	"log/slog"
	"sort"
)

// Rank deduplicates, orders and numbers the included items.
//
// Duplicate (file, line, qualified name) keys are a defect signal from the
// upstream extractor: the highest-scoring instance survives and every drop
// is logged, never silently accepted. Ordering is strictly final score
// descending; ties keep their original order. Tier plays no part in the
// comparator. Ranks are sequential from 1 with no gaps.
//
// The number of dropped duplicates is returned so the caller can keep the
// filter metrics conservation invariant intact.
func Rank(items []*RankedItem) ([]*RankedItem, int) {
	best := make(map[string]*RankedItem, len(items))
	order := make([]string, 0, len(items))
	dropped := 0

	for _, item := range items {
		key := item.Unit.Key()
		existing, ok := best[key]
		if !ok {
			best[key] = item
			order = append(order, key)
			continue
		}
		dropped++
		slog.Warn("duplicate debt item, keeping highest score",
			"key", key,
			"kept_score", maxScore(existing, item),
			"dropped_score", minScore(existing, item))
		if item.FinalScore > existing.FinalScore {
			best[key] = item
		}
	}

	deduped := make([]*RankedItem, 0, len(best))
	for _, key := range order {
		deduped = append(deduped, best[key])
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].FinalScore > deduped[j].FinalScore
	})

	for i, item := range deduped {
		item.Rank = i + 1
	}
	return deduped, dropped
}

func maxScore(a, b *RankedItem) float64 {
	if a.FinalScore >= b.FinalScore {
		return a.FinalScore
	}
	return b.FinalScore
}

func minScore(a, b *RankedItem) float64 {
	if a.FinalScore < b.FinalScore {
		return a.FinalScore
	}
	return b.FinalScore
}
