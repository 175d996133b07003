package rank

import (
	"testing"
)

func rankedItem(file, fn string, line int, final float64) *RankedItem {
	item := scoredItem(file, fn, line, final, hotspotDebt(12))
	return &RankedItem{Item: item, Tier: TierT2ComplexUntested, FinalScore: final}
}

func TestRankDeduplicates(t *testing.T) {
	items := []*RankedItem{
		rankedItem("core.rs", "process", 128, 50.0),
		rankedItem("core.rs", "process", 128, 45.0),
		rankedItem("other.rs", "helper", 10, 20.0),
	}
	ranked, dropped := Rank(items)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(ranked) != 2 {
		t.Fatalf("ranked %d items, want 2", len(ranked))
	}
	if ranked[0].FinalScore != 50.0 {
		t.Errorf("kept score = %v, want the higher duplicate", ranked[0].FinalScore)
	}
}

// The kept duplicate is the highest-scoring one regardless of arrival order.
func TestRankDeduplicateKeepsHighestEitherOrder(t *testing.T) {
	items := []*RankedItem{
		rankedItem("core.rs", "process", 128, 45.0),
		rankedItem("core.rs", "process", 128, 50.0),
	}
	ranked, dropped := Rank(items)
	if dropped != 1 || len(ranked) != 1 {
		t.Fatalf("dropped %d, kept %d", dropped, len(ranked))
	}
	if ranked[0].FinalScore != 50.0 {
		t.Errorf("kept score = %v, want 50.0", ranked[0].FinalScore)
	}
}

func TestRankOrderingAndRanks(t *testing.T) {
	items := []*RankedItem{
		rankedItem("a.rs", "low", 1, 4.0),
		rankedItem("b.rs", "high", 2, 60.0),
		rankedItem("c.rs", "mid", 3, 25.0),
	}
	ranked, _ := Rank(items)

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].FinalScore < ranked[i].FinalScore {
			t.Fatalf("rank inversion at %d: %v < %v", i, ranked[i-1].FinalScore, ranked[i].FinalScore)
		}
	}
	for i, item := range ranked {
		if item.Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, item.Rank, i+1)
		}
	}
	if ranked[0].Unit.Function != "high" || ranked[2].Unit.Function != "low" {
		t.Error("sort order wrong")
	}
}

// Equal scores keep their input order so repeated runs on identical input
// produce identical output.
func TestRankStableTies(t *testing.T) {
	items := []*RankedItem{
		rankedItem("a.rs", "first", 1, 10.0),
		rankedItem("b.rs", "second", 2, 10.0),
		rankedItem("c.rs", "third", 3, 10.0),
	}
	ranked, _ := Rank(items)

	want := []string{"first", "second", "third"}
	for i, fn := range want {
		if ranked[i].Unit.Function != fn {
			t.Errorf("position %d = %q, want %q", i, ranked[i].Unit.Function, fn)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	ranked, dropped := Rank(nil)
	if len(ranked) != 0 || dropped != 0 {
		t.Errorf("Rank(nil) = %d items, %d dropped", len(ranked), dropped)
	}
}
