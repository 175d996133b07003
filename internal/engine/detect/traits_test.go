package detect

import (
	"math"
	"testing"

	"debtrank/internal/engine/analysis"
)

func TestTraitTableCategorize(t *testing.T) {
	table := NewTraitTable()
	tests := []struct {
		trait string
		want  TraitCategory
	}{
		{"Visit", CategoryVisitor},
		{"Serialize", CategorySerialization},
		{"Iterator", CategoryIterator},
		{"Future", CategoryAsync},
		{"Clone", CategoryStandard},
		{"PartialEq", CategoryComparison},
		{"Error", CategoryError},
		{"From<String>", CategoryStandard},
		{"MyDomainTrait", CategoryCustom},
		{"", CategoryCustom},
	}
	for _, tt := range tests {
		if got := table.Categorize(tt.trait); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.trait, got, tt.want)
		}
	}
}

func TestMethodWeight(t *testing.T) {
	table := NewTraitTable()
	tests := []struct {
		trait string
		want  float64
	}{
		{"", 1.0}, // self-chosen
		{"Visit", 0.1},
		{"Serialize", 0.1},
		{"Clone", 0.2},
		{"Eq", 0.2},
		{"Iterator", 0.3},
		{"Error", 0.3},
		{"MyDomainTrait", 0.4},
	}
	for _, tt := range tests {
		if got := table.MethodWeight(tt.trait); got != tt.want {
			t.Errorf("MethodWeight(%q) = %v, want %v", tt.trait, got, tt.want)
		}
	}
}

func TestWeightedMethods(t *testing.T) {
	inv := &analysis.FileInventory{
		Methods: []analysis.MethodInfo{
			{Name: "visit_expr", OwnerStruct: "Checker", Trait: "Visit"},
			{Name: "visit_stmt", OwnerStruct: "Checker", Trait: "Visit"},
			{Name: "clone", OwnerStruct: "Checker", Trait: "Clone"},
			{Name: "check", OwnerStruct: "Checker"},
			{Name: "report", OwnerStruct: "Checker"},
			{Name: "unrelated", OwnerStruct: "Other"},
		},
	}

	weighted, selfChosen, total := WeightedMethods(inv, "Checker", NewTraitTable())
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if selfChosen != 2 {
		t.Errorf("selfChosen = %d, want 2", selfChosen)
	}
	// 2*0.1 (Visit) + 0.2 (Clone) + 2*1.0 (self-chosen)
	if math.Abs(weighted-2.4) > 1e-9 {
		t.Errorf("weighted = %v, want 2.4", weighted)
	}
}

func TestTraitMandatedDetector(t *testing.T) {
	d := &TraitMandatedDetector{}
	ctx := testContext()

	u := &analysis.Unit{
		Kind:     analysis.KindFile,
		Location: analysis.Location{File: "checker.rs"},
		Inventory: &analysis.FileInventory{
			Methods: []analysis.MethodInfo{
				{Name: "visit_expr", OwnerStruct: "Checker", Trait: "Visit"},
				{Name: "visit_stmt", OwnerStruct: "Checker", Trait: "Visit"},
				{Name: "visit_item", OwnerStruct: "Checker", Trait: "Visit"},
				{Name: "check", OwnerStruct: "Checker"},
			},
		},
	}
	sig := d.Detect(u, ctx)
	if sig == nil {
		t.Fatal("expected signal")
	}
	if sig.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", sig.Confidence)
	}
	if got := sig.Count("trait_mandated"); got != 3 {
		t.Errorf("trait_mandated = %v, want 3", got)
	}

	// No trait impls at all: adjustment input absent, not zero.
	u.Inventory.Methods = []analysis.MethodInfo{{Name: "check", OwnerStruct: "Checker"}}
	if sig := d.Detect(u, ctx); sig != nil {
		t.Fatal("signal fired with no trait-mandated methods")
	}
}
