package detect

import "strings"

// TraitCategory groups known traits by why their methods exist.
type TraitCategory string

const (
	CategoryVisitor       TraitCategory = "visitor"
	CategorySerialization TraitCategory = "serialization"
	CategoryIterator      TraitCategory = "iterator"
	CategoryAsync         TraitCategory = "async"
	CategoryStandard      TraitCategory = "standard"
	CategoryComparison    TraitCategory = "comparison"
	CategoryError         TraitCategory = "error"
	CategoryCustom        TraitCategory = "custom"
)

// Weight returns how much a method mandated by this category counts toward
// extractable-method sizing. Mandated methods exist because the trait
// requires them, not because the author chose to pile responsibilities onto
// the type, so they count less. Self-chosen methods always count 1.0.
func (c TraitCategory) Weight() float64 {
	switch c {
	case CategoryVisitor, CategorySerialization:
		return 0.1
	case CategoryStandard, CategoryComparison:
		return 0.2
	case CategoryIterator, CategoryAsync, CategoryError:
		return 0.3
	default:
		return 0.4
	}
}

// TraitTable is the immutable known-trait registry. Built once and shared by
// reference; never global mutable state.
type TraitTable struct {
	categories map[string]TraitCategory
}

// SelfChosenWeight is the weight of a method not mandated by any trait.
const SelfChosenWeight = 1.0

// NewTraitTable builds the default known-trait registry.
func NewTraitTable() *TraitTable {
	entries := map[string]TraitCategory{
		// Visitor-style traits: many small methods required by design.
		"Visit":       CategoryVisitor,
		"Visitor":     CategoryVisitor,
		"VisitMut":    CategoryVisitor,
		"Fold":        CategoryVisitor,
		"Walker":      CategoryVisitor,
		// Serialization: usually derived or mechanical.
		"Serialize":    CategorySerialization,
		"Deserialize":  CategorySerialization,
		"Marshaler":    CategorySerialization,
		"Unmarshaler":  CategorySerialization,
		"Encoder":      CategorySerialization,
		"Decoder":      CategorySerialization,
		// Iterator/stream traits.
		"Iterator":     CategoryIterator,
		"IntoIterator": CategoryIterator,
		"Stream":       CategoryIterator,
		// Async runtime traits.
		"Future":  CategoryAsync,
		"AsyncFn": CategoryAsync,
		"Poll":    CategoryAsync,
		// Standard library boilerplate.
		"Clone":    CategoryStandard,
		"Default":  CategoryStandard,
		"Debug":    CategoryStandard,
		"Display":  CategoryStandard,
		"Drop":     CategoryStandard,
		"From":     CategoryStandard,
		"Into":     CategoryStandard,
		"TryFrom":  CategoryStandard,
		"AsRef":    CategoryStandard,
		"Deref":    CategoryStandard,
		"Stringer": CategoryStandard,
		// Comparison and ordering.
		"PartialEq":  CategoryComparison,
		"Eq":         CategoryComparison,
		"PartialOrd": CategoryComparison,
		"Ord":        CategoryComparison,
		"Hash":       CategoryComparison,
		// Error handling.
		"Error": CategoryError,
	}
	return &TraitTable{categories: entries}
}

// Categorize maps a trait name to its category. Unknown traits are Custom.
func (t *TraitTable) Categorize(trait string) TraitCategory {
	trait = strings.TrimSpace(trait)
	if trait == "" {
		return CategoryCustom
	}
	if c, ok := t.categories[trait]; ok {
		return c
	}
	// Generic parameters do not change the trait identity.
	if i := strings.IndexByte(trait, '<'); i > 0 {
		if c, ok := t.categories[trait[:i]]; ok {
			return c
		}
	}
	return CategoryCustom
}

// MethodWeight returns the extractable-method weight for a method on the
// given trait. Empty trait means self-chosen and gets full weight.
func (t *TraitTable) MethodWeight(trait string) float64 {
	if strings.TrimSpace(trait) == "" {
		return SelfChosenWeight
	}
	return t.Categorize(trait).Weight()
}
