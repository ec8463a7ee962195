package pricing

import "strings"

// ComparabilitySettings declares which distinct variants may be traded against
// each other. Each class is a set of mutually comparable variants.
type ComparabilitySettings struct {
	EquivalenceClasses [][]Variant
}

// DefaultComparabilitySettings treats TCGPlayer "normal" and Cardmarket
// "standard" as the same printing.
func DefaultComparabilitySettings() ComparabilitySettings {
	return ComparabilitySettings{
		EquivalenceClasses: [][]Variant{{VariantNormal, VariantStandard}},
	}
}

// VariantComparability answers whether two variants describe the same
// physical product. The relation is symmetric and reflexive.
type VariantComparability struct {
	pairs map[[2]string]bool
}

func NewVariantComparability(settings ComparabilitySettings) *VariantComparability {
	pairs := make(map[[2]string]bool)
	for _, class := range settings.EquivalenceClasses {
		for _, a := range class {
			for _, b := range class {
				pairs[[2]string{foldVariant(a), foldVariant(b)}] = true
			}
		}
	}
	return &VariantComparability{pairs: pairs}
}

// Comparable reports whether a and b may be paired.
func (c *VariantComparability) Comparable(a, b Variant) bool {
	fa, fb := foldVariant(a), foldVariant(b)
	if fa == fb {
		return true
	}
	return c.pairs[[2]string{fa, fb}]
}

func foldVariant(v Variant) string {
	return strings.ToLower(strings.TrimSpace(string(v)))
}
