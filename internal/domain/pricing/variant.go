package pricing

import "strings"

// Variant is the physical printing or finish of a card. It is never
// conflated with grading condition.
type Variant string

const (
	VariantNormal           Variant = "normal"
	VariantStandard         Variant = "standard"
	VariantHolofoil         Variant = "holofoil"
	VariantReverseHolofoil  Variant = "reverseHolofoil"
	VariantFirstEdition     Variant = "1stEdition"
	VariantFirstEditionHolo Variant = "1stEditionHolofoil"
	VariantUnlimited        Variant = "unlimited"
)

var knownVariants = map[string]Variant{
	"normal":             VariantNormal,
	"standard":           VariantStandard,
	"holofoil":           VariantHolofoil,
	"reverseholofoil":    VariantReverseHolofoil,
	"1stedition":         VariantFirstEdition,
	"1steditionholofoil": VariantFirstEditionHolo,
	"unlimited":          VariantUnlimited,
}

// ParseVariant maps a canonical variant name (case-insensitive) onto the
// vocabulary. Anything unrecognized becomes VariantNormal.
func ParseVariant(raw string) Variant {
	if v, ok := LookupVariant(raw); ok {
		return v
	}
	return VariantNormal
}

// LookupVariant is ParseVariant without the fallback.
func LookupVariant(raw string) (Variant, bool) {
	v, ok := knownVariants[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

// NormalizeVariantName interprets the free-form variant labels marketplaces use
// ("Reverse Holo", "1st Edition Holofoil", "unlimitedHolofoil", ...).
func NormalizeVariantName(label string) Variant {
	l := strings.ToLower(label)
	if l == "" {
		return VariantNormal
	}
	if v, ok := knownVariants[l]; ok && v != VariantStandard {
		return v
	}

	holo := strings.Contains(l, "holo")
	switch {
	case holo && strings.Contains(l, "reverse"):
		return VariantReverseHolofoil
	case holo && strings.Contains(l, "1st"):
		return VariantFirstEditionHolo
	case holo:
		return VariantHolofoil
	case strings.Contains(l, "1st"):
		return VariantFirstEdition
	case strings.Contains(l, "unlimited"):
		return VariantUnlimited
	default:
		return VariantNormal
	}
}

// DetectVariantFromProductName infers the printing from a product title such
// as "Charizard [Reverse Holo] #4".
func DetectVariantFromProductName(name string) Variant {
	l := strings.ToLower(name)
	switch {
	case strings.Contains(l, "holo") && strings.Contains(l, "reverse"):
		return VariantReverseHolofoil
	case strings.Contains(l, "holo"):
		return VariantHolofoil
	case strings.Contains(l, "1st edition"):
		return VariantFirstEdition
	default:
		return VariantNormal
	}
}

func (v Variant) String() string {
	return string(v)
}
