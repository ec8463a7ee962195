package pricing

import "strings"

// PriceType is the statistical nature of a quoted number, independent of variant.
type PriceType string

const (
	PriceTypeMarket    PriceType = "market"
	PriceTypeLow       PriceType = "low"
	PriceTypeMid       PriceType = "mid"
	PriceTypeHigh      PriceType = "high"
	PriceTypeDirectLow PriceType = "directLow"
	PriceTypeTrend     PriceType = "trend"
	PriceTypeAverage   PriceType = "average"
	PriceTypeLoose     PriceType = "loose"
	PriceTypeCIB       PriceType = "cib"
	PriceTypeNew       PriceType = "new"
	// PriceTypeUnknown is the fallback for labels outside the vocabulary.
	// It is never part of the reliable set, so such quotes are never paired.
	PriceTypeUnknown PriceType = "unknown"
)

var knownPriceTypes = map[string]PriceType{
	"market":      PriceTypeMarket,
	"low":         PriceTypeLow,
	"mid":         PriceTypeMid,
	"high":        PriceTypeHigh,
	"directlow":   PriceTypeDirectLow,
	"trend":       PriceTypeTrend,
	"average":     PriceTypeAverage,
	"loose":       PriceTypeLoose,
	"loose-price": PriceTypeLoose,
	"cib":         PriceTypeCIB,
	"cib-price":   PriceTypeCIB,
	"new":         PriceTypeNew,
	"new-price":   PriceTypeNew,
}

// ParsePriceType maps a label onto the vocabulary, falling back to PriceTypeUnknown.
func ParsePriceType(raw string) PriceType {
	if pt, ok := knownPriceTypes[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return pt
	}
	return PriceTypeUnknown
}

// ParsePriceTypes parses a list of labels, dropping duplicates.
func ParsePriceTypes(raw []string) []PriceType {
	seen := make(map[PriceType]bool, len(raw))
	types := make([]PriceType, 0, len(raw))
	for _, r := range raw {
		pt := ParsePriceType(r)
		if seen[pt] {
			continue
		}
		seen[pt] = true
		types = append(types, pt)
	}
	return types
}

func (p PriceType) String() string {
	return string(p)
}

// Condition is a normalized grading condition label. Display only.
type Condition string

const (
	ConditionNearMint      Condition = "Near Mint"
	ConditionCompleteInBox Condition = "Complete In Box"
	ConditionSealed        Condition = "Sealed"
)

func (c Condition) String() string {
	return string(c)
}
