package extraction

import (
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// Quote is one raw price read from a marketplace payload, still in the
// marketplace's currency.
type Quote struct {
	Variant   pricing.Variant
	PriceType pricing.PriceType
	Condition pricing.Condition
	Amount    float64
	Currency  pricing.Currency
}

// EmitFunc receives quotes as a parser walks a payload.
type EmitFunc func(Quote)

// SourceParser knows the payload layout of one marketplace. Parsers only read
// the payload; conversion, fees and point construction happen in
// PriceExtractor.
type SourceParser interface {
	Source() pricing.Source
	// Parse emits every usable quote. Missing or malformed fields are skipped.
	// An error means the payload as a whole must be ignored.
	Parse(payload map[string]interface{}, emit EmitFunc) error
}

// FieldSpec maps one payload key onto a price type.
type FieldSpec struct {
	Key       string
	PriceType pricing.PriceType
	Condition pricing.Condition
	Variant   pricing.Variant
}
