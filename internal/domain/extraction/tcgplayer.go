package extraction

import (
	"sort"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// TCGPlayerParser reads {variantKey: {market, low, mid, high, directLow}}
// payloads quoted in USD.
type TCGPlayerParser struct {
	fields []FieldSpec
}

func NewTCGPlayerParser() *TCGPlayerParser {
	return &TCGPlayerParser{
		fields: []FieldSpec{
			{Key: "market", PriceType: pricing.PriceTypeMarket, Condition: pricing.ConditionNearMint},
			{Key: "low", PriceType: pricing.PriceTypeLow, Condition: pricing.ConditionNearMint},
			{Key: "mid", PriceType: pricing.PriceTypeMid, Condition: pricing.ConditionNearMint},
			{Key: "high", PriceType: pricing.PriceTypeHigh, Condition: pricing.ConditionNearMint},
			{Key: "directLow", PriceType: pricing.PriceTypeDirectLow, Condition: pricing.ConditionNearMint},
		},
	}
}

func (p *TCGPlayerParser) Source() pricing.Source {
	return pricing.SourceTCGPlayer
}

func (p *TCGPlayerParser) Parse(payload map[string]interface{}, emit EmitFunc) error {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, variantKey := range keys {
		prices, ok := payload[variantKey].(map[string]interface{})
		if !ok {
			continue
		}
		variant := pricing.NormalizeVariantName(variantKey)

		for _, field := range p.fields {
			amount, ok := pricing.ToAmount(prices[field.Key])
			if !ok || amount <= 0 {
				continue
			}
			emit(Quote{
				Variant:   variant,
				PriceType: field.PriceType,
				Condition: field.Condition,
				Amount:    amount,
				Currency:  pricing.CurrencyUSD,
			})
		}
	}
	return nil
}
