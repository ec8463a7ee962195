package extraction

import (
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// CardmarketParser reads the flat Cardmarket price guide, quoted in EUR.
// When several keys map to the same variant and price type the first one
// present wins.
type CardmarketParser struct {
	fields []FieldSpec
}

func NewCardmarketParser() *CardmarketParser {
	return &CardmarketParser{
		fields: []FieldSpec{
			{Key: "trendPrice", PriceType: pricing.PriceTypeTrend, Variant: pricing.VariantStandard},
			{Key: "averagePrice", PriceType: pricing.PriceTypeAverage, Variant: pricing.VariantStandard},
			{Key: "averageSellPrice", PriceType: pricing.PriceTypeAverage, Variant: pricing.VariantStandard},
			{Key: "lowPrice", PriceType: pricing.PriceTypeLow, Variant: pricing.VariantStandard},
			{Key: "reverseHoloTrend", PriceType: pricing.PriceTypeTrend, Variant: pricing.VariantReverseHolofoil},
			{Key: "reverseHoloAvg", PriceType: pricing.PriceTypeAverage, Variant: pricing.VariantReverseHolofoil},
			{Key: "reverseHoloSell", PriceType: pricing.PriceTypeAverage, Variant: pricing.VariantReverseHolofoil},
			{Key: "reverseHoloLow", PriceType: pricing.PriceTypeLow, Variant: pricing.VariantReverseHolofoil},
		},
	}
}

func (p *CardmarketParser) Source() pricing.Source {
	return pricing.SourceCardmarket
}

func (p *CardmarketParser) Parse(payload map[string]interface{}, emit EmitFunc) error {
	seen := make(map[string]bool, len(p.fields))
	for _, field := range p.fields {
		amount, ok := pricing.ToAmount(payload[field.Key])
		if !ok || amount <= 0 {
			continue
		}
		identity := string(field.Variant) + "/" + string(field.PriceType)
		if seen[identity] {
			continue
		}
		seen[identity] = true

		emit(Quote{
			Variant:   field.Variant,
			PriceType: field.PriceType,
			Condition: pricing.ConditionNearMint,
			Amount:    amount,
			Currency:  pricing.CurrencyEUR,
		})
	}
	return nil
}
