package extraction

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

var centsPerDollar = decimal.NewFromInt(100)

// PriceChartingParser reads PriceCharting product payloads. Prices are
// integer cents in USD; the variant is inferred from the product name.
type PriceChartingParser struct {
	fields []FieldSpec
}

func NewPriceChartingParser() *PriceChartingParser {
	return &PriceChartingParser{
		fields: []FieldSpec{
			{Key: "loose-price", PriceType: pricing.PriceTypeLoose, Condition: pricing.ConditionNearMint},
			{Key: "cib-price", PriceType: pricing.PriceTypeCIB, Condition: pricing.ConditionCompleteInBox},
			{Key: "new-price", PriceType: pricing.PriceTypeNew, Condition: pricing.ConditionSealed},
		},
	}
}

func (p *PriceChartingParser) Source() pricing.Source {
	return pricing.SourcePriceCharting
}

func (p *PriceChartingParser) Parse(payload map[string]interface{}, emit EmitFunc) error {
	if status, _ := payload["status"].(string); strings.EqualFold(status, "error") {
		message, _ := payload["error-message"].(string)
		return fmt.Errorf("%w: %s", ErrSourceReportedError, message)
	}

	productName, _ := payload["product-name"].(string)
	variant := pricing.DetectVariantFromProductName(productName)

	for _, field := range p.fields {
		cents, ok := pricing.ToAmount(payload[field.Key])
		if !ok || cents <= 0 {
			continue
		}
		emit(Quote{
			Variant:   variant,
			PriceType: field.PriceType,
			Condition: field.Condition,
			Amount:    decimal.NewFromFloat(cents).Div(centsPerDollar).InexactFloat64(),
			Currency:  pricing.CurrencyUSD,
		})
	}
	return nil
}
