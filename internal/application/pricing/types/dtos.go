package types

import (
	"time"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// PricePointDTO is a data transfer object for normalized price points
type PricePointDTO struct {
	Source           string  `json:"source"`
	Variant          string  `json:"variant"`
	PriceType        string  `json:"price_type"`
	Condition        string  `json:"condition"`
	Price            float64 `json:"price"`
	OriginalPrice    float64 `json:"original_price,omitempty"`
	OriginalCurrency string  `json:"original_currency,omitempty"`
	FeeRate          float64 `json:"fee_rate"`
	ShippingCost     float64 `json:"shipping_cost"`
	BuyCost          float64 `json:"buy_cost"`
	SellNet          float64 `json:"sell_net"`
}

// OpportunityDTO is a data transfer object for arbitrage opportunities
type OpportunityDTO struct {
	BuySource     string  `json:"buy_source"`
	BuyVariant    string  `json:"buy_variant"`
	BuyPriceType  string  `json:"buy_price_type"`
	BuyPrice      float64 `json:"buy_price"`
	BuyCost       float64 `json:"buy_cost"`
	SellSource    string  `json:"sell_source"`
	SellVariant   string  `json:"sell_variant"`
	SellPriceType string  `json:"sell_price_type"`
	SellPrice     float64 `json:"sell_price"`
	SellNet       float64 `json:"sell_net"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profit_margin"`
	VariantInfo   string  `json:"variant_info"`
}

// ScanRecordDTO is a data transfer object for recorded scan summaries
type ScanRecordDTO struct {
	ScanID           string    `json:"scan_id"`
	CardName         string    `json:"card_name"`
	SetName          string    `json:"set_name,omitempty"`
	BaseCurrency     string    `json:"base_currency"`
	PricePointCount  int       `json:"price_point_count"`
	OpportunityCount int       `json:"opportunity_count"`
	BestBuy          string    `json:"best_buy,omitempty"`
	BestSell         string    `json:"best_sell,omitempty"`
	BestProfit       float64   `json:"best_profit"`
	BestMargin       float64   `json:"best_margin"`
	ScannedAt        time.Time `json:"scanned_at"`
}

// NewPricePointDTO converts a price point, rounding amounts to cents.
func NewPricePointDTO(p *pricing.PricePoint) *PricePointDTO {
	return &PricePointDTO{
		Source:           string(p.Source()),
		Variant:          string(p.Variant()),
		PriceType:        string(p.PriceType()),
		Condition:        string(p.Condition()),
		Price:            pricing.RoundCents(p.Price()),
		OriginalPrice:    pricing.RoundCents(p.OriginalPrice()),
		OriginalCurrency: string(p.OriginalCurrency()),
		FeeRate:          p.FeeRate(),
		ShippingCost:     pricing.RoundCents(p.ShippingCost()),
		BuyCost:          pricing.RoundCents(p.BuyCost()),
		SellNet:          pricing.RoundCents(p.SellNet()),
	}
}

// NewPricePointDTOs converts a list of price points.
func NewPricePointDTOs(points []*pricing.PricePoint) []*PricePointDTO {
	dtos := make([]*PricePointDTO, len(points))
	for i, p := range points {
		dtos[i] = NewPricePointDTO(p)
	}
	return dtos
}

// NewOpportunityDTO converts an opportunity, rounding amounts to cents and
// the margin to two decimals.
func NewOpportunityDTO(o *trading.ArbitrageOpportunity) *OpportunityDTO {
	buy, sell := o.BuyPoint(), o.SellPoint()
	return &OpportunityDTO{
		BuySource:     string(buy.Source()),
		BuyVariant:    string(buy.Variant()),
		BuyPriceType:  string(buy.PriceType()),
		BuyPrice:      pricing.RoundCents(o.BuyPrice()),
		BuyCost:       pricing.RoundCents(o.BuyCost()),
		SellSource:    string(sell.Source()),
		SellVariant:   string(sell.Variant()),
		SellPriceType: string(sell.PriceType()),
		SellPrice:     pricing.RoundCents(o.SellPrice()),
		SellNet:       pricing.RoundCents(o.SellNet()),
		Profit:        pricing.RoundCents(o.Profit()),
		ProfitMargin:  pricing.RoundCents(o.ProfitMargin()),
		VariantInfo:   o.VariantInfo(),
	}
}

// NewOpportunityDTOs converts a list of opportunities.
func NewOpportunityDTOs(opportunities []*trading.ArbitrageOpportunity) []*OpportunityDTO {
	dtos := make([]*OpportunityDTO, len(opportunities))
	for i, o := range opportunities {
		dtos[i] = NewOpportunityDTO(o)
	}
	return dtos
}

// NewScanRecordDTO converts a stored scan summary.
func NewScanRecordDTO(r *trading.ScanRecord) *ScanRecordDTO {
	return &ScanRecordDTO{
		ScanID:           r.ScanID(),
		CardName:         r.CardName(),
		SetName:          r.SetName(),
		BaseCurrency:     r.BaseCurrency(),
		PricePointCount:  r.PricePointCount(),
		OpportunityCount: r.OpportunityCount(),
		BestBuy:          r.BestBuy(),
		BestSell:         r.BestSell(),
		BestProfit:       pricing.RoundCents(r.BestProfit()),
		BestMargin:       pricing.RoundCents(r.BestMargin()),
		ScannedAt:        r.ScannedAt(),
	}
}
