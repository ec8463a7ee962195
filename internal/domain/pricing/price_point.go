package pricing

import (
	"fmt"
)

// PricePoint is one normalized, comparable price observation from one
// marketplace for one variant / price type / condition combination.
//
// Immutability: all fields are private with read-only getters. Points are
// built fresh for each query and never shared between invocations.
type PricePoint struct {
	source           Source
	variant          Variant
	priceType        PriceType
	condition        Condition
	price            float64 // base currency
	originalPrice    float64 // as quoted by the marketplace
	originalCurrency Currency
	feeRate          float64
	shippingCost     float64
}

// NewPricePoint creates a price point in the base currency.
//
// Returns error if:
//   - source is empty
//   - price is zero, negative or not finite
//   - terms carry a fee rate outside [0,1) or a negative shipping cost
func NewPricePoint(
	source Source,
	variant Variant,
	priceType PriceType,
	condition Condition,
	price float64,
	terms MarketplaceTerms,
) (*PricePoint, error) {
	if source == "" {
		return nil, ErrUnknownSource
	}
	if !isFinite(price) || price <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNonPositivePrice, price)
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if variant == "" {
		variant = VariantNormal
	}
	if priceType == "" {
		priceType = PriceTypeUnknown
	}

	return &PricePoint{
		source:        source,
		variant:       variant,
		priceType:     priceType,
		condition:     condition,
		price:         price,
		originalPrice: price,
		feeRate:       terms.FeeRate,
		shippingCost:  terms.ShippingCost,
	}, nil
}

// WithOriginalQuote returns a copy carrying the amount and currency the
// marketplace actually quoted before normalization.
func (p *PricePoint) WithOriginalQuote(amount float64, currency Currency) *PricePoint {
	cp := *p
	cp.originalPrice = amount
	cp.originalCurrency = currency
	return &cp
}

// Getters - provide read-only access to maintain immutability

func (p *PricePoint) Source() Source {
	return p.source
}

func (p *PricePoint) Variant() Variant {
	return p.variant
}

func (p *PricePoint) PriceType() PriceType {
	return p.priceType
}

func (p *PricePoint) Condition() Condition {
	return p.condition
}

func (p *PricePoint) Price() float64 {
	return p.price
}

func (p *PricePoint) OriginalPrice() float64 {
	return p.originalPrice
}

func (p *PricePoint) OriginalCurrency() Currency {
	return p.originalCurrency
}

func (p *PricePoint) FeeRate() float64 {
	return p.feeRate
}

func (p *PricePoint) ShippingCost() float64 {
	return p.shippingCost
}

// BuyCost is what a buyer pays to acquire the card at this source.
func (p *PricePoint) BuyCost() float64 {
	return p.price + p.shippingCost
}

// SellNet is what a seller nets at this source after the marketplace fee.
func (p *PricePoint) SellNet() float64 {
	return p.price * (1 - p.feeRate)
}

// Key identifies the point by source, variant and price type.
func (p *PricePoint) Key() string {
	return fmt.Sprintf("%s/%s/%s", p.source, p.variant, p.priceType)
}

// SameIdentity reports whether both points share source, variant and price type.
func (p *PricePoint) SameIdentity(other *PricePoint) bool {
	return p.source == other.source && p.variant == other.variant && p.priceType == other.priceType
}

// String returns a human-readable representation
func (p *PricePoint) String() string {
	return fmt.Sprintf("PricePoint{%s, price=%.2f, buy=%.2f, sell=%.2f}",
		p.Key(), p.price, p.BuyCost(), p.SellNet())
}
