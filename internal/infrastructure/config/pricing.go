package config

// PricingConfig holds currency normalization settings
type PricingConfig struct {
	// ISO code every price is converted into
	BaseCurrency string `mapstructure:"base_currency" validate:"required,len=3,alpha"`
}

// CurrencyConfig holds static exchange rates
type CurrencyConfig struct {
	// Units of base currency per one unit of the keyed currency (e.g., eur: 1.09)
	Rates map[string]float64 `mapstructure:"rates" validate:"dive,keys,len=3,alpha,endkeys,gt=0"`
}

// MarketplacesConfig holds per-marketplace fee terms
type MarketplacesConfig struct {
	Sources map[string]MarketplaceConfig `mapstructure:"sources" validate:"dive,keys,source,endkeys"`

	// Applied to marketplaces missing from Sources
	DefaultFeeRate      float64 `mapstructure:"default_fee_rate" validate:"gte=0,lt=1"`
	DefaultShippingCost float64 `mapstructure:"default_shipping_cost" validate:"gte=0"`
}

// MarketplaceConfig holds the fee terms of one marketplace
type MarketplaceConfig struct {
	FeeRate      float64 `mapstructure:"fee_rate" validate:"gte=0,lt=1"`
	ShippingCost float64 `mapstructure:"shipping_cost" validate:"gte=0"`
}

// ArbitrageConfig holds opportunity thresholds
type ArbitrageConfig struct {
	MinProfit            float64  `mapstructure:"min_profit" validate:"gte=0"`
	MinMarginPercent     float64  `mapstructure:"min_margin_percent" validate:"gte=0"`
	MaxMarginPercent     float64  `mapstructure:"max_margin_percent" validate:"gtfield=MinMarginPercent"`
	SellPriceCeiling     float64  `mapstructure:"sell_price_ceiling" validate:"gte=0"`
	SuspiciousLowBuy     float64  `mapstructure:"suspicious_low_buy" validate:"gte=0"`
	SuspiciousHighSell   float64  `mapstructure:"suspicious_high_sell" validate:"gte=0"`
	DisallowedPriceTypes []string `mapstructure:"disallowed_price_types" validate:"dive,price_type"`
	ReliablePriceTypes   []string `mapstructure:"reliable_price_types" validate:"dive,price_type"`
}

// ValidationConfig holds price sanity settings
type ValidationConfig struct {
	PriceCeiling           float64            `mapstructure:"price_ceiling" validate:"gt=0"`
	Placeholders           []float64          `mapstructure:"placeholders" validate:"dive,gt=0"`
	PlaceholderEpsilon     float64            `mapstructure:"placeholder_epsilon" validate:"gte=0"`
	ClassCeilingMultiplier float64            `mapstructure:"class_ceiling_multiplier" validate:"gt=0"`
	ClassCeilings          map[string]float64 `mapstructure:"class_ceilings" validate:"dive,keys,rarity_class,endkeys,gt=0"`
	ClassCeilingOverrides  map[string]float64 `mapstructure:"class_ceiling_overrides" validate:"dive,keys,rarity_class,endkeys,gt=0"`
}

// VariantsConfig holds variant comparability rules
type VariantsConfig struct {
	// Each class lists variants that describe the same printing
	EquivalenceClasses [][]string `mapstructure:"equivalence_classes" validate:"dive,min=2,dive,variant"`
}

// SetConfig maps one expansion to marketplace catalogue ids
type SetConfig struct {
	TCGPlayerID     string `mapstructure:"tcgplayer_id"`
	PriceChartingID string `mapstructure:"pricecharting_id"`
}
