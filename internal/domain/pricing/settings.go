package pricing

import "fmt"

// FeeSettings is the configuration form of a FeeSchedule.
type FeeSettings struct {
	Terms    map[Source]MarketplaceTerms
	Defaults MarketplaceTerms
}

// DefaultFeeSettings mirrors DefaultFeeSchedule.
func DefaultFeeSettings() FeeSettings {
	return FeeSettings{
		Terms: map[Source]MarketplaceTerms{
			SourceTCGPlayer:     {FeeRate: 0.15, ShippingCost: 1.00},
			SourceCardmarket:    {FeeRate: 0.05, ShippingCost: 3.00},
			SourcePriceCharting: {FeeRate: 0.13, ShippingCost: 1.00},
		},
		Defaults: MarketplaceTerms{FeeRate: DefaultFeeRate, ShippingCost: DefaultShippingCost},
	}
}

// Schedule builds the immutable FeeSchedule.
func (f FeeSettings) Schedule() *FeeSchedule {
	return NewFeeSchedule(f.Terms, f.Defaults)
}

// Settings groups everything the pricing core reads from configuration.
type Settings struct {
	Currency      CurrencySettings
	Fees          FeeSettings
	Validation    ValidationSettings
	Comparability ComparabilitySettings
}

// DefaultSettings returns the built-in pricing configuration.
func DefaultSettings() Settings {
	return Settings{
		Currency:      DefaultCurrencySettings(),
		Fees:          DefaultFeeSettings(),
		Validation:    DefaultValidationSettings(),
		Comparability: DefaultComparabilitySettings(),
	}
}

// Validate reports configuration that would make the core misbehave rather
// than degrade: bad fee terms or non-positive exchange rates.
func (s Settings) Validate() error {
	for currency, rate := range s.Currency.Rates {
		if !isFinite(rate) || rate <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidExchangeRate, currency, rate)
		}
	}
	for source, terms := range s.Fees.Terms {
		if err := terms.Validate(); err != nil {
			return fmt.Errorf("marketplace %s: %w", source, err)
		}
	}
	if err := s.Fees.Defaults.Validate(); err != nil {
		return fmt.Errorf("default marketplace terms: %w", err)
	}
	return nil
}
