package pricing

import (
	"github.com/shopspring/decimal"
)

// CurrencySettings configures the normalizer. Rates are "units of base
// currency per one unit of the keyed currency".
type CurrencySettings struct {
	Base  Currency
	Rates map[Currency]float64
}

// DefaultCurrencySettings converts into USD.
func DefaultCurrencySettings() CurrencySettings {
	return CurrencySettings{
		Base: CurrencyUSD,
		Rates: map[Currency]float64{
			CurrencyEUR: 1.09,
			CurrencyGBP: 1.27,
			CurrencyCAD: 0.74,
		},
	}
}

// CurrencyNormalizer converts marketplace amounts into the base currency
// using static rates. It never fails: unknown currencies pass through with a
// warning and unusable amounts become zero.
type CurrencyNormalizer struct {
	base   Currency
	rates  map[Currency]decimal.Decimal
	logger Logger
}

// NewCurrencyNormalizer builds a normalizer. Non-positive rates are dropped
// (and therefore treated as unknown currencies).
func NewCurrencyNormalizer(settings CurrencySettings, logger Logger) *CurrencyNormalizer {
	base := ParseCurrency(string(settings.Base))
	if base == "" {
		base = CurrencyUSD
	}

	rates := make(map[Currency]decimal.Decimal, len(settings.Rates))
	for currency, rate := range settings.Rates {
		if !isFinite(rate) || rate <= 0 {
			continue
		}
		rates[ParseCurrency(string(currency))] = decimal.NewFromFloat(rate)
	}

	return &CurrencyNormalizer{
		base:   base,
		rates:  rates,
		logger: loggerOrNop(logger),
	}
}

// BaseCurrency returns the currency every normalized amount is expressed in.
func (n *CurrencyNormalizer) BaseCurrency() Currency {
	return n.base
}

// Rate returns the configured rate for a currency.
func (n *CurrencyNormalizer) Rate(currency Currency) (float64, bool) {
	currency = ParseCurrency(string(currency))
	if currency == n.base {
		return 1, true
	}
	rate, ok := n.rates[currency]
	if !ok {
		return 0, false
	}
	return rate.InexactFloat64(), true
}

// Normalize converts amount from the given currency into the base currency.
// The multiplication is done in fixed point so 10.00 EUR at 1.09 yields
// exactly 10.90.
func (n *CurrencyNormalizer) Normalize(amount float64, from Currency) float64 {
	if !isFinite(amount) {
		return 0
	}

	from = ParseCurrency(string(from))
	if from == "" || from == n.base {
		return amount
	}

	rate, ok := n.rates[from]
	if !ok {
		n.logger.Log(LevelWarning, "unknown currency, returning amount unconverted", map[string]interface{}{
			"currency": string(from),
			"base":     string(n.base),
			"amount":   amount,
		})
		return amount
	}

	return decimal.NewFromFloat(amount).Mul(rate).InexactFloat64()
}

// NormalizeValue converts a raw payload value. nil or non-numeric input
// yields 0.
func (n *CurrencyNormalizer) NormalizeValue(raw interface{}, from Currency) float64 {
	amount, ok := ToAmount(raw)
	if !ok {
		return 0
	}
	return n.Normalize(amount, from)
}
