package pricing

import "strings"

// Source identifies the marketplace a price observation came from.
type Source string

const (
	SourceTCGPlayer     Source = "tcgplayer"
	SourceCardmarket    Source = "cardmarket"
	SourcePriceCharting Source = "pricecharting"
)

// sourceAliases maps the keys used in fetched card payloads to sources.
var sourceAliases = map[string]Source{
	"tcgplayer":      SourceTCGPlayer,
	"tcg_player":     SourceTCGPlayer,
	"cardmarket":     SourceCardmarket,
	"card_market":    SourceCardmarket,
	"pricecharting":  SourcePriceCharting,
	"price_charting": SourcePriceCharting,
}

// AllSources returns every supported marketplace in a fixed order.
func AllSources() []Source {
	return []Source{SourceTCGPlayer, SourceCardmarket, SourcePriceCharting}
}

// ParseSource resolves a marketplace identifier or payload key.
func ParseSource(raw string) (Source, bool) {
	source, ok := sourceAliases[strings.ToLower(strings.TrimSpace(raw))]
	return source, ok
}

func (s Source) String() string {
	return string(s)
}

// Currency is an ISO 4217 currency code.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
)

// ParseCurrency upper-cases and trims a currency code.
func ParseCurrency(raw string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(raw)))
}

func (c Currency) String() string {
	return string(c)
}
