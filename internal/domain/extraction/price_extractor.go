package extraction

import (
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// PriceExtractor turns raw marketplace payloads into normalized price points.
// It is stateless apart from its immutable collaborators and safe for
// concurrent use.
type PriceExtractor struct {
	registry   *ExtractorRegistry
	normalizer *pricing.CurrencyNormalizer
	fees       *pricing.FeeSchedule
	logger     pricing.Logger
}

func NewPriceExtractor(
	registry *ExtractorRegistry,
	normalizer *pricing.CurrencyNormalizer,
	fees *pricing.FeeSchedule,
	logger pricing.Logger,
) *PriceExtractor {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	if normalizer == nil {
		normalizer = pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), logger)
	}
	if fees == nil {
		fees = pricing.DefaultFeeSchedule()
	}
	if logger == nil {
		logger = pricing.NopLogger{}
	}
	return &PriceExtractor{
		registry:   registry,
		normalizer: normalizer,
		fees:       fees,
		logger:     logger,
	}
}

// Extract returns every valid-shaped price point found in one source's
// payload. It never fails: unknown sources and unusable payloads yield an
// empty slice.
func (e *PriceExtractor) Extract(source pricing.Source, payload map[string]interface{}) []*pricing.PricePoint {
	points := make([]*pricing.PricePoint, 0)
	if len(payload) == 0 {
		return points
	}

	parser, ok := e.registry.Get(source)
	if !ok {
		e.logger.Log(pricing.LevelDebug, "no parser for source, payload ignored", map[string]interface{}{
			"source": string(source),
		})
		return points
	}

	terms := e.fees.TermsFor(source)
	var quotes []Quote
	err := parser.Parse(payload, func(q Quote) {
		quotes = append(quotes, q)
	})
	if err != nil {
		e.logger.Log(pricing.LevelError, "source payload rejected", map[string]interface{}{
			"source": string(source),
			"error":  err.Error(),
		})
		return points
	}

	for _, q := range quotes {
		price := e.normalizer.Normalize(q.Amount, q.Currency)
		point, err := pricing.NewPricePoint(source, q.Variant, q.PriceType, q.Condition, price, terms)
		if err != nil {
			e.logger.Log(pricing.LevelDebug, "quote skipped", map[string]interface{}{
				"source":     string(source),
				"variant":    string(q.Variant),
				"price_type": string(q.PriceType),
				"error":      err.Error(),
			})
			continue
		}
		points = append(points, point.WithOriginalQuote(q.Amount, q.Currency))
	}

	e.logger.Log(pricing.LevelDebug, "extracted price points", map[string]interface{}{
		"source": string(source),
		"count":  len(points),
	})
	return points
}

// ExtractAll extracts every marketplace section of a card in registry order.
func (e *PriceExtractor) ExtractAll(card *CardPayload) []*pricing.PricePoint {
	points := make([]*pricing.PricePoint, 0)
	if card == nil {
		return points
	}
	for _, source := range e.registry.Sources() {
		payload, ok := card.Sources[source]
		if !ok {
			continue
		}
		points = append(points, e.Extract(source, payload)...)
	}
	return points
}

// Registry exposes the parser registry.
func (e *PriceExtractor) Registry() *ExtractorRegistry {
	return e.registry
}

// Normalizer exposes the currency normalizer.
func (e *PriceExtractor) Normalizer() *pricing.CurrencyNormalizer {
	return e.normalizer
}
