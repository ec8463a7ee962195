package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/cardarb-go/internal/adapters/payload"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// DefaultMinConfidence is the lowest match score accepted for a PriceCharting
// product: the name must match and so must the number or the set.
const DefaultMinConfidence = 0.7

// CardFetcher assembles scan payloads from live marketplace data
type CardFetcher struct {
	cards         *PokemonTCGClient
	products      *PriceChartingClient
	matcher       pricing.CardMatcher
	minConfidence float64
	logger        pricing.Logger
}

// NewCardFetcher creates a fetcher. products may be nil to skip PriceCharting.
func NewCardFetcher(cards *PokemonTCGClient, products *PriceChartingClient, logger pricing.Logger) *CardFetcher {
	if logger == nil {
		logger = pricing.NopLogger{}
	}
	return &CardFetcher{
		cards:         cards,
		products:      products,
		matcher:       payload.NewExactNameMatcher(),
		minConfidence: DefaultMinConfidence,
		logger:        logger,
	}
}

// WithMatcher replaces the product matcher
func (f *CardFetcher) WithMatcher(matcher pricing.CardMatcher, minConfidence float64) *CardFetcher {
	f.matcher = matcher
	f.minConfidence = minConfidence
	return f
}

// Fetch returns the scan payload for a Pokémon TCG API card id. A failed
// PriceCharting lookup is logged and leaves that source out.
func (f *CardFetcher) Fetch(ctx context.Context, cardID string) (map[string]interface{}, error) {
	card, err := f.cards.GetCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card %s: %w", cardID, err)
	}
	doc := FlattenCard(card)
	if f.products == nil {
		return doc, nil
	}

	identity := extraction.CardPayloadFromMap(doc).Identity()
	product, err := f.findProduct(ctx, identity)
	if err != nil {
		f.logger.Log(pricing.LevelWarning, "pricecharting lookup failed", map[string]interface{}{
			"card":  cardID,
			"error": err.Error(),
		})
		return doc, nil
	}
	if product != nil {
		doc["price_charting"] = product
	}
	return doc, nil
}

func (f *CardFetcher) findProduct(ctx context.Context, card pricing.CardIdentity) (map[string]interface{}, error) {
	query := strings.TrimSpace(card.Name + " " + card.Number)
	products, err := f.products.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]pricing.CardIdentity, len(products))
	for i, p := range products {
		candidates[i] = productIdentity(p)
	}
	best, confidence, ok := f.matcher.FindBestMatch(card, candidates)
	if !ok || confidence < f.minConfidence {
		f.logger.Log(pricing.LevelInfo, "no pricecharting product matched", map[string]interface{}{
			"card":       card.Name,
			"number":     card.Number,
			"candidates": len(products),
			"confidence": confidence,
		})
		return nil, nil
	}

	for i, c := range candidates {
		if c != best {
			continue
		}
		id := fmt.Sprint(products[i]["id"])
		if id == "" || products[i]["id"] == nil {
			return products[i], nil
		}
		return f.products.GetProduct(ctx, id)
	}
	return nil, nil
}

// productIdentity reads "Charizard [Reverse Holo] #4" / "Pokemon Evolving Skies"
// product fields. Bracketed variant tags are not part of the card name.
func productIdentity(product map[string]interface{}) pricing.CardIdentity {
	name, _ := product["product-name"].(string)
	if open := strings.Index(name, "["); open >= 0 {
		if end := strings.Index(name[open:], "]"); end >= 0 {
			name = name[:open] + name[open+end+1:]
		}
	}
	identity := payload.ParseProduct(name)
	if console, ok := product["console-name"].(string); ok {
		identity.SetName = strings.TrimSpace(strings.TrimPrefix(console, "Pokemon "))
	}
	return identity
}
