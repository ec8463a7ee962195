package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// ValidatePricePointQuery checks a single price. When Source is empty only
// the amount is validated.
type ValidatePricePointQuery struct {
	Source    string
	Variant   string
	PriceType string
	Price     float64 // base currency
	Rarity    string  // optional, enables rarity ceilings
}

// ValidatePricePointResponse contains the verdict
type ValidatePricePointResponse struct {
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason"`
	RarityClass string `json:"rarity_class"`
}

// ValidatePricePointHandler handles validation queries
type ValidatePricePointHandler struct {
	provider *services.EngineProvider
}

// NewValidatePricePointHandler creates a new handler
func NewValidatePricePointHandler(provider *services.EngineProvider) *ValidatePricePointHandler {
	return &ValidatePricePointHandler{provider: provider}
}

// Handle executes the query
func (h *ValidatePricePointHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ValidatePricePointQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	engine := h.provider.Current()
	var item *pricing.ItemContext
	rarityClass := ""
	if query.Rarity != "" {
		item = &pricing.ItemContext{Rarity: query.Rarity}
		rarityClass = string(item.Class())
	}

	var result pricing.ValidationResult
	if query.Source == "" {
		result = engine.Validator().CheckPrice(query.Price, item)
	} else {
		result = h.checkPoint(engine, query, item)
	}

	return &ValidatePricePointResponse{
		Valid:       result.Valid,
		Reason:      string(result.Reason),
		RarityClass: rarityClass,
	}, nil
}

func (h *ValidatePricePointHandler) checkPoint(
	engine *services.Engine,
	query *ValidatePricePointQuery,
	item *pricing.ItemContext,
) pricing.ValidationResult {
	source, ok := pricing.ParseSource(query.Source)
	if !ok {
		source = pricing.Source(query.Source)
	}

	point, err := pricing.NewPricePoint(
		source,
		pricing.ParseVariant(query.Variant),
		pricing.ParsePriceType(query.PriceType),
		pricing.ConditionNearMint,
		query.Price,
		engine.Fees().TermsFor(source),
	)
	if err != nil {
		if errors.Is(err, pricing.ErrNonPositivePrice) {
			return engine.Validator().CheckPrice(query.Price, item)
		}
		return pricing.ValidationResult{Valid: false, Reason: pricing.ReasonMalformed}
	}
	return engine.Validator().Check(point, item)
}
