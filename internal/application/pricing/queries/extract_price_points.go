package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/types"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// ExtractPricePointsQuery requests normalized price points from one raw payload
type ExtractPricePointsQuery struct {
	Source  string // Marketplace id or payload key (e.g., "price_charting")
	Payload map[string]interface{}
}

// ExtractPricePointsResponse contains the extracted points
type ExtractPricePointsResponse struct {
	Source      string                 `json:"source"`
	PricePoints []*types.PricePointDTO `json:"price_points"`
}

// ExtractPricePointsHandler handles extraction queries
type ExtractPricePointsHandler struct {
	provider *services.EngineProvider
}

// NewExtractPricePointsHandler creates a new handler
func NewExtractPricePointsHandler(provider *services.EngineProvider) *ExtractPricePointsHandler {
	return &ExtractPricePointsHandler{provider: provider}
}

// Handle executes the query
func (h *ExtractPricePointsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExtractPricePointsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	source, ok := pricing.ParseSource(query.Source)
	if !ok {
		return nil, fmt.Errorf("%w: %q", pricing.ErrUnknownSource, query.Source)
	}

	points := h.provider.Current().Extractor().Extract(source, query.Payload)
	return &ExtractPricePointsResponse{
		Source:      string(source),
		PricePoints: types.NewPricePointDTOs(points),
	}, nil
}
