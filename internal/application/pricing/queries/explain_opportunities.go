package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// ExplainOpportunitiesQuery reports the calculator's decision for every
// ordered pair of a card's price points.
type ExplainOpportunitiesQuery struct {
	Card *extraction.CardPayload
}

// PairDecisionDTO is the verdict for one ordered (buy, sell) pair
type PairDecisionDTO struct {
	Buy      string  `json:"buy"`
	Sell     string  `json:"sell"`
	Decision string  `json:"decision"`
	Profit   float64 `json:"profit,omitempty"`
	Margin   float64 `json:"margin,omitempty"`
}

// ExplainOpportunitiesResponse lists pair decisions and their tallies
type ExplainOpportunitiesResponse struct {
	Pairs  []PairDecisionDTO `json:"pairs"`
	Counts map[string]int    `json:"counts"`
}

// ExplainOpportunitiesHandler handles explain queries
type ExplainOpportunitiesHandler struct {
	provider *services.EngineProvider
}

// NewExplainOpportunitiesHandler creates a new handler
func NewExplainOpportunitiesHandler(provider *services.EngineProvider) *ExplainOpportunitiesHandler {
	return &ExplainOpportunitiesHandler{provider: provider}
}

// Handle executes the query
func (h *ExplainOpportunitiesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExplainOpportunitiesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if query.Card == nil {
		return nil, fmt.Errorf("card payload required")
	}

	engine := h.provider.Current()
	points := engine.Extractor().ExtractAll(query.Card)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Key() < points[j].Key()
	})

	item := query.Card.Item()
	response := &ExplainOpportunitiesResponse{Counts: make(map[string]int)}
	for _, buy := range points {
		for _, sell := range points {
			if buy == sell {
				continue
			}
			opp, decision := engine.Calculator().EvaluateForItem(buy, sell, item)
			pair := PairDecisionDTO{
				Buy:      buy.Key(),
				Sell:     sell.Key(),
				Decision: string(decision),
			}
			if decision == trading.DecisionAccepted {
				pair.Profit = opp.Profit()
				pair.Margin = opp.ProfitMargin()
			}
			response.Pairs = append(response.Pairs, pair)
			response.Counts[string(decision)]++
		}
	}

	return response, nil
}
