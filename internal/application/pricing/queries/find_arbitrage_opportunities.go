package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/application/logging"
	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/types"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
	"github.com/andrescamacho/cardarb-go/pkg/utils"
)

// ErrHistoryDisabled is returned when recording is requested without a scan history store.
var ErrHistoryDisabled = errors.New("scan history is not configured")

// FindArbitrageOpportunitiesQuery requests a full scan of one card
type FindArbitrageOpportunitiesQuery struct {
	Card   *extraction.CardPayload
	Limit  int  // Maximum opportunities to return (0 for all)
	Record bool // Persist a scan summary
}

// FindArbitrageOpportunitiesResponse contains the scan results
type FindArbitrageOpportunitiesResponse struct {
	ScanID             string                  `json:"scan_id"`
	CardName           string                  `json:"card_name"`
	SetName            string                  `json:"set_name"`
	TCGPlayerSetID     string                  `json:"tcgplayer_set_id"`
	PriceChartingSetID string                  `json:"pricecharting_set_id"`
	BaseCurrency       string                  `json:"base_currency"`
	ExchangeRates      map[string]float64      `json:"exchange_rates"`
	Opportunities      []*types.OpportunityDTO `json:"opportunities"`
	TotalOpportunities int                     `json:"total_opportunities"`
	PricePoints        []*types.PricePointDTO  `json:"price_points"`
	Variants           []string                `json:"variants"`
	Rejected           map[string]int          `json:"rejected"`
	HasArbitrage       bool                    `json:"has_arbitrage"`
	Recorded           bool                    `json:"recorded"`
}

// FindArbitrageOpportunitiesHandler handles full card scans
type FindArbitrageOpportunitiesHandler struct {
	provider *services.EngineProvider
	history  trading.ScanRecordRepository
	clock    shared.Clock
}

// NewFindArbitrageOpportunitiesHandler creates a new handler. history may be nil.
func NewFindArbitrageOpportunitiesHandler(
	provider *services.EngineProvider,
	history trading.ScanRecordRepository,
	clock shared.Clock,
) *FindArbitrageOpportunitiesHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &FindArbitrageOpportunitiesHandler{
		provider: provider,
		history:  history,
		clock:    clock,
	}
}

// Handle executes the query
func (h *FindArbitrageOpportunitiesHandler) Handle(
	ctx context.Context,
	request mediator.Request,
) (mediator.Response, error) {
	query, ok := request.(*FindArbitrageOpportunitiesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if query.Card == nil {
		return nil, fmt.Errorf("card payload required")
	}
	if query.Record && h.history == nil {
		return nil, ErrHistoryDisabled
	}

	logger := logging.LoggerFromContext(ctx)
	engine := h.provider.Current()
	result := engine.Scan(query.Card)

	response := &FindArbitrageOpportunitiesResponse{
		ScanID:             utils.GenerateScanID("scan", query.Card.Name),
		CardName:           query.Card.Name,
		SetName:            query.Card.SetName,
		BaseCurrency:       string(engine.Normalizer().BaseCurrency()),
		ExchangeRates:      exchangeRates(engine.Normalizer()),
		TotalOpportunities: len(result.Opportunities),
		PricePoints:        types.NewPricePointDTOs(result.PricePoints),
		Variants:           make([]string, len(result.Variants)),
		Rejected:           make(map[string]int, len(result.Rejected)),
		HasArbitrage:       result.HasArbitrage(),
	}
	keep := utils.TruncateLimit(len(result.Opportunities), query.Limit)
	response.Opportunities = types.NewOpportunityDTOs(result.Opportunities[:keep])
	for i, v := range result.Variants {
		response.Variants[i] = string(v)
	}
	for reason, n := range result.Rejected {
		response.Rejected[string(reason)] = n
	}
	if result.SetIDs != nil {
		response.TCGPlayerSetID = result.SetIDs.TCGPlayerID
		response.PriceChartingSetID = result.SetIDs.PriceChartingID
	}

	logger.Log(pricing.LevelInfo, "card scanned", map[string]interface{}{
		"scan_id":       response.ScanID,
		"card":          response.CardName,
		"price_points":  len(result.PricePoints),
		"opportunities": len(result.Opportunities),
	})

	if query.Record {
		record, err := trading.NewScanRecord(
			response.ScanID,
			query.Card.Name,
			query.Card.SetName,
			response.BaseCurrency,
			len(result.PricePoints),
			result.Opportunities,
			h.clock.Now(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build scan record: %w", err)
		}
		if err := h.history.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record scan: %w", err)
		}
		response.Recorded = true
	}

	return response, nil
}

func exchangeRates(n *pricing.CurrencyNormalizer) map[string]float64 {
	rates := make(map[string]float64)
	for _, c := range []pricing.Currency{pricing.CurrencyUSD, pricing.CurrencyEUR, pricing.CurrencyGBP, pricing.CurrencyCAD} {
		if rate, ok := n.Rate(c); ok {
			rates[string(c)] = rate
		}
	}
	return rates
}
