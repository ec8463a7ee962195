package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
	"github.com/andrescamacho/cardarb-go/test/helpers"
)

const umbreonJSON = `{
	"name": "Umbreon VMAX", "number": "215", "rarity": "Rare Secret",
	"set": {"name": "Evolving Skies"},
	"tcgplayer": {"normal": {"market": 100.0, "low": 90.0}},
	"cardmarket": {"trendPrice": 150.0, "averagePrice": 140.0}
}`

func newMediator(t *testing.T, history trading.ScanRecordRepository) mediator.Mediator {
	t.Helper()
	engine, err := services.NewEngine(services.DefaultEngineSettings(), nil)
	require.NoError(t, err)

	m := mediator.NewMediator()
	clock := &shared.FixedClock{At: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, queries.RegisterHandlers(m, services.NewEngineProvider(engine), history, clock))
	return m
}

func mustCard(t *testing.T) *extraction.CardPayload {
	t.Helper()
	card, err := extraction.ParseCardPayload([]byte(umbreonJSON))
	require.NoError(t, err)
	return card
}

func TestFindArbitrageOpportunities(t *testing.T) {
	m := newMediator(t, nil)

	resp, err := m.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{Card: mustCard(t)})
	require.NoError(t, err)
	result := resp.(*queries.FindArbitrageOpportunitiesResponse)

	assert.Equal(t, "Umbreon VMAX", result.CardName)
	assert.Equal(t, "USD", result.BaseCurrency)
	assert.Equal(t, 1.09, result.ExchangeRates["EUR"])
	assert.Equal(t, "swsh7", result.TCGPlayerSetID)
	assert.Len(t, result.PricePoints, 4)
	require.True(t, result.HasArbitrage)
	assert.Equal(t, result.TotalOpportunities, len(result.Opportunities))
	assert.False(t, result.Recorded)

	best := result.Opportunities[0]
	assert.Equal(t, "tcgplayer", best.BuySource)
	assert.Equal(t, "cardmarket", best.SellSource)
	assert.NotEmpty(t, result.ScanID)
}

func TestFindArbitrageOpportunities_Limit(t *testing.T) {
	m := newMediator(t, nil)

	resp, err := m.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{Card: mustCard(t), Limit: 1})
	require.NoError(t, err)
	result := resp.(*queries.FindArbitrageOpportunitiesResponse)

	assert.Len(t, result.Opportunities, 1)
	assert.Greater(t, result.TotalOpportunities, 1)
}

func TestFindArbitrageOpportunities_Record(t *testing.T) {
	history := helpers.NewMockScanRecordRepository()
	m := newMediator(t, history)

	resp, err := m.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{Card: mustCard(t), Record: true})
	require.NoError(t, err)
	result := resp.(*queries.FindArbitrageOpportunitiesResponse)

	assert.True(t, result.Recorded)
	require.Len(t, history.Records(), 1)
	record := history.Records()[0]
	assert.Equal(t, result.ScanID, record.ScanID())
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), record.ScannedAt())
	assert.Equal(t, result.TotalOpportunities, record.OpportunityCount())

	listed, err := m.Send(context.Background(), &queries.ListScanRecordsQuery{CardName: "Umbreon VMAX"})
	require.NoError(t, err)
	records := listed.(*queries.ListScanRecordsResponse).Records
	require.Len(t, records, 1)
	assert.Equal(t, result.ScanID, records[0].ScanID)
}

func TestFindArbitrageOpportunities_RecordWithoutHistory(t *testing.T) {
	m := newMediator(t, nil)

	_, err := m.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{Card: mustCard(t), Record: true})

	assert.True(t, errors.Is(err, queries.ErrHistoryDisabled))
}

func TestFindArbitrageOpportunities_RecordFailure(t *testing.T) {
	history := helpers.NewMockScanRecordRepository()
	history.SetSaveError(errors.New("disk full"))
	m := newMediator(t, history)

	_, err := m.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{Card: mustCard(t), Record: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestListScanRecords_WithoutHistory(t *testing.T) {
	m := newMediator(t, nil)

	_, err := m.Send(context.Background(), &queries.ListScanRecordsQuery{})

	assert.True(t, errors.Is(err, queries.ErrHistoryDisabled))
}

func TestExtractPricePoints(t *testing.T) {
	m := newMediator(t, nil)

	resp, err := m.Send(context.Background(), &queries.ExtractPricePointsQuery{
		Source:  "price_charting",
		Payload: map[string]interface{}{"product-name": "Pikachu [Reverse Holo]", "loose-price": 1250.0},
	})
	require.NoError(t, err)
	result := resp.(*queries.ExtractPricePointsResponse)

	assert.Equal(t, "pricecharting", result.Source)
	require.Len(t, result.PricePoints, 1)
	assert.Equal(t, "reverseHolofoil", result.PricePoints[0].Variant)
	assert.Equal(t, 12.5, result.PricePoints[0].Price)
}

func TestExtractPricePoints_UnknownSource(t *testing.T) {
	m := newMediator(t, nil)

	_, err := m.Send(context.Background(), &queries.ExtractPricePointsQuery{Source: "ebay"})

	assert.True(t, errors.Is(err, pricing.ErrUnknownSource))
}

func TestValidatePricePoint(t *testing.T) {
	tests := []struct {
		name   string
		query  queries.ValidatePricePointQuery
		valid  bool
		reason string
	}{
		{"plain price", queries.ValidatePricePointQuery{Price: 42}, true, ""},
		{"placeholder", queries.ValidatePricePointQuery{Price: 999.99}, false, "placeholder"},
		{"zero", queries.ValidatePricePointQuery{Price: 0}, false, "non_positive"},
		{"over ceiling", queries.ValidatePricePointQuery{Price: 1500}, false, "above_ceiling"},
		{"common too expensive", queries.ValidatePricePointQuery{Price: 10, Rarity: "Common"}, false, "above_class_ceiling"},
		{"full point", queries.ValidatePricePointQuery{Source: "tcgplayer", Variant: "holofoil", PriceType: "market", Price: 25}, true, ""},
		{"full point non positive", queries.ValidatePricePointQuery{Source: "tcgplayer", Variant: "normal", PriceType: "low", Price: -3}, false, "non_positive"},
	}

	m := newMediator(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.query
			resp, err := m.Send(context.Background(), &query)
			require.NoError(t, err)
			result := resp.(*queries.ValidatePricePointResponse)

			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestExplainOpportunities(t *testing.T) {
	m := newMediator(t, nil)

	resp, err := m.Send(context.Background(), &queries.ExplainOpportunitiesQuery{Card: mustCard(t)})
	require.NoError(t, err)
	result := resp.(*queries.ExplainOpportunitiesResponse)

	require.Len(t, result.Pairs, 12)
	assert.Equal(t, 2, result.Counts[string(trading.DecisionAccepted)])
	total := 0
	for _, n := range result.Counts {
		total += n
	}
	assert.Equal(t, 12, total)

	for _, pair := range result.Pairs {
		if pair.Decision == string(trading.DecisionAccepted) {
			assert.Equal(t, "tcgplayer/normal/market", pair.Buy)
			assert.Greater(t, pair.Profit, 0.0)
		}
	}
}

func TestExplainOpportunities_UsesCardRarity(t *testing.T) {
	m := newMediator(t, nil)
	card, err := extraction.ParseCardPayload([]byte(`{
		"name": "Rattata", "number": "66", "rarity": "Common",
		"tcgplayer": {"normal": {"market": 5.0}},
		"cardmarket": {"trendPrice": 12.0}
	}`))
	require.NoError(t, err)

	resp, err := m.Send(context.Background(), &queries.FindArbitrageOpportunitiesQuery{Card: card})
	require.NoError(t, err)
	assert.False(t, resp.(*queries.FindArbitrageOpportunitiesResponse).HasArbitrage)

	resp, err = m.Send(context.Background(), &queries.ExplainOpportunitiesQuery{Card: card})
	require.NoError(t, err)
	result := resp.(*queries.ExplainOpportunitiesResponse)

	require.Len(t, result.Pairs, 2)
	assert.Zero(t, result.Counts[string(trading.DecisionAccepted)])
	assert.Equal(t, 2, result.Counts[string(trading.DecisionInvalidPoint)])
}
