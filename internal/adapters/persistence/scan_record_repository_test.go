package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/adapters/persistence"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
	"github.com/andrescamacho/cardarb-go/test/helpers"
)

var baseTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newRecord(t *testing.T, scanID, card string, at time.Time, withOpportunity bool) *trading.ScanRecord {
	t.Helper()

	var opportunities []*trading.ArbitrageOpportunity
	if withOpportunity {
		opportunities = []*trading.ArbitrageOpportunity{helpers.NewOpportunity(t,
			helpers.NewPoint(t, pricing.SourceTCGPlayer, pricing.VariantHolofoil, pricing.PriceTypeMarket, 20),
			helpers.NewPoint(t, pricing.SourceCardmarket, pricing.VariantHolofoil, pricing.PriceTypeTrend, 32.70),
		)}
	}

	record, err := trading.NewScanRecord(scanID, card, "Base", "USD", 6, opportunities, at)
	require.NoError(t, err)
	return record
}

func TestScanRecordRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormScanRecordRepository(db)
	record := newRecord(t, "scan-charizard-1", "Charizard", baseTime, true)

	// Act
	require.NoError(t, repo.Save(context.Background(), record))
	found, err := repo.FindByScanID(context.Background(), "scan-charizard-1")

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, found.ID())
	assert.Equal(t, "Charizard", found.CardName())
	assert.Equal(t, "Base", found.SetName())
	assert.Equal(t, 6, found.PricePointCount())
	assert.Equal(t, 1, found.OpportunityCount())
	assert.Equal(t, "tcgplayer/holofoil/market", found.BestBuy())
	assert.Equal(t, "cardmarket/holofoil/trend", found.BestSell())
	assert.InDelta(t, record.BestProfit(), found.BestProfit(), 1e-9)
	assert.True(t, found.ScannedAt().Equal(baseTime))
	assert.True(t, found.HasArbitrage())
}

func TestScanRecordRepository_NotFound(t *testing.T) {
	repo := persistence.NewGormScanRecordRepository(helpers.NewTestDB(t))

	_, err := repo.FindByScanID(context.Background(), "missing")

	assert.True(t, errors.Is(err, trading.ErrScanRecordNotFound))
}

func TestScanRecordRepository_DuplicateScanID(t *testing.T) {
	repo := persistence.NewGormScanRecordRepository(helpers.NewTestDB(t))
	require.NoError(t, repo.Save(context.Background(), newRecord(t, "dup", "Pikachu", baseTime, false)))

	err := repo.Save(context.Background(), newRecord(t, "dup", "Pikachu", baseTime, false))

	assert.Error(t, err)
}

func TestScanRecordRepository_FindRecent(t *testing.T) {
	// Arrange
	repo := persistence.NewGormScanRecordRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, newRecord(t, "a", "Charizard", baseTime, true)))
	require.NoError(t, repo.Save(ctx, newRecord(t, "b", "Pikachu", baseTime.Add(time.Minute), false)))
	require.NoError(t, repo.Save(ctx, newRecord(t, "c", "Charizard", baseTime.Add(2*time.Minute), false)))

	// Act
	all, err := repo.FindRecent(ctx, "", 10)
	require.NoError(t, err)
	charizard, err := repo.FindRecent(ctx, "Charizard", 10)
	require.NoError(t, err)
	limited, err := repo.FindRecent(ctx, "", 2)
	require.NoError(t, err)
	withArbitrage, err := repo.CountWithArbitrage(ctx)
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ScanID())
	assert.Equal(t, "a", all[2].ScanID())
	require.Len(t, charizard, 2)
	assert.Equal(t, "c", charizard[0].ScanID())
	assert.Len(t, limited, 2)
	assert.Equal(t, 1, withArbitrage)
}
