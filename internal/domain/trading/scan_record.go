package trading

import (
	"errors"
	"time"
)

// ScanRecord is a point-in-time summary of one arbitrage scan.
// This is an immutable entity - all fields are private with getters only.
type ScanRecord struct {
	id               int
	scanID           string
	cardName         string
	setName          string
	baseCurrency     string
	pricePointCount  int
	opportunityCount int
	bestBuy          string  // price point key of the top opportunity, or ""
	bestSell         string  // price point key of the top opportunity, or ""
	bestProfit       float64 // 0 when no opportunity
	bestMargin       float64 // percent, 0 when no opportunity
	scannedAt        time.Time
}

// NewScanRecord summarizes a scan. opportunities must already be ranked; the
// first one is recorded as the best.
func NewScanRecord(
	scanID string,
	cardName string,
	setName string,
	baseCurrency string,
	pricePointCount int,
	opportunities []*ArbitrageOpportunity,
	scannedAt time.Time,
) (*ScanRecord, error) {
	if scanID == "" {
		return nil, errors.New("scan id required")
	}
	if cardName == "" {
		return nil, errors.New("card name required")
	}
	if pricePointCount < 0 {
		return nil, errors.New("price point count must not be negative")
	}

	record := &ScanRecord{
		scanID:           scanID,
		cardName:         cardName,
		setName:          setName,
		baseCurrency:     baseCurrency,
		pricePointCount:  pricePointCount,
		opportunityCount: len(opportunities),
		scannedAt:        scannedAt,
	}
	if len(opportunities) > 0 {
		best := opportunities[0]
		record.bestBuy = best.BuyPoint().Key()
		record.bestSell = best.SellPoint().Key()
		record.bestProfit = best.Profit()
		record.bestMargin = best.ProfitMargin()
	}
	return record, nil
}

// ScanRecordSnapshot carries persisted values back into the domain.
type ScanRecordSnapshot struct {
	ID               int
	ScanID           string
	CardName         string
	SetName          string
	BaseCurrency     string
	PricePointCount  int
	OpportunityCount int
	BestBuy          string
	BestSell         string
	BestProfit       float64
	BestMargin       float64
	ScannedAt        time.Time
}

// RestoreScanRecord rebuilds a record loaded from the database.
func RestoreScanRecord(s ScanRecordSnapshot) (*ScanRecord, error) {
	record, err := NewScanRecord(s.ScanID, s.CardName, s.SetName, s.BaseCurrency, s.PricePointCount, nil, s.ScannedAt)
	if err != nil {
		return nil, err
	}
	record.id = s.ID
	record.opportunityCount = s.OpportunityCount
	record.bestBuy = s.BestBuy
	record.bestSell = s.BestSell
	record.bestProfit = s.BestProfit
	record.bestMargin = s.BestMargin
	return record, nil
}

// Getters (immutable entity - no setters)

func (r *ScanRecord) ID() int {
	return r.id
}

func (r *ScanRecord) ScanID() string {
	return r.scanID
}

func (r *ScanRecord) CardName() string {
	return r.cardName
}

func (r *ScanRecord) SetName() string {
	return r.setName
}

func (r *ScanRecord) BaseCurrency() string {
	return r.baseCurrency
}

func (r *ScanRecord) PricePointCount() int {
	return r.pricePointCount
}

func (r *ScanRecord) OpportunityCount() int {
	return r.opportunityCount
}

func (r *ScanRecord) BestBuy() string {
	return r.bestBuy
}

func (r *ScanRecord) BestSell() string {
	return r.bestSell
}

func (r *ScanRecord) BestProfit() float64 {
	return r.bestProfit
}

func (r *ScanRecord) BestMargin() float64 {
	return r.bestMargin
}

func (r *ScanRecord) ScannedAt() time.Time {
	return r.scannedAt
}

// HasArbitrage reports whether the scan found at least one opportunity.
func (r *ScanRecord) HasArbitrage() bool {
	return r.opportunityCount > 0
}
