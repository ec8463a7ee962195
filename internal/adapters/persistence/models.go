package persistence

import (
	"time"
)

// ScanRecordModel represents the scan_records table
type ScanRecordModel struct {
	ID               int       `gorm:"column:id;primaryKey;autoIncrement"`
	ScanID           string    `gorm:"column:scan_id;uniqueIndex;not null"`
	CardName         string    `gorm:"column:card_name;index;not null"`
	SetName          string    `gorm:"column:set_name"`
	BaseCurrency     string    `gorm:"column:base_currency;size:3;not null"`
	PricePointCount  int       `gorm:"column:price_point_count;not null;default:0"`
	OpportunityCount int       `gorm:"column:opportunity_count;not null;default:0"`
	BestBuy          string    `gorm:"column:best_buy"`  // source/variant/price type
	BestSell         string    `gorm:"column:best_sell"` // source/variant/price type
	BestProfit       float64   `gorm:"column:best_profit;not null;default:0"`
	BestMargin       float64   `gorm:"column:best_margin;not null;default:0"`
	ScannedAt        time.Time `gorm:"column:scanned_at;index;not null"`
}

func (ScanRecordModel) TableName() string {
	return "scan_records"
}
