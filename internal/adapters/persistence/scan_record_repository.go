package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// GormScanRecordRepository implements ScanRecordRepository using GORM
type GormScanRecordRepository struct {
	db *gorm.DB
}

// NewGormScanRecordRepository creates a new GORM scan record repository
func NewGormScanRecordRepository(db *gorm.DB) *GormScanRecordRepository {
	return &GormScanRecordRepository{db: db}
}

// Save persists a new scan record
func (r *GormScanRecordRepository) Save(ctx context.Context, record *trading.ScanRecord) error {
	if record == nil {
		return fmt.Errorf("invalid scan record: nil")
	}

	model := r.recordToModel(record)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save scan record: %w", result.Error)
	}

	return nil
}

// FindByScanID retrieves a record by its scan ID
func (r *GormScanRecordRepository) FindByScanID(ctx context.Context, scanID string) (*trading.ScanRecord, error) {
	var model ScanRecordModel
	result := r.db.WithContext(ctx).Where("scan_id = ?", scanID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", trading.ErrScanRecordNotFound, scanID)
		}
		return nil, fmt.Errorf("failed to find scan record: %w", result.Error)
	}

	return r.modelToRecord(&model)
}

// FindRecent retrieves the newest records, optionally for one card
func (r *GormScanRecordRepository) FindRecent(
	ctx context.Context,
	cardName string,
	limit int,
) ([]*trading.ScanRecord, error) {
	query := r.db.WithContext(ctx).Order("scanned_at DESC").Order("id DESC")
	if cardName != "" {
		query = query.Where("card_name = ?", cardName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []ScanRecordModel
	result := query.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find scan records: %w", result.Error)
	}

	// Convert models to domain entities
	records := make([]*trading.ScanRecord, len(models))
	for i := range models {
		record, err := r.modelToRecord(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert model: %w", err)
		}
		records[i] = record
	}

	return records, nil
}

// CountWithArbitrage returns how many recorded scans found at least one opportunity
func (r *GormScanRecordRepository) CountWithArbitrage(ctx context.Context) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&ScanRecordModel{}).
		Where("opportunity_count > 0").
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count scan records: %w", result.Error)
	}

	return int(count), nil
}

func (r *GormScanRecordRepository) recordToModel(record *trading.ScanRecord) *ScanRecordModel {
	return &ScanRecordModel{
		ScanID:           record.ScanID(),
		CardName:         record.CardName(),
		SetName:          record.SetName(),
		BaseCurrency:     record.BaseCurrency(),
		PricePointCount:  record.PricePointCount(),
		OpportunityCount: record.OpportunityCount(),
		BestBuy:          record.BestBuy(),
		BestSell:         record.BestSell(),
		BestProfit:       record.BestProfit(),
		BestMargin:       record.BestMargin(),
		ScannedAt:        record.ScannedAt(),
	}
}

func (r *GormScanRecordRepository) modelToRecord(model *ScanRecordModel) (*trading.ScanRecord, error) {
	return trading.RestoreScanRecord(trading.ScanRecordSnapshot{
		ID:               model.ID,
		ScanID:           model.ScanID,
		CardName:         model.CardName,
		SetName:          model.SetName,
		BaseCurrency:     model.BaseCurrency,
		PricePointCount:  model.PricePointCount,
		OpportunityCount: model.OpportunityCount,
		BestBuy:          model.BestBuy,
		BestSell:         model.BestSell,
		BestProfit:       model.BestProfit,
		BestMargin:       model.BestMargin,
		ScannedAt:        model.ScannedAt.UTC(),
	})
}
