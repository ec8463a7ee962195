package trading

import (
	"context"
)

// ScanRecordRepository persists scan summaries.
// This is implemented in the adapter layer (persistence).
type ScanRecordRepository interface {
	// Save persists a new scan record
	Save(ctx context.Context, record *ScanRecord) error

	// FindByScanID retrieves one scan, or ErrScanRecordNotFound
	FindByScanID(ctx context.Context, scanID string) (*ScanRecord, error)

	// FindRecent retrieves scans ordered by scanned_at DESC
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - cardName: Card name filter (empty for all cards)
	//   - limit: Maximum number of records to return (0 for all)
	FindRecent(ctx context.Context, cardName string, limit int) ([]*ScanRecord, error)
}
