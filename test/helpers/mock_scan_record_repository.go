package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// MockScanRecordRepository is an in-memory ScanRecordRepository
type MockScanRecordRepository struct {
	mu      sync.Mutex
	records []*trading.ScanRecord
	saveErr error
}

// NewMockScanRecordRepository creates an empty repository
func NewMockScanRecordRepository() *MockScanRecordRepository {
	return &MockScanRecordRepository{}
}

// SetSaveError makes every following Save fail with err
func (m *MockScanRecordRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *MockScanRecordRepository) Save(ctx context.Context, record *trading.ScanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *MockScanRecordRepository) FindByScanID(ctx context.Context, scanID string) (*trading.ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ScanID() == scanID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", trading.ErrScanRecordNotFound, scanID)
}

// FindRecent returns matching records newest first
func (m *MockScanRecordRepository) FindRecent(ctx context.Context, cardName string, limit int) ([]*trading.ScanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*trading.ScanRecord
	for _, r := range m.records {
		if cardName == "" || r.CardName() == cardName {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScannedAt().After(out[j].ScannedAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Records returns everything saved so far in insertion order
func (m *MockScanRecordRepository) Records() []*trading.ScanRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*trading.ScanRecord(nil), m.records...)
}
