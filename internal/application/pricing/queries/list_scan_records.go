package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/types"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// ListScanRecordsQuery requests recorded scan summaries, newest first
type ListScanRecordsQuery struct {
	CardName string // Empty for all cards
	Limit    int    // Default 20
}

// ListScanRecordsResponse contains the records
type ListScanRecordsResponse struct {
	Records []*types.ScanRecordDTO `json:"records"`
}

// ListScanRecordsHandler handles history queries
type ListScanRecordsHandler struct {
	history trading.ScanRecordRepository
}

// NewListScanRecordsHandler creates a new handler. history may be nil.
func NewListScanRecordsHandler(history trading.ScanRecordRepository) *ListScanRecordsHandler {
	return &ListScanRecordsHandler{history: history}
}

// Handle executes the query
func (h *ListScanRecordsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListScanRecordsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if h.history == nil {
		return nil, ErrHistoryDisabled
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := h.history.FindRecent(ctx, query.CardName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan history: %w", err)
	}

	dtos := make([]*types.ScanRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = types.NewScanRecordDTO(r)
	}
	return &ListScanRecordsResponse{Records: dtos}, nil
}
