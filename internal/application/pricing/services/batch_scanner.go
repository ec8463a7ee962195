package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/cardarb-go/internal/adapters/metrics"
	"github.com/andrescamacho/cardarb-go/internal/application/logging"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// DefaultBatchWorkers is used when no worker count is configured.
const DefaultBatchWorkers = 4

// PayloadLoader fetches one card payload by reference (file path, key, ...).
type PayloadLoader interface {
	Load(ctx context.Context, ref string) (*extraction.CardPayload, error)
}

// BatchItem is the outcome for one reference in a batch.
type BatchItem struct {
	Ref    string
	Result *ScanResult
	Err    error
}

// BatchScanner fans independent cards out over a bounded worker pool.
// Each card is scanned with the engine snapshot current when its worker
// starts; cards never share mutable state.
type BatchScanner struct {
	provider *EngineProvider
	loader   PayloadLoader
	workers  int
}

func NewBatchScanner(provider *EngineProvider, loader PayloadLoader, workers int) *BatchScanner {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	return &BatchScanner{
		provider: provider,
		loader:   loader,
		workers:  workers,
	}
}

// ScanAll loads and scans every reference. Results keep the order of refs.
// A load failure is reported on its item and does not stop the batch; the
// returned error is non-nil only when ctx is cancelled.
func (s *BatchScanner) ScanAll(ctx context.Context, refs []string) ([]BatchItem, error) {
	logger := logging.LoggerFromContext(ctx)
	start := time.Now()
	items := make([]BatchItem, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			card, err := s.loader.Load(gctx, ref)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Log(pricing.LevelWarning, "card payload could not be loaded", map[string]interface{}{
					"ref":   ref,
					"error": err.Error(),
				})
				items[i] = BatchItem{Ref: ref, Err: err}
				return nil
			}

			items[i] = BatchItem{Ref: ref, Result: s.provider.Current().Scan(card)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}

	failures := 0
	for _, item := range items {
		if item.Err != nil {
			failures++
		}
	}
	metrics.RecordBatch(len(items), failures, time.Since(start))
	logger.Log(pricing.LevelInfo, "batch scan complete", map[string]interface{}{
		"cards":    len(items),
		"failures": failures,
		"workers":  s.workers,
	})

	return items, nil
}

// ScanCards scans already-loaded payloads with the same worker pool.
func (s *BatchScanner) ScanCards(ctx context.Context, cards []*extraction.CardPayload) ([]*ScanResult, error) {
	results := make([]*ScanResult, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, card := range cards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.provider.Current().Scan(card)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
