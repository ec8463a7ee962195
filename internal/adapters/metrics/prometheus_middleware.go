package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records query execution metrics
//
// This middleware wraps all query execution and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
//
// Query names are the bare request type names, e.g.
// "*queries.FindArbitrageOpportunitiesQuery" becomes "FindArbitrageOpportunitiesQuery".
func PrometheusMiddleware(collector *QueryMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordQueryExecution(mediator.RequestName(request), time.Since(start).Seconds(), err == nil)
		return response, err
	}
}
