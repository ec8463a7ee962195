package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "cardarb"
	// Subsystem for pricing metrics
	subsystem = "pricing"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPricingCollector is the singleton pricing metrics collector
	// Set by SetGlobalPricingCollector() when metrics are enabled
	globalPricingCollector PricingMetricsRecorder
)

// PricingMetricsRecorder defines the interface for recording pricing events
// This interface is used by application code to record metrics
type PricingMetricsRecorder interface {
	RecordExtraction(source string, points int)
	RecordRejection(source string, reason string)
	RecordScan(duration time.Duration, points int, opportunities int, bestMargin float64)
	RecordBatch(cards int, failures int, duration time.Duration)
	RecordConfigReload(success bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPricingCollector sets the global pricing metrics collector
func SetGlobalPricingCollector(collector PricingMetricsRecorder) {
	globalPricingCollector = collector
}

// RecordExtraction records extracted price points for a source globally
func RecordExtraction(source string, points int) {
	if globalPricingCollector != nil {
		globalPricingCollector.RecordExtraction(source, points)
	}
}

// RecordRejection records a price point rejected by validation globally
func RecordRejection(source string, reason string) {
	if globalPricingCollector != nil {
		globalPricingCollector.RecordRejection(source, reason)
	}
}

// RecordScan records a completed arbitrage scan globally
func RecordScan(duration time.Duration, points int, opportunities int, bestMargin float64) {
	if globalPricingCollector != nil {
		globalPricingCollector.RecordScan(duration, points, opportunities, bestMargin)
	}
}

// RecordBatch records a completed batch scan globally
func RecordBatch(cards int, failures int, duration time.Duration) {
	if globalPricingCollector != nil {
		globalPricingCollector.RecordBatch(cards, failures, duration)
	}
}

// RecordConfigReload records a configuration reload attempt globally
func RecordConfigReload(success bool) {
	if globalPricingCollector != nil {
		globalPricingCollector.RecordConfigReload(success)
	}
}
