package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// PricingMetricsCollector handles extraction, validation and scan metrics.
// When a database is attached it also polls the scan history table for
// aggregate gauges.
type PricingMetricsCollector struct {
	// Dependencies
	db *gorm.DB

	// Extraction & validation
	pricePointsExtractedTotal *prometheus.CounterVec
	pricePointsRejectedTotal  *prometheus.CounterVec

	// Scans
	scansTotal          *prometheus.CounterVec
	scanDurationSeconds prometheus.Histogram
	opportunitiesFound  prometheus.Histogram
	bestMarginPercent   prometheus.Histogram

	// Batches & configuration
	batchCardsTotal    *prometheus.CounterVec
	batchDuration      prometheus.Histogram
	configReloadsTotal *prometheus.CounterVec

	// History (polled)
	recordedScans     prometheus.Gauge
	recordedArbitrage prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	// Configuration
	pollInterval time.Duration
}

// NewPricingMetricsCollector creates a new pricing metrics collector.
// db may be nil when scan history is disabled.
func NewPricingMetricsCollector(db *gorm.DB, pollInterval time.Duration) *PricingMetricsCollector {
	if pollInterval <= 0 {
		pollInterval = 60 * time.Second
	}

	return &PricingMetricsCollector{
		db:           db,
		pollInterval: pollInterval,

		pricePointsExtractedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "price_points_extracted_total",
				Help:      "Total number of price points extracted per source",
			},
			[]string{"source"},
		),

		pricePointsRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "price_points_rejected_total",
				Help:      "Total number of price points rejected by validation",
			},
			[]string{"source", "reason"},
		),

		scansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "scans_total",
				Help:      "Total number of arbitrage scans by outcome",
			},
			[]string{"outcome"},
		),

		scanDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "scan_duration_seconds",
				Help:      "Duration of a single card scan",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		opportunitiesFound: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "opportunities_per_scan",
				Help:      "Number of arbitrage opportunities found per scan",
				Buckets:   []float64{0, 1, 2, 4, 8, 16},
			},
		),

		bestMarginPercent: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_margin_percent",
				Help:      "Best profit margin of scans that found an opportunity",
				Buckets:   []float64{10, 20, 30, 50, 75, 100, 200, 500},
			},
		),

		batchCardsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_cards_total",
				Help:      "Total number of cards processed by batch scans",
			},
			[]string{"status"},
		),

		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_duration_seconds",
				Help:      "Duration of batch scans",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
			},
		),

		configReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "config_reloads_total",
				Help:      "Total number of configuration reload attempts",
			},
			[]string{"status"},
		),

		recordedScans: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recorded_scans",
				Help:      "Number of scans stored in scan history",
			},
		),

		recordedArbitrage: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recorded_scans_with_arbitrage",
				Help:      "Number of stored scans that found at least one opportunity",
			},
		),
	}
}

// Register registers all pricing metrics with the Prometheus registry
func (c *PricingMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.pricePointsExtractedTotal,
		c.pricePointsRejectedTotal,
		c.scansTotal,
		c.scanDurationSeconds,
		c.opportunitiesFound,
		c.bestMarginPercent,
		c.batchCardsTotal,
		c.batchDuration,
		c.configReloadsTotal,
		c.recordedScans,
		c.recordedArbitrage,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the polling goroutine for scan history gauges
func (c *PricingMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollMetrics(c.pollInterval)
}

// Stop gracefully stops the collector
func (c *PricingMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *PricingMetricsCollector) pollMetrics(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do initial poll immediately
	c.updateHistoryMetrics()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateHistoryMetrics()
		}
	}
}

func (c *PricingMetricsCollector) updateHistoryMetrics() {
	if c.db == nil {
		return
	}

	var total, withArbitrage int64
	if err := c.db.WithContext(c.ctx).Table("scan_records").Count(&total).Error; err != nil {
		return
	}
	if err := c.db.WithContext(c.ctx).Table("scan_records").Where("opportunity_count > 0").Count(&withArbitrage).Error; err != nil {
		return
	}

	c.recordedScans.Set(float64(total))
	c.recordedArbitrage.Set(float64(withArbitrage))
}

// RecordExtraction records extracted price points for a source
func (c *PricingMetricsCollector) RecordExtraction(source string, points int) {
	c.pricePointsExtractedTotal.WithLabelValues(source).Add(float64(points))
}

// RecordRejection records one rejected price point
func (c *PricingMetricsCollector) RecordRejection(source string, reason string) {
	c.pricePointsRejectedTotal.WithLabelValues(source, reason).Inc()
}

// RecordScan records a completed scan
func (c *PricingMetricsCollector) RecordScan(duration time.Duration, points int, opportunities int, bestMargin float64) {
	outcome := "no_arbitrage"
	switch {
	case points < 2:
		outcome = "insufficient_data"
	case opportunities > 0:
		outcome = "arbitrage"
		c.bestMarginPercent.Observe(bestMargin)
	}

	c.scansTotal.WithLabelValues(outcome).Inc()
	c.scanDurationSeconds.Observe(duration.Seconds())
	c.opportunitiesFound.Observe(float64(opportunities))
}

// RecordBatch records a completed batch
func (c *PricingMetricsCollector) RecordBatch(cards int, failures int, duration time.Duration) {
	c.batchCardsTotal.WithLabelValues("success").Add(float64(cards - failures))
	c.batchCardsTotal.WithLabelValues("failure").Add(float64(failures))
	c.batchDuration.Observe(duration.Seconds())
}

// RecordConfigReload records a reload attempt
func (c *PricingMetricsCollector) RecordConfigReload(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.configReloadsTotal.WithLabelValues(status).Inc()
}
