package services

import (
	"sort"
	"time"

	"github.com/andrescamacho/cardarb-go/internal/adapters/metrics"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
)

// EngineSettings is one consistent configuration snapshot for the pricing core.
type EngineSettings struct {
	Pricing    pricing.Settings
	Thresholds trading.Thresholds
	// SetMapping overrides the built-in set table when non-nil.
	SetMapping map[string]pricing.SetIDs
}

// DefaultEngineSettings returns the built-in configuration.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Pricing:    pricing.DefaultSettings(),
		Thresholds: trading.DefaultThresholds(),
	}
}

// Engine wires the pricing core components built from one settings
// snapshot. It is immutable; configuration changes produce a new Engine.
type Engine struct {
	settings      EngineSettings
	normalizer    *pricing.CurrencyNormalizer
	fees          *pricing.FeeSchedule
	validator     *pricing.PriceValidator
	comparability *pricing.VariantComparability
	extractor     *extraction.PriceExtractor
	calculator    *trading.ArbitrageCalculator
	setMapping    *pricing.SetMapping
	builtAt       time.Time
}

// NewEngine validates settings and builds the components.
func NewEngine(settings EngineSettings, logger pricing.Logger) (*Engine, error) {
	if err := settings.Pricing.Validate(); err != nil {
		return nil, shared.NewConfigurationError("pricing settings", err)
	}
	if err := settings.Thresholds.Validate(); err != nil {
		return nil, shared.NewConfigurationError("arbitrage thresholds", err)
	}

	normalizer := pricing.NewCurrencyNormalizer(settings.Pricing.Currency, logger)
	fees := settings.Pricing.Fees.Schedule()
	validator := pricing.NewPriceValidator(settings.Pricing.Validation, logger)
	comparability := pricing.NewVariantComparability(settings.Pricing.Comparability)

	setMapping := pricing.DefaultSetMapping()
	if settings.SetMapping != nil {
		setMapping = pricing.NewSetMapping(settings.SetMapping)
	}

	return &Engine{
		settings:      settings,
		normalizer:    normalizer,
		fees:          fees,
		validator:     validator,
		comparability: comparability,
		extractor:     extraction.NewPriceExtractor(extraction.NewDefaultRegistry(), normalizer, fees, logger),
		calculator:    trading.NewArbitrageCalculator(validator, comparability, settings.Thresholds, logger),
		setMapping:    setMapping,
		builtAt:       time.Now().UTC(),
	}, nil
}

// Getters

func (e *Engine) Settings() EngineSettings {
	return e.settings
}

func (e *Engine) Normalizer() *pricing.CurrencyNormalizer {
	return e.normalizer
}

func (e *Engine) Fees() *pricing.FeeSchedule {
	return e.fees
}

func (e *Engine) Validator() *pricing.PriceValidator {
	return e.validator
}

func (e *Engine) Comparability() *pricing.VariantComparability {
	return e.comparability
}

func (e *Engine) Extractor() *extraction.PriceExtractor {
	return e.extractor
}

func (e *Engine) Calculator() *trading.ArbitrageCalculator {
	return e.calculator
}

func (e *Engine) SetMapping() *pricing.SetMapping {
	return e.setMapping
}

func (e *Engine) BuiltAt() time.Time {
	return e.builtAt
}

// ScanResult is everything one card scan produced.
type ScanResult struct {
	Card          *extraction.CardPayload
	BaseCurrency  pricing.Currency
	PricePoints   []*pricing.PricePoint
	Rejected      map[pricing.RejectionReason]int
	Opportunities []*trading.ArbitrageOpportunity
	Variants      []pricing.Variant
	SetIDs        *pricing.SetIDs
	Duration      time.Duration
}

// HasArbitrage reports whether at least one opportunity was found.
func (r *ScanResult) HasArbitrage() bool {
	return len(r.Opportunities) > 0
}

// Best returns the top-ranked opportunity, or nil.
func (r *ScanResult) Best() *trading.ArbitrageOpportunity {
	if len(r.Opportunities) == 0 {
		return nil
	}
	return r.Opportunities[0]
}

// Scan extracts, validates and pairs all marketplace prices of one card.
func (e *Engine) Scan(card *extraction.CardPayload) *ScanResult {
	start := time.Now()
	result := &ScanResult{
		Card:         card,
		BaseCurrency: e.normalizer.BaseCurrency(),
		Rejected:     make(map[pricing.RejectionReason]int),
	}
	if card == nil {
		result.PricePoints = []*pricing.PricePoint{}
		result.Opportunities = []*trading.ArbitrageOpportunity{}
		return result
	}

	result.PricePoints = e.extractor.ExtractAll(card)
	item := card.Item()

	perSource := make(map[pricing.Source]int)
	seenVariants := make(map[pricing.Variant]bool)
	for _, p := range result.PricePoints {
		perSource[p.Source()]++
		if !seenVariants[p.Variant()] {
			seenVariants[p.Variant()] = true
			result.Variants = append(result.Variants, p.Variant())
		}
		if check := e.validator.CheckPrice(p.Price(), item); !check.Valid {
			result.Rejected[check.Reason]++
			metrics.RecordRejection(string(p.Source()), string(check.Reason))
		}
	}
	sort.Slice(result.Variants, func(i, j int) bool { return result.Variants[i] < result.Variants[j] })
	for source, n := range perSource {
		metrics.RecordExtraction(string(source), n)
	}

	result.Opportunities = e.calculator.FindOpportunitiesForItem(result.PricePoints, item)
	if ids, ok := e.setMapping.Lookup(card.SetName); ok {
		result.SetIDs = &ids
	}

	result.Duration = time.Since(start)
	bestMargin := 0.0
	if best := result.Best(); best != nil {
		bestMargin = best.ProfitMargin()
	}
	metrics.RecordScan(result.Duration, len(result.PricePoints), len(result.Opportunities), bestMargin)

	return result
}
