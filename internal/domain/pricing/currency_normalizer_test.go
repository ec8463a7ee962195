package pricing_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

type recordingLogger struct {
	entries []logEntry
}

type logEntry struct {
	level    string
	message  string
	metadata map[string]interface{}
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level: level, message: message, metadata: metadata})
}

func (l *recordingLogger) count(level string) int {
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func TestCurrencyNormalizer_ConvertsEuroExactly(t *testing.T) {
	normalizer := pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), nil)

	assert.Equal(t, 10.90, normalizer.Normalize(10.00, pricing.CurrencyEUR))
	assert.Equal(t, 32.70, normalizer.Normalize(30.00, pricing.CurrencyEUR))
}

func TestCurrencyNormalizer_BaseCurrencyPassesThrough(t *testing.T) {
	normalizer := pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), nil)

	assert.Equal(t, 12.34, normalizer.Normalize(12.34, pricing.CurrencyUSD))
	assert.Equal(t, 12.34, normalizer.Normalize(12.34, "usd"))
	assert.Equal(t, 12.34, normalizer.Normalize(12.34, ""))
}

func TestCurrencyNormalizer_UnknownCurrencyWarns(t *testing.T) {
	logger := &recordingLogger{}
	normalizer := pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), logger)

	got := normalizer.Normalize(500, "JPY")

	assert.Equal(t, 500.0, got)
	require.Equal(t, 1, logger.count(pricing.LevelWarning))
	assert.Equal(t, "JPY", logger.entries[0].metadata["currency"])
}

func TestCurrencyNormalizer_NormalizeValue(t *testing.T) {
	normalizer := pricing.NewCurrencyNormalizer(pricing.DefaultCurrencySettings(), nil)

	tests := []struct {
		name string
		raw  interface{}
		want float64
	}{
		{"float", 10.0, 10.90},
		{"int", 10, 10.90},
		{"json number", json.Number("10"), 10.90},
		{"numeric string", " 10.00 ", 10.90},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"formatted string", "€10", 0},
		{"map", map[string]interface{}{"x": 1}, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.NormalizeValue(tt.raw, pricing.CurrencyEUR))
		})
	}
}

func TestCurrencyNormalizer_IgnoresNonPositiveRates(t *testing.T) {
	normalizer := pricing.NewCurrencyNormalizer(pricing.CurrencySettings{
		Base:  pricing.CurrencyUSD,
		Rates: map[pricing.Currency]float64{pricing.CurrencyEUR: 0, "gbp": 1.25},
	}, nil)

	_, ok := normalizer.Rate(pricing.CurrencyEUR)
	assert.False(t, ok)

	rate, ok := normalizer.Rate(pricing.CurrencyGBP)
	require.True(t, ok)
	assert.Equal(t, 1.25, rate)

	rate, ok = normalizer.Rate(pricing.CurrencyUSD)
	require.True(t, ok)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, pricing.CurrencyUSD, normalizer.BaseCurrency())
}
