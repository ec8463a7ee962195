package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/config"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/logging"
)

func TestSlogAdapter_WritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	adapter := logging.NewSlogAdapter(logger)

	adapter.Log(pricing.LevelWarning, "exchange rate missing", map[string]interface{}{
		"currency": "JPY",
		"amount":   1500.0,
	})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "exchange rate missing", record["msg"])
	assert.Equal(t, "JPY", record["currency"])
	assert.Equal(t, 1500.0, record["amount"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := logging.NewSlogAdapter(logging.NewWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, &buf))

	adapter.Log(pricing.LevelDebug, "price point rejected", nil)
	assert.Empty(t, buf.String())

	adapter.Log(pricing.LevelError, "parse failed", map[string]interface{}{"source": "tcgplayer"})
	assert.Contains(t, buf.String(), "parse failed")
	assert.Contains(t, buf.String(), "source=tcgplayer")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("nonsense"))
}
