package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/cardarb-go/internal/infrastructure/config"
)

func TestIntervalFor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scanner.Interval = 30 * time.Second

	assert.Equal(t, 30*time.Second, intervalFor(5*time.Minute, false, cfg))
	assert.Equal(t, 5*time.Minute, intervalFor(5*time.Minute, true, cfg))
	assert.Equal(t, 5*time.Minute, intervalFor(5*time.Minute, false, nil))
}
