package services

import (
	"sync/atomic"

	"github.com/andrescamacho/cardarb-go/internal/adapters/metrics"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// EngineProvider holds the current Engine. Readers take a snapshot with
// Current and use it for a whole invocation; a reload swaps the pointer in
// one store so an in-flight scan never sees mixed configuration.
type EngineProvider struct {
	current    atomic.Pointer[Engine]
	generation atomic.Uint64
}

// NewEngineProvider creates a provider serving initial.
func NewEngineProvider(initial *Engine) *EngineProvider {
	p := &EngineProvider{}
	p.Swap(initial)
	return p
}

// Current returns the engine snapshot to use for one invocation.
func (p *EngineProvider) Current() *Engine {
	return p.current.Load()
}

// Generation counts successful swaps.
func (p *EngineProvider) Generation() uint64 {
	return p.generation.Load()
}

// Swap installs next and returns the previous engine. A nil engine is ignored.
func (p *EngineProvider) Swap(next *Engine) *Engine {
	if next == nil {
		return p.current.Load()
	}
	previous := p.current.Swap(next)
	p.generation.Add(1)
	return previous
}

// Reload builds an engine from settings and installs it. On error the
// current engine stays in place.
func (p *EngineProvider) Reload(settings EngineSettings, logger pricing.Logger) error {
	engine, err := NewEngine(settings, logger)
	if err != nil {
		metrics.RecordConfigReload(false)
		return err
	}
	p.Swap(engine)
	metrics.RecordConfigReload(true)
	return nil
}
