package extraction

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
)

// ExtractorRegistry manages registered source parsers
type ExtractorRegistry struct {
	parsers map[pricing.Source]SourceParser
	mu      sync.RWMutex
}

// NewExtractorRegistry creates an empty registry
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		parsers: make(map[pricing.Source]SourceParser),
	}
}

// NewDefaultRegistry creates a registry with the TCGplayer, Cardmarket and
// PriceCharting parsers.
func NewDefaultRegistry() *ExtractorRegistry {
	r := NewExtractorRegistry()
	for _, p := range []SourceParser{NewTCGPlayerParser(), NewCardmarketParser(), NewPriceChartingParser()} {
		_ = r.Register(p)
	}
	return r
}

// Register adds a parser to the registry
func (r *ExtractorRegistry) Register(parser SourceParser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	source := parser.Source()
	if _, exists := r.parsers[source]; exists {
		return fmt.Errorf("%w: %s", ErrParserAlreadyRegistered, source)
	}

	r.parsers[source] = parser
	return nil
}

// Get retrieves a parser by source
func (r *ExtractorRegistry) Get(source pricing.Source) (SourceParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, exists := r.parsers[source]
	return parser, exists
}

// Sources returns the registered sources, built-in marketplaces first and the
// rest sorted by name.
func (r *ExtractorRegistry) Sources() []pricing.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]pricing.Source, 0, len(r.parsers))
	builtin := make(map[pricing.Source]bool)
	for _, s := range pricing.AllSources() {
		builtin[s] = true
		if _, ok := r.parsers[s]; ok {
			sources = append(sources, s)
		}
	}

	var extra []pricing.Source
	for s := range r.parsers {
		if !builtin[s] {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(sources, extra...)
}

// Count returns the number of registered parsers
func (r *ExtractorRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.parsers)
}
