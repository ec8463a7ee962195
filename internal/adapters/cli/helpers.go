package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/cardarb-go/internal/adapters/api"
	"github.com/andrescamacho/cardarb-go/internal/adapters/persistence"
	applogging "github.com/andrescamacho/cardarb-go/internal/application/logging"
	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/config"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/database"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/logging"
)

// app bundles everything a command needs, built from one config load
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	port     *logging.SlogAdapter
	provider *services.EngineProvider
	mediator mediator.Mediator
	db       *gorm.DB
	history  *persistence.GormScanRecordRepository

	closers []io.Closer
}

type appOptions struct {
	// Open the scan history database even when database.enabled is false
	requireHistory bool
	// Extra middleware registered after logging
	middleware []mediator.Middleware
}

// newApp loads configuration and wires the engine, mediator and history store
func newApp(cfg *config.Config, opts appOptions) (*app, error) {
	if cfg == nil {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		logger:  logger,
		port:    logging.NewSlogAdapter(logger),
		closers: []io.Closer{logCloser},
	}

	engine, err := services.NewEngine(cfg.ToDomain(), a.port)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.provider = services.NewEngineProvider(engine)

	var history trading.ScanRecordRepository
	if cfg.Database.Enabled || opts.requireHistory {
		db, err := database.Open(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open scan history: %w", err)
		}
		a.db = db
		a.history = persistence.NewGormScanRecordRepository(db)
		a.closers = append(a.closers, closerFunc(func() error { return database.Close(db) }))
		history = a.history
	}

	a.mediator = mediator.NewMediator()
	a.mediator.RegisterMiddleware(applogging.LoggingMiddleware())
	for _, mw := range opts.middleware {
		a.mediator.RegisterMiddleware(mw)
	}
	if err := queries.RegisterHandlers(a.mediator, a.provider, history, shared.NewRealClock()); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// cardFetcher builds the live marketplace fetcher from the api config
func (a *app) cardFetcher() *api.CardFetcher {
	cfg := a.cfg.API
	newClient := func(service string) *api.Client {
		return api.NewClient(service, api.ClientOptions{
			RequestsPerSecond: cfg.RateLimit.Requests,
			Burst:             cfg.RateLimit.Burst,
			Timeout:           cfg.Timeout,
			MaxRetries:        cfg.Retry.MaxAttempts,
			BackoffBase:       cfg.Retry.BackoffBase,
			MaxFailures:       cfg.CircuitBreaker.MaxFailures,
			Cooldown:          cfg.CircuitBreaker.Cooldown,
			Logger:            a.port,
		})
	}

	cards := api.NewPokemonTCGClient(newClient("pokemontcg"), cfg.PokemonTCG.BaseURL, cfg.PokemonTCG.APIKey)
	var products *api.PriceChartingClient
	if cfg.PriceCharting.APIKey != "" {
		products = api.NewPriceChartingClient(newClient("pricecharting"),
			cfg.PriceCharting.BaseURL, cfg.PriceCharting.APIKey)
	}
	return api.NewCardFetcher(cards, products, a.port)
}

// context attaches the logger port so handlers and services can log
func (a *app) context(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return applogging.WithLogger(parent, a.port)
}

// Close releases resources in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
