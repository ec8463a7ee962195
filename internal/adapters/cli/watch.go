package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/cardarb-go/internal/adapters/metrics"
	"github.com/andrescamacho/cardarb-go/internal/adapters/payload"
	applogging "github.com/andrescamacho/cardarb-go/internal/application/logging"
	"github.com/andrescamacho/cardarb-go/internal/application/mediator"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/config"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/pidfile"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var interval time.Duration
	var once bool

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Rescan a payload directory periodically",
		Long: `Rescan every card payload in a directory on a fixed interval.

While running, the watcher:
- Reloads the config file when it changes; scans in flight finish with the
  old settings
- Records each scan when database.enabled is set
- Serves Prometheus metrics when metrics.enabled is set

Examples:
  cardarb watch ./payloads
  cardarb watch ./payloads --interval 10m --config config.yaml
  cardarb watch ./payloads --once`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reloads := make(chan *config.Config, 1)
			reloadErrs := make(chan error, 1)
			cfg, err := config.Watch(configPath,
				func(next *config.Config) { replaceLatest(reloads, next) },
				func(err error) { replaceLatest(reloadErrs, err) },
			)
			hotReload := true
			if config.IsConfigNotFound(err) {
				hotReload = false
				cfg, err = config.LoadConfig(configPath)
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			var opts appOptions
			if cfg.Metrics.Enabled {
				metrics.InitRegistry()
				queryCollector := metrics.NewQueryMetricsCollector()
				if err := queryCollector.Register(); err != nil {
					return fmt.Errorf("failed to register query metrics: %w", err)
				}
				opts.middleware = append(opts.middleware, metrics.PrometheusMiddleware(queryCollector))
			}

			a, err := newApp(cfg, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx = a.context(ctx)

			if cfg.Scanner.PIDFile != "" {
				pid := pidfile.New(cfg.Scanner.PIDFile)
				if err := pid.Acquire(); err != nil {
					return err
				}
				defer pid.Release()
			}

			serverErrs := make(chan error, 1)
			if cfg.Metrics.Enabled {
				collector := metrics.NewPricingMetricsCollector(a.db, cfg.Metrics.PollInterval)
				if err := collector.Register(); err != nil {
					return fmt.Errorf("failed to register pricing metrics: %w", err)
				}
				metrics.SetGlobalPricingCollector(collector)
				defer metrics.SetGlobalPricingCollector(nil)
				collector.Start(ctx)
				defer collector.Stop()

				server, err := metrics.NewServer(cfg.Metrics.Address(), cfg.Metrics.Path)
				if err != nil {
					return err
				}
				server.Start(serverErrs)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
				}()
				a.logger.Info("metrics server listening", "addr", cfg.Metrics.Address(), "path", cfg.Metrics.Path)
			}

			pinned := cmd.Flags().Changed("interval")
			interval = intervalFor(interval, pinned, cfg)
			a.logger.Info("watching payload directory",
				"dir", args[0], "interval", interval.String(), "hot_reload", hotReload)

			w := &watcher{
				dir:      args[0],
				mediator: a.mediator,
				workers:  cfg.Scanner.Workers,
				record:   a.history != nil,
			}
			if err := w.pass(ctx); err != nil {
				return err
			}
			if once {
				fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d cards, %d with arbitrage.\n", w.lastCards, w.lastArbitrage.Load())
				return nil
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					a.logger.Info("watcher stopped")
					return nil
				case err := <-serverErrs:
					return err
				case next := <-reloads:
					if err := a.provider.Reload(next.ToDomain(), a.port); err != nil {
						a.logger.Error("config reload rejected", "error", err.Error())
						continue
					}
					w.workers = next.Scanner.Workers
					if d := intervalFor(interval, pinned, next); d != interval {
						interval = d
						ticker.Reset(interval)
					}
					a.logger.Info("config reloaded",
						"generation", a.provider.Generation(), "interval", interval.String())
				case err := <-reloadErrs:
					metrics.RecordConfigReload(false)
					a.logger.Error("config reload failed", "error", err.Error())
				case <-ticker.C:
					if err := w.pass(ctx); err != nil {
						if errors.Is(err, context.Canceled) {
							return nil
						}
						return err
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Minute, "Time between scans (default from scanner.interval)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single pass and exit")

	return cmd
}

// intervalFor returns the scan interval cfg asks for. An explicit --interval
// flag always wins.
func intervalFor(current time.Duration, pinned bool, cfg *config.Config) time.Duration {
	if pinned || cfg == nil || cfg.Scanner.Interval <= 0 {
		return current
	}
	return cfg.Scanner.Interval
}

// watcher runs one scan pass over a directory through the mediator
type watcher struct {
	dir      string
	mediator mediator.Mediator
	workers  int
	record   bool

	lastCards     int
	lastArbitrage atomic.Int64
}

func (w *watcher) pass(ctx context.Context) error {
	refs, err := payload.ListDir(w.dir)
	if err != nil {
		return err
	}

	loader := payload.NewFileLoader(nil)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	w.lastArbitrage.Store(0)

	for _, ref := range refs {
		g.Go(func() error {
			card, err := loader.Load(gctx, ref)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				applogging.LoggerFromContext(gctx).Log(pricing.LevelWarning, "skipping payload", map[string]interface{}{
					"file":  ref,
					"error": err.Error(),
				})
				return nil
			}

			resp, err := w.mediator.Send(gctx, &queries.FindArbitrageOpportunitiesQuery{
				Card:   card,
				Limit:  1,
				Record: w.record,
			})
			if err != nil {
				applogging.LoggerFromContext(gctx).Log(pricing.LevelError, "scan failed", map[string]interface{}{
					"file":  ref,
					"error": err.Error(),
				})
				return nil
			}
			if resp.(*queries.FindArbitrageOpportunitiesResponse).HasArbitrage {
				w.lastArbitrage.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	w.lastCards = len(refs)
	return nil
}

// replaceLatest keeps only the newest value in a one-slot channel
func replaceLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
