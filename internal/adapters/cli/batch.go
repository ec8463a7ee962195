package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/adapters/payload"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/services"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/types"
	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/domain/trading"
	"github.com/andrescamacho/cardarb-go/pkg/utils"
)

// batchEntry is one line of batch output
type batchEntry struct {
	File          string                `json:"file"`
	Card          string                `json:"card,omitempty"`
	Set           string                `json:"set,omitempty"`
	PricePoints   int                   `json:"price_points"`
	Opportunities int                   `json:"opportunities"`
	Best          *types.OpportunityDTO `json:"best,omitempty"`
	ScanID        string                `json:"scan_id,omitempty"`
	Error         string                `json:"error,omitempty"`
}

// NewBatchCommand creates the batch command
func NewBatchCommand() *cobra.Command {
	var workers int
	var product string
	var record bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Scan every card payload in a directory",
		Long: `Scan every *.json card payload in a directory concurrently.

Each card is scanned independently; a payload that cannot be read is
reported and does not stop the batch.

Examples:
  cardarb batch ./payloads
  cardarb batch ./payloads --workers 8 --record
  cardarb batch ./payloads --product "Charizard #4"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil, appOptions{requireHistory: record})
			if err != nil {
				return err
			}
			defer a.Close()

			refs, err := payload.ListDir(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Scanner.Workers
			}

			ctx := a.context(cmd.Context())
			start := time.Now()
			scanner := services.NewBatchScanner(a.provider, payload.NewFileLoader(nil), workers)
			items, err := scanner.ScanAll(ctx, refs)
			if err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}

			var filter *pricing.CardIdentity
			if product != "" {
				identity := payload.ParseProduct(product)
				filter = &identity
			}

			entries, err := buildBatchEntries(ctx, items, filter, record, a.history)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, entries)
			}
			displayBatch(out, entries, time.Since(start))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", services.DefaultBatchWorkers, "Concurrent scans")
	cmd.Flags().StringVar(&product, "product", "", "Only report cards matching \"Name\" or \"Name #Number\"")
	cmd.Flags().BoolVar(&record, "record", false, "Store a summary of every scan in the history database")

	return cmd
}

func buildBatchEntries(
	ctx context.Context,
	items []services.BatchItem,
	filter *pricing.CardIdentity,
	record bool,
	history trading.ScanRecordRepository,
) ([]batchEntry, error) {
	matcher := payload.NewExactNameMatcher()
	entries := make([]batchEntry, 0, len(items))

	for _, item := range items {
		entry := batchEntry{File: filepath.Base(item.Ref)}
		if item.Err != nil {
			entry.Error = item.Err.Error()
			entries = append(entries, entry)
			continue
		}

		result := item.Result
		if filter != nil {
			if _, _, ok := matcher.FindBestMatch(*filter, []pricing.CardIdentity{result.Card.Identity()}); !ok {
				continue
			}
		}

		entry.Card = result.Card.Name
		entry.Set = result.Card.SetName
		entry.PricePoints = len(result.PricePoints)
		entry.Opportunities = len(result.Opportunities)
		if best := result.Best(); best != nil {
			entry.Best = types.NewOpportunityDTO(best)
		}

		if record && history != nil {
			scanID := utils.GenerateScanID("batch", result.Card.Name)
			rec, err := trading.NewScanRecord(scanID, result.Card.Name, result.Card.SetName,
				string(result.BaseCurrency), len(result.PricePoints), result.Opportunities, time.Now().UTC())
			if err != nil {
				entry.Error = err.Error()
			} else if err := history.Save(ctx, rec); err != nil {
				return nil, fmt.Errorf("failed to record scan of %s: %w", item.Ref, err)
			} else {
				entry.ScanID = scanID
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func displayBatch(out io.Writer, entries []batchEntry, elapsed time.Duration) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tCARD\tPOINTS\tOPPS\tBEST\tPROFIT\tMARGIN")

	withArbitrage, failed := 0, 0
	for _, e := range entries {
		if e.Error != "" {
			failed++
			fmt.Fprintf(w, "%s\t✗ %s\t\t\t\t\t\n", e.File, e.Error)
			continue
		}
		if e.Best == nil {
			fmt.Fprintf(w, "%s\t%s\t%d\t0\t-\t\t\n", e.File, e.Card, e.PricePoints)
			continue
		}
		withArbitrage++
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s → %s\t%.2f\t%.1f%%\n",
			e.File, e.Card, e.PricePoints, e.Opportunities,
			e.Best.BuySource, e.Best.SellSource, e.Best.Profit, e.Best.ProfitMargin)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d cards, %d with arbitrage, %d failed (%s)\n",
		len(entries), withArbitrage, failed, elapsed.Round(time.Millisecond))
}
