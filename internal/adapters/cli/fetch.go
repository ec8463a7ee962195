package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
)

// NewFetchCommand creates the fetch command
func NewFetchCommand() *cobra.Command {
	var limit int
	var record bool
	var savePath string

	cmd := &cobra.Command{
		Use:   "fetch <card-id>",
		Short: "Fetch live prices for one card and scan them",
		Long: `Fetch live prices for one card and scan them for arbitrage.

The card is read from the Pokémon TCG API, which carries TCGPlayer and
Cardmarket prices. When api.pricecharting.api_key (or PRICECHARTING_API_KEY)
is set, the matching PriceCharting product is added as a third source.

Requests are rate limited and retried with backoff; a service that keeps
failing is skipped until its circuit breaker cools down.

Examples:
  cardarb fetch swsh7-215
  cardarb fetch swsh7-215 --save payloads/umbreon.json
  cardarb fetch base1-4 --record --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil, appOptions{requireHistory: record})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := a.context(cmd.Context())
			doc, err := a.cardFetcher().Fetch(ctx, args[0])
			if err != nil {
				return err
			}

			if savePath != "" {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode payload: %w", err)
				}
				if err := os.WriteFile(savePath, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to save payload: %w", err)
				}
				a.logger.Info("payload saved", "card", args[0], "path", savePath)
			}

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Scanner.Limit
			}
			resp, err := a.mediator.Send(ctx, &queries.FindArbitrageOpportunitiesQuery{
				Card:   extraction.CardPayloadFromMap(doc),
				Limit:  limit,
				Record: record,
			})
			if err != nil {
				return fmt.Errorf("failed to scan card: %w", err)
			}
			result := resp.(*queries.FindArbitrageOpportunitiesResponse)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, result)
			}
			displayScan(out, result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum opportunities to display (0 for all)")
	cmd.Flags().BoolVar(&record, "record", false, "Store a summary of this scan in the history database")
	cmd.Flags().StringVar(&savePath, "save", "", "Also write the fetched payload to this file")

	return cmd
}
