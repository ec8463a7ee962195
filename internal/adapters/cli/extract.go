package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/adapters/payload"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
)

// NewExtractCommand creates the extract command
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <source> <file|->",
		Short: "Extract normalized price points from one marketplace payload",
		Long: `Extract normalized price points from one marketplace payload.

The file holds only the marketplace section (for example the "cardmarket"
object of a card payload). Prices are converted into the base currency;
placeholder values are still listed because validation is not applied.

Sources: tcgplayer, cardmarket, pricecharting (also "price_charting")

Examples:
  cardarb extract cardmarket cardmarket.json
  cardarb extract tcgplayer - < tcgplayer.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := a.context(cmd.Context())
			raw, err := payload.NewFileLoader(cmd.InOrStdin()).LoadRaw(ctx, args[1])
			if err != nil {
				return err
			}

			resp, err := a.mediator.Send(ctx, &queries.ExtractPricePointsQuery{
				Source:  args[0],
				Payload: raw,
			})
			if err != nil {
				return fmt.Errorf("failed to extract price points: %w", err)
			}
			result := resp.(*queries.ExtractPricePointsResponse)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, result)
			}
			if len(result.PricePoints) == 0 {
				fmt.Fprintf(out, "No price points found for %s.\n", result.Source)
				return nil
			}
			fmt.Fprintf(out, "%d price points from %s:\n\n", len(result.PricePoints), result.Source)
			displayPricePoints(out, result.PricePoints)
			return nil
		},
	}

	return cmd
}
