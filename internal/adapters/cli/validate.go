package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var query queries.ValidatePricePointQuery

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether a price would be accepted",
		Long: `Check whether a price would be accepted by the price validator.

The price is taken in the base currency. Passing --rarity enables the
per-rarity plausibility ceilings; passing --source builds a full price point
with that marketplace's fee terms.

Examples:
  cardarb validate --price 999.99
  cardarb validate --price 45 --rarity "Common"
  cardarb validate --price 25 --source tcgplayer --variant holofoil --price-type market`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(a.context(cmd.Context()), &query)
			if err != nil {
				return fmt.Errorf("failed to validate price: %w", err)
			}
			result := resp.(*queries.ValidatePricePointResponse)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, result)
			}
			if result.Valid {
				fmt.Fprintf(out, "✓ %.2f is valid\n", query.Price)
			} else {
				fmt.Fprintf(out, "✗ %.2f rejected: %s\n", query.Price, result.Reason)
			}
			if result.RarityClass != "" {
				fmt.Fprintf(out, "  Rarity class: %s\n", result.RarityClass)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&query.Price, "price", 0, "Price in the base currency (required)")
	cmd.Flags().StringVar(&query.Rarity, "rarity", "", "Card rarity label (e.g. \"Rare Holo\")")
	cmd.Flags().StringVar(&query.Source, "source", "", "Marketplace the price comes from")
	cmd.Flags().StringVar(&query.Variant, "variant", "normal", "Printing variant (with --source)")
	cmd.Flags().StringVar(&query.PriceType, "price-type", "market", "Price type (with --source)")
	cmd.MarkFlagRequired("price")

	return cmd
}
