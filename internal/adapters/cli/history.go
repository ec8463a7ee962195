package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var cardName string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scans",
		Long: `List scan summaries stored by "scan --record", "batch --record" and "watch".

Examples:
  cardarb history
  cardarb history --card Charizard --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil, appOptions{requireHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(a.context(cmd.Context()), &queries.ListScanRecordsQuery{
				CardName: cardName,
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list scan history: %w", err)
			}
			result := resp.(*queries.ListScanRecordsResponse)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, result)
			}
			if len(result.Records) == 0 {
				fmt.Fprintln(out, "No recorded scans.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SCANNED AT\tCARD\tSET\tPOINTS\tOPPS\tBEST\tPROFIT\tMARGIN")
			for _, r := range result.Records {
				best := "-"
				if r.OpportunityCount > 0 {
					best = r.BestBuy + " → " + r.BestSell
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.2f\t%.1f%%\n",
					r.ScannedAt.Format("2006-01-02 15:04:05"),
					r.CardName, r.SetName, r.PricePointCount, r.OpportunityCount,
					best, r.BestProfit, r.BestMargin)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&cardName, "card", "", "Only show scans of this card")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum records to display")

	return cmd
}
