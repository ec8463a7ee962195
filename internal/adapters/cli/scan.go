package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cardarb-go/internal/adapters/payload"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/queries"
	"github.com/andrescamacho/cardarb-go/internal/application/pricing/types"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	var limit int
	var record bool
	var explain bool

	cmd := &cobra.Command{
		Use:   "scan <file|->",
		Short: "Scan one card payload for arbitrage opportunities",
		Long: `Scan one card payload for arbitrage opportunities.

The scan will:
- Extract price points from every marketplace section of the payload
- Convert them into the base currency and attach marketplace fees
- Drop placeholder and implausible quotes
- Pair comparable quotes across marketplaces and rank the profitable ones

Use "-" to read the payload from standard input.

Examples:
  cardarb scan charizard.json
  cardarb scan charizard.json --limit 5 --record
  cardarb scan charizard.json --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(nil, appOptions{requireHistory: record})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := a.context(cmd.Context())
			card, err := payload.NewFileLoader(cmd.InOrStdin()).Load(ctx, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Scanner.Limit
			}

			resp, err := a.mediator.Send(ctx, &queries.FindArbitrageOpportunitiesQuery{
				Card:   card,
				Limit:  limit,
				Record: record,
			})
			if err != nil {
				return fmt.Errorf("failed to scan card: %w", err)
			}
			result := resp.(*queries.FindArbitrageOpportunitiesResponse)

			var explained *queries.ExplainOpportunitiesResponse
			if explain {
				resp, err := a.mediator.Send(ctx, &queries.ExplainOpportunitiesQuery{Card: card})
				if err != nil {
					return fmt.Errorf("failed to explain scan: %w", err)
				}
				explained = resp.(*queries.ExplainOpportunitiesResponse)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if explained != nil {
					return printJSON(out, struct {
						*queries.FindArbitrageOpportunitiesResponse
						Explain *queries.ExplainOpportunitiesResponse `json:"explain"`
					}{result, explained})
				}
				return printJSON(out, result)
			}

			displayScan(out, result)
			if explained != nil {
				displayExplain(out, explained)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum opportunities to display (0 for all)")
	cmd.Flags().BoolVar(&record, "record", false, "Store a summary of this scan in the history database")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show the decision for every price point pair")

	return cmd
}

// displayScan prints a human readable scan summary
func displayScan(out io.Writer, result *queries.FindArbitrageOpportunitiesResponse) {
	fmt.Fprintf(out, "%s", result.CardName)
	if result.SetName != "" {
		fmt.Fprintf(out, " (%s)", result.SetName)
	}
	fmt.Fprintln(out)
	if result.TCGPlayerSetID != "" {
		fmt.Fprintf(out, "  Set IDs:      tcgplayer=%s pricecharting=%s\n", result.TCGPlayerSetID, result.PriceChartingSetID)
	}
	fmt.Fprintf(out, "  Currency:     %s%s\n", result.BaseCurrency, formatRates(result.ExchangeRates))
	if len(result.Variants) > 0 {
		fmt.Fprintf(out, "  Variants:     %s\n", strings.Join(result.Variants, ", "))
	}
	fmt.Fprintf(out, "  Price points: %d%s\n", len(result.PricePoints), formatRejected(result.Rejected))
	if result.Recorded {
		fmt.Fprintf(out, "  Recorded:     %s\n", result.ScanID)
	}
	fmt.Fprintln(out)

	displayPricePoints(out, result.PricePoints)
	fmt.Fprintln(out)

	if !result.HasArbitrage {
		fmt.Fprintln(out, "No arbitrage opportunities found.")
		return
	}
	fmt.Fprintf(out, "Found %d arbitrage opportunities", result.TotalOpportunities)
	if len(result.Opportunities) < result.TotalOpportunities {
		fmt.Fprintf(out, " (showing %d)", len(result.Opportunities))
	}
	fmt.Fprint(out, ":\n\n")
	displayOpportunities(out, result.Opportunities)
}

// displayPricePoints prints price points as a table
func displayPricePoints(out io.Writer, points []*types.PricePointDTO) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tVARIANT\tTYPE\tPRICE\tQUOTED\tBUY COST\tSELL NET")
	for _, p := range points {
		quoted := ""
		if p.OriginalCurrency != "" {
			quoted = fmt.Sprintf("%.2f %s", p.OriginalPrice, p.OriginalCurrency)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%.2f\t%.2f\n",
			p.Source, p.Variant, p.PriceType, p.Price, quoted, p.BuyCost, p.SellNet)
	}
	w.Flush()
}

// displayOpportunities prints ranked opportunities as a table
func displayOpportunities(out io.Writer, opportunities []*types.OpportunityDTO) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tBUY\tSELL\tVARIANTS\tBUY COST\tSELL NET\tPROFIT\tMARGIN")
	for i, o := range opportunities {
		fmt.Fprintf(w, "%d\t%s %s\t%s %s\t%s\t%.2f\t%.2f\t%.2f\t%.1f%%\n",
			i+1,
			o.BuySource, o.BuyPriceType,
			o.SellSource, o.SellPriceType,
			o.VariantInfo,
			o.BuyCost, o.SellNet, o.Profit, o.ProfitMargin)
	}
	w.Flush()
}

// displayExplain prints every pair decision followed by totals
func displayExplain(out io.Writer, result *queries.ExplainOpportunitiesResponse) {
	fmt.Fprint(out, "\nPair decisions:\n\n")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUY\tSELL\tDECISION")
	for _, p := range result.Pairs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Buy, p.Sell, p.Decision)
	}
	w.Flush()

	decisions := make([]string, 0, len(result.Counts))
	for d := range result.Counts {
		decisions = append(decisions, d)
	}
	sort.Strings(decisions)
	fmt.Fprintln(out)
	for _, d := range decisions {
		fmt.Fprintf(out, "  %-24s %d\n", d+":", result.Counts[d])
	}
}

func formatRates(rates map[string]float64) string {
	if len(rates) == 0 {
		return ""
	}
	codes := make([]string, 0, len(rates))
	for c := range rates {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprintf("%s=%.4g", c, rates[c])
	}
	return " (" + strings.Join(parts, " ") + ")"
}

func formatRejected(rejected map[string]int) string {
	if len(rejected) == 0 {
		return ""
	}
	reasons := make([]string, 0, len(rejected))
	for r := range rejected {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = fmt.Sprintf("%s=%d", r, rejected[r])
	}
	return " (rejected " + strings.Join(parts, " ") + ")"
}
