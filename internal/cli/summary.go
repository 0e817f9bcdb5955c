package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spendtrail/spendtrail_app/internal/dto"
)

var summaryBy string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending",
	Long: `Summarize spending across the whole ledger.

Groupings:
  category    - totals per category, largest first (default)
  day         - totals per calendar day, oldest first
  account     - totals per account, largest first
  item        - totals per item, largest first
  cumulative  - running total per day, oldest first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			rows []dto.SummaryRow
			err  error
		)
		switch summaryBy {
		case "category":
			rows, err = current.reports.TotalsByCategory(current.ctx)
		case "day":
			rows, err = current.reports.TotalsByDay(current.ctx)
		case "account":
			rows, err = current.reports.TotalsByAccount(current.ctx)
		case "item":
			rows, err = current.reports.TotalsByItem(current.ctx)
		case "cumulative":
			rows, err = current.reports.CumulativeByDay(current.ctx)
		default:
			return fmt.Errorf("unknown grouping %q, expected category, day, account, item or cumulative", summaryBy)
		}
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No expenses to summarize.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\n", row.Label, row.Total.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryBy, "by", "category", "Grouping: category, day, account, item or cumulative")
	rootCmd.AddCommand(summaryCmd)
}
