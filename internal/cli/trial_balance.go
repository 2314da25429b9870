package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	"github.com/finpulse/finpulse_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen, color.Bold)
	red   = color.New(color.FgRed, color.Bold)
)

func newTrialBalanceCmd() *cobra.Command {
	var chartPath, journalPath, currency string
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Replay a CSV journal and print the trial balance",
		Long: `Replay a CSV journal (reference,date,description,account_code,debit,credit)
against a chart of accounts and print the resulting trial balance.
Rows sharing a reference form one entry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := replay(cmd.Context(), chartPath, journalPath)
			if err != nil {
				return err
			}
			return renderTrialBalance(cmd.OutOrStdout(), engine.TrialBalance(), currency)
		},
	}
	cmd.Flags().StringVar(&chartPath, "chart", "", "YAML chart of accounts (default chart when empty)")
	cmd.Flags().StringVar(&journalPath, "journal", "", "CSV journal file")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code used to format amounts")
	_ = cmd.MarkFlagRequired("journal")
	return cmd
}

func formatCell(currency string, d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	if currency == "" {
		return exactString(d)
	}
	return utils.FormatAmount(currency, d)
}

// exactString pads d to at least two decimals without rounding away any
// further precision.
func exactString(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

func renderTrialBalance(w io.Writer, tb domain.TrialBalance, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Code\tAccount\tDebit\tCredit\t")
	for _, row := range tb.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.Code, row.AccountName, formatCell(currency, row.Debit), formatCell(currency, row.Credit))
	}
	fmt.Fprintf(tw, "\tTotal\t%s\t%s\t\n", formatCell(currency, tb.TotalDebit), formatCell(currency, tb.TotalCredit))
	if err := tw.Flush(); err != nil {
		return err
	}

	if tb.IsBalanced() {
		_, err := green.Fprintln(w, "Balanced")
		return err
	}
	_, err := red.Fprintf(w, "Unbalanced (difference %s)\n", exactString(tb.Difference()))
	return err
}
