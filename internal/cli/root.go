// Package cli implements ledgerctl, an offline companion to the ledger
// service that replays CSV journals against a chart of accounts.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the ledgerctl command tree.
func NewRootCmd() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Offline tools for the Fin-Pulse ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.AddCommand(
		newTrialBalanceCmd(),
		newValidateCmd(),
		newChartCmd(),
		newHashPasswordCmd(),
	)
	return cmd
}
