package cli

import (
	"errors"

	"github.com/finpulse/finpulse_ledger/internal/seed"
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var useDefault bool
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print a chart of accounts as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !useDefault {
				return errors.New("nothing to print, pass --default")
			}
			return seed.WriteChart(cmd.OutOrStdout(), seed.DefaultChart)
		},
	}
	cmd.Flags().BoolVar(&useDefault, "default", false, "print the built-in default chart")
	return cmd
}
