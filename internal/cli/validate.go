package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newValidateCmd() *cobra.Command {
	var chartPath, journalPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every entry of a CSV journal against the posting rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, posted, err := replay(cmd.Context(), chartPath, journalPath)
			out := cmd.OutOrStdout()
			if err == nil {
				_, werr := green.Fprintf(out, "OK: %d entries valid\n", posted)
				return werr
			}
			errs := multierr.Errors(err)
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}
			red.Fprintf(out, "FAILED: %d valid, %d rejected\n", posted, len(errs))
			return fmt.Errorf("%d entries rejected", len(errs))
		},
	}
	cmd.Flags().StringVar(&chartPath, "chart", "", "YAML chart of accounts (default chart when empty)")
	cmd.Flags().StringVar(&journalPath, "journal", "", "CSV journal file")
	_ = cmd.MarkFlagRequired("journal")
	return cmd
}
