package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/finpulse/finpulse_ledger/internal/utils"
	"github.com/spf13/cobra"
)

// newHashPasswordCmd prints a bcrypt hash for OPERATOR_PASSWORD_HASH. The
// password is read from stdin when no argument is given.
func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash an operator password for OPERATOR_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
