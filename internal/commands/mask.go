package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bankview-dev/bankview/internal/mask"
)

func newMaskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mask <account or card>",
		Short: "Mask an account or card identifier for display",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			masked, err := mask.AccountOrCard(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("masking input: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), masked)
			return nil
		},
	}
}
