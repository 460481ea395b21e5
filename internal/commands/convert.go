package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bankview-dev/bankview/internal/config"
	"github.com/bankview-dev/bankview/internal/exchange"
)

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <amount> <currency>",
		Short: "Convert an amount to the reference currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}

			client, err := exchange.New(config.FromEnv())
			if err != nil {
				return err
			}

			converted, err := client.Convert(cmd.Context(), amount, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", converted.StringFixed(2), client.Reference())
			return nil
		},
	}
}
