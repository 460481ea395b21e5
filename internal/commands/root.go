package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankview-dev/bankview/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bankview",
		Short:   "Browse, filter and mask bank transaction exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newMaskCommand())
	rootCmd.AddCommand(newConvertCommand())

	return rootCmd
}
