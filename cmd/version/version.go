package version

import (
	"fmt"

	"github.com/batchq/batchq/logger"
	"github.com/batchq/batchq/version"
	"github.com/spf13/cobra"
)

// Cmd represents the "version" command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and version information.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		logger.Debug("Version", version.LogFields()...)
	},
}
