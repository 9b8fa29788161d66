package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X".
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Example: `  taggit version
  taggit version --help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "taggit version: %s commit: %s built at: %s\n", Version, GitCommit, Timestamp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
