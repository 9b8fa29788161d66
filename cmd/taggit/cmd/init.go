package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawshep/taggit"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new archive",
	Long:  "Initialize a new taggit archive, either in an existing folder or a new one.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := taggit.Init(dir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized taggit archive in %s\n", dir)
	return nil
}
