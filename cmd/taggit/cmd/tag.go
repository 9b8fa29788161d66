package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var (
	tagAdd    []string
	tagDelete []string
)

var tagCmd = &cobra.Command{
	Use:   "tag <archive> <hashes...>",
	Short: "Manage tags on entries",
	Long:  "Associate or dissociate tags with the entries identified by their content hashes.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().StringSliceVarP(&tagAdd, "add", "a", nil, "tags to associate")
	tagCmd.Flags().StringSliceVarP(&tagDelete, "delete", "d", nil, "tags to dissociate")

	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	tagAdd = slices.DeleteFunc(tagAdd, func(t string) bool { return t == "" })
	if len(tagAdd) == 0 && len(tagDelete) == 0 {
		return fmt.Errorf("nothing to do: pass --add or --delete")
	}

	archive, err := openArchive(args[0])
	if err != nil {
		return err
	}

	hashes := args[1:]
	if err := archive.Tag(hashes, tagAdd, tagDelete); err != nil {
		return err
	}
	if err := archive.Write(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(tagAdd) > 0 {
		fmt.Fprintf(out, "Associated %v with %v\n", tagAdd, hashes)
	}
	if len(tagDelete) > 0 {
		fmt.Fprintf(out, "Dissociated %v with %v\n", tagDelete, hashes)
	}
	return nil
}
