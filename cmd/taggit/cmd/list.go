package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sawshep/taggit"
	"github.com/sawshep/taggit/internal/blobstore"
)

var (
	listQuery taggit.Query
	listLong  bool
)

var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List tracked entries",
	Long:  "Query the entries tracked by taggit, optionally filtering by name, tags or an expression.",
	Example: `  taggit list photos --tags vacation,beach
  taggit list photos --match '\.jpe?g$'
  taggit list photos --where 'HasTag("beach") and len(Names) > 1'`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery.Name, "name", "n", "", "only entries added under this name")
	listCmd.Flags().StringVarP(&listQuery.NamePattern, "match", "m", "", "only entries with a name matching this regular expression")
	listCmd.Flags().StringSliceVarP(&listQuery.Tags, "tags", "t", nil, "only entries carrying all of these tags")
	listCmd.Flags().StringVarP(&listQuery.Expr, "where", "w", "", "only entries for which this expression is true")
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "show the size of copied content")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	archive, err := openArchive(args[0])
	if err != nil {
		return err
	}

	entries, err := archive.List(listQuery)
	if err != nil {
		return err
	}

	var blobs *blobstore.Store
	if listLong {
		if blobs, err = blobstore.Open(archive.FilesDir()); err != nil {
			return err
		}
		defer blobs.Close()
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		line := fmt.Sprintf("%s\t%s\t%s", e.Hash, strings.Join(e.Names, ","), strings.Join(e.Tags, ","))
		if blobs != nil {
			size := "-"
			if n, ok := blobs.Stat(e.Hash); ok {
				size = humanize.IBytes(uint64(n))
			}
			line += "\t" + size
		}
		fmt.Fprintln(out, line)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "(no entries)")
	}
	return nil
}
