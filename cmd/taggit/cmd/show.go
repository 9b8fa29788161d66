package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sawshep/taggit"
	"github.com/sawshep/taggit/internal/blobstore"
)

var showCmd = &cobra.Command{
	Use:   "show <archive> <hash>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	archive, err := openArchive(args[0])
	if err != nil {
		return err
	}

	e := archive.Find(args[1])
	if e == nil {
		return fmt.Errorf("%w: %s", taggit.ErrNotFound, args[1])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "hash:  %s\n", e.Hash)
	fmt.Fprintf(out, "names: %s\n", strings.Join(e.Names, ", "))
	fmt.Fprintf(out, "tags:  %s\n", strings.Join(e.Tags, ", "))

	blobs, err := blobstore.Open(archive.FilesDir())
	if err != nil {
		return err
	}
	defer blobs.Close()

	if n, ok := blobs.Stat(e.Hash); ok {
		fmt.Fprintf(out, "copy:  %s (%s)\n", blobs.Path(e.Hash), humanize.IBytes(uint64(n)))
	}
	return nil
}
