package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sawshep/taggit"
	"github.com/sawshep/taggit/internal/blobstore"
)

var (
	addTags      []string
	addRecursive bool
)

var addCmd = &cobra.Command{
	Use:   "add <archive> <files...>",
	Short: "Add files to an archive",
	Long:  "Add files to be tracked by taggit, with optional tags. Files with identical content share one entry.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "tags to apply to every file")
	addCmd.Flags().BoolVarP(&addRecursive, "recursive", "r", false, "add the files inside directories")
	addCmd.Flags().Bool("copy", false, "copy file content into the archive")
	addCmd.Flags().Int("concurrency", 0, "number of files hashed in parallel")

	viper.BindPFlag("copy", addCmd.Flags().Lookup("copy"))
	viper.BindPFlag("concurrency", addCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	archive, err := openArchive(args[0])
	if err != nil {
		return err
	}

	opts := taggit.AddOptions{
		Tags:        addTags,
		Recursive:   addRecursive,
		Concurrency: viper.GetInt("concurrency"),
	}

	if viper.GetBool("copy") {
		blobs, err := blobstore.New(archive.FilesDir(), viper.GetInt("compression_level"))
		if err != nil {
			return err
		}
		defer blobs.Close()
		opts.Blobs = blobs
	}

	res, err := archive.Add(cmd.Context(), args[1:], opts)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	for _, skip := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "Cannot add %s to archive: %v\n", skip.Path, skip.Err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d new, merged %d", res.Inserted, res.Merged)
	if res.Copied > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", copied %d (%s)", res.Copied, humanize.IBytes(uint64(res.CopiedBytes)))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
