package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawshep/taggit"
)

// resetFlags puts every flag of the command tree back to its default so
// values from an earlier run do not leak into the next one.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	archive := filepath.Join(t.TempDir(), "photos")
	src := t.TempDir()
	photo := filepath.Join(src, "photo.jpg")
	dup := filepath.Join(src, "photo_copy.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("pixels"), 0o644))
	require.NoError(t, os.WriteFile(dup, []byte("pixels"), 0o644))

	out, err := run(t, "init", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized taggit archive")

	_, err = run(t, "init", archive)
	assert.ErrorIs(t, err, taggit.ErrExists)

	out, err = run(t, "add", archive, photo, dup, src, "--tags", "vacation")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 new, merged 1")
	assert.Contains(t, out, "is a directory")

	hash, err := taggit.HashFile(photo)
	require.NoError(t, err)

	out, err = run(t, "tag", archive, hash, "--add", "beach")
	require.NoError(t, err)
	assert.Contains(t, out, "Associated [beach]")

	out, err = run(t, "list", archive, "--where", `HasTag("beach")`)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, hash+"\tphoto.jpg,photo_copy.jpg\tbeach,vacation", lines[0])

	out, err = run(t, "show", archive, hash)
	require.NoError(t, err)
	assert.Contains(t, out, "names: photo.jpg, photo_copy.jpg")

	_, err = run(t, "show", archive, "0000")
	assert.ErrorIs(t, err, taggit.ErrNotFound)
}

func TestCLI_NotAnArchive(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := run(t, "show", t.TempDir(), "abc")
	assert.ErrorIs(t, err, taggit.ErrNotArchive)
}

func TestCLI_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	archive := filepath.Join(t.TempDir(), "docs")
	src := t.TempDir()
	first := filepath.Join(src, "first.txt")
	second := filepath.Join(src, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("two"), 0o644))

	_, err := run(t, "init", archive)
	require.NoError(t, err)

	_, err = run(t, "add", archive, first, "--tags", "work")
	require.NoError(t, err)
	_, err = run(t, "add", archive, second)
	require.NoError(t, err)

	out, err := run(t, "list", archive, "--tags", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "first.txt")
	assert.NotContains(t, out, "second.txt")

	out, err = run(t, "list", archive)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestCLI_ReadCommandsCreateNothing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	archive := filepath.Join(t.TempDir(), "docs")
	file := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	_, err := run(t, "init", archive)
	require.NoError(t, err)
	_, err = run(t, "add", archive, file)
	require.NoError(t, err)

	filesDir := filepath.Join(archive, taggit.Folder, taggit.FilesFolder)
	require.NoError(t, os.RemoveAll(filesDir))

	hash, err := taggit.HashFile(file)
	require.NoError(t, err)

	out, err := run(t, "list", archive, "--long")
	require.NoError(t, err)
	assert.Contains(t, out, hash+"\ta.txt\t\t-")

	_, err = run(t, "show", archive, hash)
	require.NoError(t, err)

	assert.NoDirExists(t, filesDir)
}
