package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"b.txt",
		"a/one.txt",
		"a/deep/two.txt",
		".taggit/hashes.json",
		"a/.taggit/files/xx",
	} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))

	files, err := Files(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "deep", "two.txt"),
		filepath.Join(root, "a", "one.txt"),
		filepath.Join(root, "b.txt"),
	}, files)
}

func TestFiles_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{target}, files)
}

func TestFiles_MissingRoot(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
