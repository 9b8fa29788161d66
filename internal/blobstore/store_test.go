package blobstore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "a9993e364706816aba3e25717850c26c9cd0d89d"

func TestStore_PutGet(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, 2)
	require.NoError(t, err)
	defer s.Close()

	data := bytes.Repeat([]byte("abc"), 500)

	assert.False(t, s.Has(testHash))
	n, err := s.Put(testHash, data)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.True(t, s.Has(testHash))

	assert.Equal(t, filepath.Join(dir, "a9", testHash[2:]), s.Path(testHash))
	assert.FileExists(t, s.Path(testHash))

	size, ok := s.Stat(testHash)
	assert.True(t, ok)
	assert.Equal(t, n, size)

	got, err := s.Get(testHash)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_PutExistingIsNoop(t *testing.T) {
	s, err := New(t.TempDir(), 0)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Put(testHash, []byte("first"))
	require.NoError(t, err)

	n, err := s.Put(testHash, []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := s.Get(testHash)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestStore_NotFound(t *testing.T) {
	s, err := New(t.TempDir(), 2)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(testHash)
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := s.Stat(testHash)
	assert.False(t, ok)
}

func TestStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, 1)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Put(testHash, []byte("content"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "a9"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testHash[2:], entries[0].Name())
}

func TestOpen_CreatesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files")

	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.Has(testHash))
	_, ok := s.Stat(testHash)
	assert.False(t, ok)
	assert.NoDirExists(t, dir)
}

func TestOpen_ReadsCompressedBlobs(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 3)
	require.NoError(t, err)
	defer w.Close()

	data := bytes.Repeat([]byte("xyz"), 400)
	_, err = w.Put(testHash, data)
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Get(testHash)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
