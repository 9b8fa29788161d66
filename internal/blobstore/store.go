// Package blobstore keeps copies of archived file content.
//
// Storage layout:
//
//	dir/
//	  ab/cd123...  (content keyed by hash, git-style sharding)
//
// Blobs are written through a temporary file and renamed into place.
package blobstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sawshep/taggit/internal/compression"
)

var ErrNotFound = errors.New("blobstore: not found")

// Store implements taggit.BlobStore on the local filesystem.
type Store struct {
	dir        string
	compressor *compression.Compressor
}

// New opens a store rooted at dir. compressionLevel 0 stores content as-is.
func New(dir string, compressionLevel int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	compressor, err := compression.NewCompressor(compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	return &Store{dir: dir, compressor: compressor}, nil
}

// Open returns a store rooted at dir for lookups. Nothing is created on disk;
// a missing dir behaves like an empty store.
func Open(dir string) (*Store, error) {
	compressor, err := compression.NewCompressor(0)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	return &Store{dir: dir, compressor: compressor}, nil
}

// Put stores data under hash and returns the number of bytes written to
// disk. Existing blobs are left untouched.
func (s *Store) Put(hash string, data []byte) (int64, error) {
	path := s.Path(hash)
	if _, err := os.Stat(path); err == nil {
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	encoded := s.compressor.Compress(data)
	if err := writeFileAtomic(path, encoded); err != nil {
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}
	return int64(len(encoded)), nil
}

// Get returns the content stored under hash.
func (s *Store) Get(hash string) ([]byte, error) {
	encoded, err := os.ReadFile(s.Path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	data, err := s.compressor.Decompress(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob %s: %w", hash, err)
	}
	return data, nil
}

// Has reports whether a blob exists for hash.
func (s *Store) Has(hash string) bool {
	_, err := os.Stat(s.Path(hash))
	return err == nil
}

// Stat returns the on-disk size of the blob for hash.
func (s *Store) Stat(hash string) (int64, bool) {
	info, err := os.Stat(s.Path(hash))
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// Path returns the filesystem path for hash.
func (s *Store) Path(hash string) string {
	if len(hash) < 4 {
		return filepath.Join(s.dir, hash)
	}
	return filepath.Join(s.dir, hash[:2], hash[2:])
}

func (s *Store) Close() error {
	return s.compressor.Close()
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
