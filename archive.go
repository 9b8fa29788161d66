package taggit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	// Folder marks a directory as an archive root.
	Folder = ".taggit"
	// FilesFolder holds copied file content, relative to Folder.
	FilesFolder = "files"
	// EntriesFile holds one JSON entry record per line, relative to Folder.
	EntriesFile = "hashes.json"
)

// Archive is the collection of entries tracked for one root directory.
//
// An Archive is owned by a single caller: it is not safe for concurrent use
// and does not detect changes made to the entries file by other processes.
type Archive struct {
	root    string
	entries []*Entry
	index   map[string]int
	log     *logrus.Entry
}

// Init creates the archive folders under root.
func Init(root string) error {
	dir := filepath.Join(root, Folder)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w in %s", ErrExists, root)
	}
	if err := os.MkdirAll(filepath.Join(dir, FilesFolder), 0o755); err != nil {
		return &StorageError{Op: "init", Path: dir, Err: err}
	}
	return nil
}

// IsArchive reports whether root contains an archive folder.
func IsArchive(root string) bool {
	info, err := os.Stat(filepath.Join(root, Folder))
	return err == nil && info.IsDir()
}

// Open loads the archive rooted at root. The entries file is created when it
// is missing. Loading is all or nothing: a single malformed line fails the
// whole call with a *FormatError and no archive is returned.
func Open(root string, opts ...Option) (*Archive, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	a := &Archive{
		root:  root,
		index: make(map[string]int),
		log:   options.Logger,
	}

	f, err := os.OpenFile(a.Path(), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: a.Path(), Err: err}
	}
	defer f.Close()

	if err := a.load(f); err != nil {
		return nil, err
	}

	a.log.Debugf("Loaded %d entries from %q", len(a.entries), a.Path())
	return a, nil
}

func (a *Archive) load(r io.Reader) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return &StorageError{Op: "read", Path: a.Path(), Err: err}
		}

		if text := bytes.TrimSpace(line); len(text) > 0 {
			if perr := a.parseLine(n, text); perr != nil {
				return perr
			}
		}

		if err != nil {
			return nil
		}
	}
}

func (a *Archive) parseLine(n int, text []byte) error {
	var e Entry
	if err := json.Unmarshal(text, &e); err != nil {
		return &FormatError{Path: a.Path(), Line: n, Text: string(text), Err: err}
	}
	if e.Hash == "" {
		return &FormatError{Path: a.Path(), Line: n, Text: string(text), Err: errors.New("missing hash")}
	}
	if _, dup := a.index[e.Hash]; dup {
		return &FormatError{Path: a.Path(), Line: n, Text: string(text), Err: errors.New("duplicate hash")}
	}

	e.normalize()
	a.index[e.Hash] = len(a.entries)
	a.entries = append(a.entries, &e)
	return nil
}

// Find returns the entry with the given hash, or nil if there is none.
func (a *Archive) Find(hash string) *Entry {
	if i, ok := a.index[hash]; ok {
		return a.entries[i]
	}
	return nil
}

// Upsert merges candidate into the stored entry with the same hash, or
// appends it when there is none. It returns the stored entry and whether a
// merge happened. After a merge candidate is consumed.
func (a *Archive) Upsert(candidate *Entry) (*Entry, bool) {
	if existing := a.Find(candidate.Hash); existing != nil {
		existing.Combine(candidate)
		return existing, true
	}

	candidate.normalize()
	a.index[candidate.Hash] = len(a.entries)
	a.entries = append(a.entries, candidate)
	return candidate, false
}

// Write replaces the entries file with the current entries, one JSON record
// per line in archive order. The new content is written to a temporary file
// next to the entries file and renamed over it, so readers see either the old
// or the new file in full.
func (a *Archive) Write() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, e := range a.entries {
		if e.Hash == "" {
			return &FormatError{Path: a.Path(), Err: errors.New("entry without hash")}
		}
		if err := enc.Encode(e); err != nil {
			return &FormatError{Path: a.Path(), Err: fmt.Errorf("encode %s: %w", e.Hash, err)}
		}
	}

	if err := writeFileAtomic(a.Path(), buf.Bytes(), 0o644); err != nil {
		return &StorageError{Op: "write", Path: a.Path(), Err: err}
	}

	a.log.Debugf("Wrote %d entries to %q", len(a.entries), a.Path())
	return nil
}

// Entries iterates the stored entries in archive order. The Hash of a yielded
// entry must not be modified.
func (a *Archive) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range a.entries {
			if !yield(e) {
				return
			}
		}
	}
}

func (a *Archive) Len() int         { return len(a.entries) }
func (a *Archive) Root() string     { return a.root }
func (a *Archive) Dir() string      { return filepath.Join(a.root, Folder) }
func (a *Archive) Path() string     { return filepath.Join(a.Dir(), EntriesFile) }
func (a *Archive) FilesDir() string { return filepath.Join(a.Dir(), FilesFolder) }

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
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
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
