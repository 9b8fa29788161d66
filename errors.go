package taggit

import (
	"errors"
	"fmt"
)

var (
	ErrStorage      = errors.New("taggit: storage error")
	ErrFormat       = errors.New("taggit: format error")
	ErrNotFound     = errors.New("taggit: not found")
	ErrExists       = errors.New("taggit: archive already exists")
	ErrNotArchive   = errors.New("taggit: not an archive")
	ErrInvalidQuery = errors.New("taggit: invalid query")
	ErrIsDirectory  = errors.New("is a directory")
)

// StorageError reports that the entries file could not be opened, read or
// written. It matches ErrStorage with errors.Is.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// FormatError reports a record that could not be decoded on load or encoded
// on write. Line is 1-based; it is zero for encoding failures.
type FormatError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: invalid record %q: %v", e.Path, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error        { return e.Err }
func (e *FormatError) Is(target error) bool { return target == ErrFormat }
