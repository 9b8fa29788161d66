package taggit

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/sourcegraph/conc/pool"

	"github.com/sawshep/taggit/internal/walk"
)

// AddOptions configures Add.
type AddOptions struct {
	// Tags are applied to every added file. Empty tags are ignored.
	Tags []string
	// Recursive expands directory inputs to the regular files below them.
	// Without it directories are skipped.
	Recursive bool
	// Concurrency bounds the number of files hashed at once.
	Concurrency int
	// Blobs, when set, receives a copy of every added file's content.
	Blobs BlobStore
}

// Skip is an input that was not added. Skips never abort a batch.
type Skip struct {
	Path string
	Err  error
}

func (s Skip) Error() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// AddResult summarizes one Add batch.
type AddResult struct {
	Inserted    int
	Merged      int
	Copied      int
	CopiedBytes int64
	Skipped     []Skip
	// Entries holds the stored entry for every added input, in input order.
	Entries []*Entry
}

type hashResult struct {
	hash string
	err  error
}

// Add hashes the files at paths and upserts an entry for each of them, then
// writes the archive once. Files are applied in the order given, so inputs
// with identical content merge into one entry. Unreadable inputs and
// directories are reported in AddResult.Skipped.
//
// If the final write fails the error is returned and nothing from the batch
// is durable, even though the in-memory archive was updated.
func (a *Archive) Add(ctx context.Context, paths []string, opts AddOptions) (*AddResult, error) {
	res := &AddResult{}
	tags := slices.DeleteFunc(slices.Clone(opts.Tags), func(t string) bool { return t == "" })
	files := a.expand(paths, opts.Recursive, res)

	hashes, err := hashFiles(ctx, files, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	for i, path := range files {
		if hashes[i].err != nil {
			a.skip(res, path, hashes[i].err)
			continue
		}

		hash := hashes[i].hash
		if opts.Blobs != nil && !opts.Blobs.Has(hash) {
			data, err := os.ReadFile(path)
			if err != nil {
				a.skip(res, path, err)
				continue
			}
			// The file may have changed since it was hashed; key the copy
			// and the entry by the bytes actually stored.
			if digest := HashBytes(data); digest != hash {
				a.log.Debugf("Content of %q changed while adding, using %s", path, digest)
				hash = digest
			}
			n, err := opts.Blobs.Put(hash, data)
			if err != nil {
				return nil, fmt.Errorf("copy %s: %w", path, err)
			}
			res.Copied++
			res.CopiedBytes += n
		}

		candidate := NewEntry(hash, FileName(path), tags...)

		stored, merged := a.Upsert(candidate)
		if merged {
			res.Merged++
			a.log.Debugf("Merged %q into %s", path, stored.Hash)
		} else {
			res.Inserted++
			a.log.Debugf("Inserted %q as %s", path, stored.Hash)
		}
		res.Entries = append(res.Entries, stored)
	}

	if err := a.Write(); err != nil {
		return nil, err
	}
	return res, nil
}

// expand resolves inputs to regular files, recording skips for directories
// (unless recursive) and paths that cannot be stat'ed.
func (a *Archive) expand(paths []string, recursive bool, res *AddResult) []string {
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			a.skip(res, path, err)
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		if !recursive {
			a.skip(res, path, ErrIsDirectory)
			continue
		}

		found, err := walk.Files(path)
		if err != nil {
			a.skip(res, path, err)
			continue
		}
		files = append(files, found...)
	}
	return files
}

func (a *Archive) skip(res *AddResult, path string, err error) {
	a.log.WithError(err).Warnf("Cannot add %q to archive, skipping", path)
	res.Skipped = append(res.Skipped, Skip{Path: path, Err: err})
}

func hashFiles(ctx context.Context, files []string, concurrency int) ([]hashResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	results := make([]hashResult, len(files))
	p := pool.New().WithMaxGoroutines(concurrency).WithContext(ctx)

	for i, path := range files {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hash, err := HashFile(path)
			results[i] = hashResult{hash: hash, err: err}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
