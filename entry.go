package taggit

import (
	"slices"
	"sort"

	"github.com/scylladb/go-set/strset"
)

// Entry is one content-addressed record: a file hash, every name the content
// has been added under, and the user's tags.
//
// Names and Tags are kept sorted and free of duplicates. The JSON field names
// are shared with other taggit implementations and must not change.
type Entry struct {
	Hash  string   `json:"hash"`
	Names []string `json:"names"`
	Tags  []string `json:"tags"`
}

// NewEntry builds a candidate entry for a file with the given hash and name.
func NewEntry(hash, name string, tags ...string) *Entry {
	return &Entry{
		Hash:  hash,
		Names: normalize([]string{name}),
		Tags:  normalize(tags),
	}
}

// Combine moves the names and tags of other into e and removes duplicates.
// The hashes are not compared; callers match them first. other is consumed:
// its collections are emptied and it must not be inserted afterwards.
func (e *Entry) Combine(other *Entry) {
	if other == e {
		e.normalize()
		return
	}
	e.Names = normalize(e.Names, other.Names...)
	e.Tags = normalize(e.Tags, other.Tags...)
	other.Names = nil
	other.Tags = nil
}

// Equal reports whether e and other describe the same content.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Hash == other.Hash
}

// AddTags associates tags with the entry.
func (e *Entry) AddTags(tags ...string) {
	e.Tags = normalize(e.Tags, tags...)
}

// RemoveTags dissociates tags from the entry. Unknown tags are ignored.
func (e *Entry) RemoveTags(tags ...string) {
	rest := strset.Difference(strset.New(e.Tags...), strset.New(tags...))
	e.Tags = sorted(rest)
}

// HasTags reports whether every given tag is set on the entry.
func (e *Entry) HasTags(tags ...string) bool {
	if len(tags) == 0 {
		return true
	}
	return strset.New(e.Tags...).Has(tags...)
}

// HasName reports whether the content was ever added under name.
func (e *Entry) HasName(name string) bool {
	return slices.Contains(e.Names, name)
}

func (e *Entry) normalize() {
	e.Names = normalize(e.Names)
	e.Tags = normalize(e.Tags)
}

// normalize returns the sorted union of base and extra. Empty strings are
// kept so records written elsewhere survive a rewrite unchanged. The result
// is never nil so it encodes as [] rather than null.
func normalize(base []string, extra ...string) []string {
	s := strset.New(base...)
	s.Add(extra...)
	return sorted(s)
}

func sorted(s *strset.Set) []string {
	list := s.List()
	if list == nil {
		list = []string{}
	}
	sort.Strings(list)
	return list
}
