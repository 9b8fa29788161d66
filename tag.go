package taggit

import "fmt"

// Tag adds and removes tags on the entries with the given hashes. Additions
// are applied before removals. Every hash must be known; otherwise ErrNotFound
// is returned and no entry is changed. The caller persists with Write.
func (a *Archive) Tag(hashes []string, add, remove []string) error {
	targets := make([]*Entry, 0, len(hashes))
	for _, hash := range hashes {
		e := a.Find(hash)
		if e == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, hash)
		}
		targets = append(targets, e)
	}

	for _, e := range targets {
		e.AddTags(add...)
		e.RemoveTags(remove...)
	}

	a.log.Debugf("Tagged %d entries (+%v -%v)", len(targets), add, remove)
	return nil
}
