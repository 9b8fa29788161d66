package taggit

// BlobStore receives a copy of the content of added files, keyed by hash.
// internal/blobstore provides the implementation used under FilesFolder.
type BlobStore interface {
	Has(hash string) bool
	Put(hash string, data []byte) (written int64, err error)
}
