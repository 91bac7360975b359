package storage

import "io"

// BlobStore archives raw roster uploads so a solve can always be traced
// back to the exact spreadsheet export it came from.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
