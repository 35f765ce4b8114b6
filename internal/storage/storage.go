// Package storage holds uploaded media blobs outside the database, addressed
// by generated filename.
package storage

import (
	"context"
	"io"
)

// BlobStore persists raw upload bytes. The meme catalog owns the blob
// lifecycle: a blob is written right before its catalog record is created and
// deleted again if that record cannot be written.
type BlobStore interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}
