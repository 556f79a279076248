package skill

import (
	"context"
	"io"
)

// ArchiveStore keeps copies of export archives under opaque string keys.
type ArchiveStore interface {
	// Put stores an archive under key. size is the number of bytes that
	// will be read from r. Storing an existing key overwrites it.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Get retrieves the archive stored under key and writes it to w.
	Get(ctx context.Context, key string, w io.Writer) error

	// Exists reports whether an archive is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// ValidateSetup verifies that the store is accessible and properly
	// configured.
	ValidateSetup(ctx context.Context) error
}
