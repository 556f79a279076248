// Package archive stores export archives under opaque keys. Backends are
// selected by config: a local directory, an S3 bucket, or memory for tests.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"skillsync/internal/skill"
)

// FileSystemArchive stores archives as files under a root directory.
type FileSystemArchive struct {
	name string
	root string
}

var _ skill.ArchiveStore = (*FileSystemArchive)(nil)

// NewFileSystemArchive creates a filesystem archive rooted at the given path.
func NewFileSystemArchive(name, root string) (*FileSystemArchive, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &FileSystemArchive{name: name, root: root}, nil
}

// Put stores an archive under key. An existing archive with the same key is
// replaced atomically.
func (a *FileSystemArchive) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	destPath, err := a.keyPath(key)
	if err != nil {
		return err
	}

	// Write to a temp file in the same directory so the rename is atomic.
	tmpFile, err := os.CreateTemp(a.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing archive data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Get retrieves an archive by key and writes it to w.
func (a *FileSystemArchive) Get(ctx context.Context, key string, w io.Writer) error {
	srcPath, err := a.keyPath(key)
	if err != nil {
		return err
	}

	f, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("archive not found: %s", key)
		}
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	return nil
}

// Exists reports whether an archive is stored under key.
func (a *FileSystemArchive) Exists(ctx context.Context, key string) (bool, error) {
	path, err := a.keyPath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat archive: %w", err)
	}
	return true, nil
}

// ValidateSetup verifies that the archive root is an accessible directory.
func (a *FileSystemArchive) ValidateSetup(ctx context.Context) error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("archive root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive root is not a directory: %s", a.root)
	}
	return nil
}

// keyPath maps a key to a path under the root. Keys are opaque but must not
// carry path separators that would place the file outside the root.
func (a *FileSystemArchive) keyPath(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid archive key: %q", key)
	}
	return filepath.Join(a.root, key), nil
}
