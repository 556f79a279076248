package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"skillsync/internal/skill"
)

// MemoryArchive is an in-memory archive store for tests.
type MemoryArchive struct {
	name string

	mu      sync.Mutex
	objects map[string][]byte
}

var _ skill.ArchiveStore = (*MemoryArchive)(nil)

// NewMemoryArchive creates an empty in-memory archive store.
func NewMemoryArchive(name string) *MemoryArchive {
	return &MemoryArchive{
		name:    name,
		objects: make(map[string][]byte),
	}
}

func (a *MemoryArchive) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading archive data: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[key] = data
	return nil
}

func (a *MemoryArchive) Get(ctx context.Context, key string, w io.Writer) error {
	a.mu.Lock()
	data, ok := a.objects[key]
	a.mu.Unlock()

	if !ok {
		return fmt.Errorf("archive not found: %s", key)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	return nil
}

func (a *MemoryArchive) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.objects[key]
	return ok, nil
}

func (a *MemoryArchive) ValidateSetup(ctx context.Context) error {
	return nil
}
