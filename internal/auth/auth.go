// Package auth provides the credential used to authorize remote requests.
// The token is opaque to this program: it is stored, loaded, and attached to
// requests, never inspected or refreshed. Refresh and rotation belong to the
// remote platform.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenSource yields the bearer token for remote requests. An empty token
// with a nil error means no credential is stored; callers must fail closed
// rather than send unauthenticated requests.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource returning a fixed value.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// FileTokenStore persists the token as a single line at a fixed path with
// owner-only permissions.
type FileTokenStore struct {
	path string
}

var _ TokenSource = (*FileTokenStore)(nil)

// NewFileTokenStore creates a store backed by the file at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token returns the stored token, or the empty string when none is saved.
func (s *FileTokenStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token to the store path, creating parent directories.
func (s *FileTokenStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing when no token is saved is a no-op.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
