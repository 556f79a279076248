package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"skillsync/internal/model"
)

// WriteFiles replaces the workspace content with the incoming file set: every
// incoming file is written (parent directories created as needed), then local
// files absent from the set are deleted. Skip-list entries and ignored paths
// survive the cleanup, so local metadata and ignored work are never removed
// by a pull.
func (m *Manager) WriteFiles(root string, files []model.SkillFile) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}

	incoming := make(map[string]bool, len(files))
	for _, file := range files {
		target, err := resolveInRoot(root, file.Filepath)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filepath, err)
		}
		if err := os.WriteFile(target, []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", file.Filepath, err)
		}
		incoming[file.Filepath] = true
	}

	matcher, err := m.matcherFor(root)
	if err != nil {
		return err
	}

	// Delete tracked files the incoming set no longer contains. Directories
	// are left in place even when emptied.
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if skipNames[d.Name()] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		if matcher.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if incoming[rel] {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("removing stale file %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleaning workspace: %w", err)
	}
	return nil
}

// resolveInRoot joins a slash-separated relative path onto root, rejecting
// absolute paths and paths that escape the root. Incoming paths originate
// from the remote and are not trusted.
func resolveInRoot(root, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty file path")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("absolute file path not allowed: %s", rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path escapes workspace: %s", rel)
	}
	return filepath.Join(root, clean), nil
}
