package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"skillsync/internal/fingerprint"
	"skillsync/internal/model"
)

// Scan walks the workspace and returns its file set with content hashes,
// sorted by path. Skip-list entries and ignored paths are left out. Files
// whose content is not valid UTF-8 are returned with IsBinary set and no
// content; they still carry a hash so presence and change detection work.
func (m *Manager) Scan(root string) ([]model.SkillFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat workspace: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace is not a directory: %s", root)
	}

	matcher, err := m.matcherFor(root)
	if err != nil {
		return nil, err
	}

	var files []model.SkillFile
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
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}

		file := model.SkillFile{
			Filepath:    rel,
			ContentHash: fingerprint.Sum(content),
			Size:        int64(len(content)),
		}
		if utf8.Valid(content) {
			file.Content = string(content)
		} else {
			file.IsBinary = true
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Filepath < files[j].Filepath })
	return files, nil
}

// matcherFor combines the manager's global ignore patterns with the
// workspace's own ignore file.
func (m *Manager) matcherFor(root string) (*IgnoreMatcher, error) {
	local, err := ParseIgnoreFile(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	patterns := append(append([]string(nil), m.ignorePatterns...), local...)
	return NewIgnoreMatcher(patterns), nil
}
