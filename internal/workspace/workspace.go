// Package workspace manages a skill's local directory: scanning the file set
// with content fingerprints, writing pulled versions back, and reading and
// writing the sync metadata file.
package workspace

import "skillsync/internal/skill"

// MetaFileName is the per-workspace sync metadata file. It lives in the
// workspace root and is never part of the synced file set.
const MetaFileName = ".skillhub.json"

// IgnoreFileName holds extra per-workspace ignore patterns, one per line.
const IgnoreFileName = ".skillsyncignore"

// skipNames are never synced in either direction: not collected by Scan and
// never deleted by WriteFiles cleanup.
var skipNames = map[string]bool{
	".git":         true,
	".DS_Store":    true,
	MetaFileName:   true,
	".gitignore":   true,
	"Thumbs.db":    true,
	IgnoreFileName: true,
}

// Manager operates on workspace directories. The configured patterns apply
// to every workspace; each workspace may add its own in its ignore file.
type Manager struct {
	ignorePatterns []string
}

var _ skill.Workspace = (*Manager)(nil)

// NewManager creates a Manager with the given global ignore patterns.
func NewManager(ignorePatterns []string) *Manager {
	return &Manager{ignorePatterns: ignorePatterns}
}
