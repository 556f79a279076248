package testutil

import (
	"skillsync/internal/archive"
	"skillsync/internal/skill"
)

// NewTestArchive creates a new in-memory archive store for testing.
func NewTestArchive() skill.ArchiveStore {
	return archive.NewMemoryArchive("test-archive")
}
