package skill

import "skillsync/internal/model"

// Workspace manages the local directory of a skill.
type Workspace interface {
	// Scan returns the workspace's file set with content hashes, sorted by
	// path. Binary files carry a hash but no content.
	Scan(root string) ([]model.SkillFile, error)

	// WriteFiles replaces the workspace content with the incoming file set
	// and deletes local files absent from it. Metadata and ignored files
	// survive.
	WriteFiles(root string, files []model.SkillFile) error

	// ReadMeta loads the workspace's sync metadata. An unlinked workspace
	// returns nil with no error.
	ReadMeta(root string) (*model.Meta, error)

	// WriteMeta stores the workspace's sync metadata.
	WriteMeta(root string, meta *model.Meta) error
}
