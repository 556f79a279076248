package archive

import (
	"context"
	"fmt"

	"skillsync/internal/config"
	"skillsync/internal/skill"
)

// NewArchiveFromConfig creates an archive store from config. The context is
// used by the s3 backend to load AWS configuration.
func NewArchiveFromConfig(ctx context.Context, cfg config.ArchiveConfig) (skill.ArchiveStore, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.FSArchiveRoot == "" {
			return nil, fmt.Errorf("filesystem archive requires fs_archive_root")
		}
		fsa, err := NewFileSystemArchive(cfg.Name, cfg.FSArchiveRoot)
		if err != nil {
			return nil, err
		}
		return fsa, nil
	case "memory":
		return NewMemoryArchive(cfg.Name), nil
	case "s3":
		s3a, err := NewS3Archive(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3a, nil
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}
