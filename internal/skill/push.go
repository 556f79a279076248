package skill

import (
	"context"
	"fmt"

	"skillsync/internal/model"
)

// PushOutcome reports a successful push.
type PushOutcome struct {
	SkillID   string
	Version   int
	FileCount int
	// Skipped lists binary files that were excluded from the upload.
	Skipped []string
}

// Push scans the workspace and uploads the complete text file set as the
// next version. Binary files are excluded with a warning. The push is
// unconditional: whatever the remote head looks like, this file set becomes
// the new head.
func (s *SyncService) Push(ctx context.Context, root, changeSummary string) (*PushOutcome, error) {
	meta, err := s.resolveMeta(root)
	if err != nil {
		return nil, err
	}

	files, err := s.workspace.Scan(root)
	if err != nil {
		return nil, err
	}

	payload := make([]model.SkillFile, 0, len(files))
	var skipped []string
	for _, f := range files {
		if f.IsBinary {
			skipped = append(skipped, f.Filepath)
			continue
		}
		payload = append(payload, f)
	}
	for _, p := range skipped {
		s.logger.Warn("skipping binary file", "skill_id", meta.SkillID, "path", p)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("workspace has no files to push: %s", root)
	}

	op := s.beginOperation(OpPush, meta.SkillID)
	version, err := s.client.Push(ctx, meta.SkillID, payload, changeSummary)
	if err != nil {
		s.finishOperation(op, 0, "", err)
		return nil, err
	}
	s.versions.Invalidate("versions:" + meta.SkillID)
	s.finishOperation(op, int64(version), fmt.Sprintf("%d files", len(payload)), nil)

	meta.Version = version
	meta.SyncedAt = s.clock.Now()
	if err := s.workspace.WriteMeta(root, meta); err != nil {
		return nil, fmt.Errorf("push succeeded as version %d but updating metadata failed: %w", version, err)
	}

	s.logger.Info("push complete", "skill_id", meta.SkillID, "version", version, "files", len(payload))
	return &PushOutcome{
		SkillID:   meta.SkillID,
		Version:   version,
		FileCount: len(payload),
		Skipped:   skipped,
	}, nil
}
