package skill

import (
	"context"
	"fmt"
)

// PullOutcome reports a successful pull.
type PullOutcome struct {
	SkillID   string
	Version   int
	FileCount int
}

// Pull downloads a version and overwrites the workspace with it. A version
// of zero or less pulls the latest. Local files absent from the pulled
// version are removed, except ignored paths and sync bookkeeping.
func (s *SyncService) Pull(ctx context.Context, root string, version int) (*PullOutcome, error) {
	meta, err := s.resolveMeta(root)
	if err != nil {
		return nil, err
	}

	op := s.beginOperation(OpPull, meta.SkillID)
	result, err := s.client.Pull(ctx, meta.SkillID, version)
	if err != nil {
		s.finishOperation(op, 0, "", err)
		return nil, err
	}

	if err := s.workspace.WriteFiles(root, result.Files); err != nil {
		s.finishOperation(op, int64(result.Version), "", err)
		return nil, err
	}

	meta.Version = result.Version
	meta.SyncedAt = s.clock.Now()
	if err := s.workspace.WriteMeta(root, meta); err != nil {
		s.finishOperation(op, int64(result.Version), "", err)
		return nil, err
	}
	s.finishOperation(op, int64(result.Version), fmt.Sprintf("%d files", len(result.Files)), nil)

	s.logger.Info("pull complete", "skill_id", meta.SkillID, "version", result.Version, "files", len(result.Files))
	return &PullOutcome{
		SkillID:   meta.SkillID,
		Version:   result.Version,
		FileCount: len(result.Files),
	}, nil
}

// RollbackOutcome reports a successful rollback.
type RollbackOutcome struct {
	SkillID string
	// Restored is the version whose content was brought back.
	Restored int
	// NewVersion is the head the restored content was pushed as.
	NewVersion int
	FileCount  int
}

// Rollback restores an older version by appending it as a new head: the
// target version's files are pulled, pushed as the next version, and then
// written into the workspace. History is never rewritten, so the versions
// in between remain reachable.
func (s *SyncService) Rollback(ctx context.Context, root string, toVersion int) (*RollbackOutcome, error) {
	if toVersion <= 0 {
		return nil, fmt.Errorf("rollback target version must be positive, got %d", toVersion)
	}
	meta, err := s.resolveMeta(root)
	if err != nil {
		return nil, err
	}

	op := s.beginOperation(OpRollback, meta.SkillID)
	pulled, err := s.client.Pull(ctx, meta.SkillID, toVersion)
	if err != nil {
		s.finishOperation(op, 0, "", err)
		return nil, err
	}

	summary := fmt.Sprintf("Rollback to version %d", toVersion)
	newVersion, err := s.client.Push(ctx, meta.SkillID, pulled.Files, summary)
	if err != nil {
		s.finishOperation(op, 0, "", err)
		return nil, err
	}
	s.versions.Invalidate("versions:" + meta.SkillID)

	if err := s.workspace.WriteFiles(root, pulled.Files); err != nil {
		s.finishOperation(op, int64(newVersion), "", err)
		return nil, fmt.Errorf("rollback pushed version %d but updating the workspace failed: %w", newVersion, err)
	}
	meta.Version = newVersion
	meta.SyncedAt = s.clock.Now()
	if err := s.workspace.WriteMeta(root, meta); err != nil {
		s.finishOperation(op, int64(newVersion), "", err)
		return nil, fmt.Errorf("rollback pushed version %d but updating metadata failed: %w", newVersion, err)
	}
	s.finishOperation(op, int64(newVersion), summary, nil)

	s.logger.Info("rollback complete", "skill_id", meta.SkillID, "restored", toVersion, "version", newVersion)
	return &RollbackOutcome{
		SkillID:    meta.SkillID,
		Restored:   toVersion,
		NewVersion: newVersion,
		FileCount:  len(pulled.Files),
	}, nil
}
