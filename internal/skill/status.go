package skill

import (
	"context"

	"skillsync/internal/diff"
	"skillsync/internal/model"
)

// ChangeReport summarizes how a workspace currently differs from the
// remote head.
type ChangeReport struct {
	SkillID       string
	SkillSlug     string
	LocalVersion  int
	RemoteVersion int
	Result        *model.CompareResult
}

// CheckChanges compares the workspace against the remote head. Both sides
// are read fresh on every call: the workspace is rescanned and the remote
// status refetched, so the report never reflects stale state.
func (s *SyncService) CheckChanges(ctx context.Context, root string) (*ChangeReport, error) {
	meta, err := s.resolveMeta(root)
	if err != nil {
		return nil, err
	}

	files, err := s.workspace.Scan(root)
	if err != nil {
		return nil, err
	}

	remote, err := s.client.Status(ctx, meta.SkillID)
	if err != nil {
		return nil, err
	}

	report := &ChangeReport{
		SkillID:      meta.SkillID,
		SkillSlug:    meta.SkillSlug,
		LocalVersion: meta.Version,
		Result:       diff.Compare(model.FileHashes(files), remote),
	}
	if remote != nil {
		report.RemoteVersion = remote.Version
	}

	s.logger.Debug("change check complete",
		"skill_id", meta.SkillID,
		"added", len(report.Result.Added),
		"modified", len(report.Result.Modified),
		"deleted", len(report.Result.Deleted))
	return report, nil
}
