package skill

import (
	"context"
	"fmt"

	"skillsync/internal/model"
)

// Versions lists a skill's versions, newest first. Responses are served
// from the cache within the TTL; push and rollback invalidate the entry.
func (s *SyncService) Versions(ctx context.Context, skillID string) ([]model.VersionEntry, error) {
	key := "versions:" + skillID
	if entries, ok := s.versions.Get(key); ok {
		return entries, nil
	}
	entries, err := s.client.Versions(ctx, skillID)
	if err != nil {
		return nil, err
	}
	s.versions.Put(key, entries)
	return entries, nil
}

// History returns one page of version history, uncached.
func (s *SyncService) History(ctx context.Context, skillID string, opts model.HistoryOptions) (*model.HistoryPage, error) {
	return s.client.History(ctx, skillID, opts)
}

// VersionDiff compares two versions of a skill. A to of zero or less means
// the current head; a from of zero or less means the version directly
// before to. An explicitly reversed range is passed through untouched and
// yields the remote's inverse classification.
func (s *SyncService) VersionDiff(ctx context.Context, skillID string, from, to int, includeContent bool) (*model.VersionDiff, error) {
	if to <= 0 {
		status, err := s.client.Status(ctx, skillID)
		if err != nil {
			return nil, err
		}
		to = status.Version
	}
	if from <= 0 {
		from = to - 1
	}
	if from < 1 {
		return nil, fmt.Errorf("version %d has no predecessor to diff against", to)
	}
	return s.client.Diff(ctx, skillID, from, to, includeContent)
}
