package skill

import (
	"fmt"

	"skillsync/internal/model"
)

// LocalLog returns recent entries from the local operation log, newest
// first. An empty skillID returns entries across all skills.
func (s *SyncService) LocalLog(skillID string, limit int) ([]*model.SyncOperation, error) {
	ops, err := s.database.ListOperations(skillID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

// Workspaces lists every locally tracked workspace.
func (s *SyncService) Workspaces() ([]*model.Workspace, error) {
	ws, err := s.database.ListWorkspaces()
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return ws, nil
}
