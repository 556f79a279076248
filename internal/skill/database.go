package skill

import (
	"time"

	"skillsync/internal/model"
)

// Database stores tracked workspaces and the append-only operation log.
type Database interface {
	// FindWorkspaceByPath returns the workspace with an exact root path
	// match, or nil when the path is not tracked.
	FindWorkspaceByPath(rootPath string) (*model.Workspace, error)

	// CreateWorkspace registers a workspace.
	CreateWorkspace(ws *model.Workspace) error

	// ListWorkspaces returns all tracked workspaces ordered by creation.
	ListWorkspaces() ([]*model.Workspace, error)

	// CreateOperation appends an operation record and fills in its ID.
	CreateOperation(op *model.SyncOperation) error

	// FinishOperation finalizes an operation record with its outcome and
	// finish time.
	FinishOperation(id int64, status string, version int64, detail string, finishedAt time.Time) error

	// ListOperations returns recent operations, newest first. An empty
	// skillID lists operations for all skills.
	ListOperations(skillID string, limit int) ([]*model.SyncOperation, error)

	// Close closes the database connection.
	Close() error
}
