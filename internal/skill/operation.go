package skill

import (
	"database/sql"

	"skillsync/internal/model"
)

// Operation kinds recorded in the local sync log.
const (
	OpPush     = "push"
	OpPull     = "pull"
	OpRollback = "rollback"
	OpExport   = "export"
)

// Operation statuses. An operation starts as "started" and is finished
// exactly once as "completed" or "failed".
const (
	OpStatusStarted   = "started"
	OpStatusCompleted = "completed"
	OpStatusFailed    = "failed"
)

// beginOperation records the start of a mutating operation in the local log.
// Bookkeeping failures are logged and swallowed: a broken sync log must not
// block the sync itself. Returns nil when the record could not be created.
func (s *SyncService) beginOperation(kind, skillID string) *model.SyncOperation {
	op := &model.SyncOperation{
		SkillID:   skillID,
		Operation: kind,
		Status:    OpStatusStarted,
		StartedAt: s.clock.Now(),
	}
	if err := s.database.CreateOperation(op); err != nil {
		s.logger.Warn("recording operation start failed", "operation", kind, "skill_id", skillID, "error", err)
		return nil
	}
	return op
}

// finishOperation closes out an operation record. A nil op (begin failed)
// is a no-op. When err is non-nil the status is "failed" and the error text
// replaces the detail.
func (s *SyncService) finishOperation(op *model.SyncOperation, version int64, detail string, err error) {
	if op == nil {
		return
	}
	status := OpStatusCompleted
	if err != nil {
		status = OpStatusFailed
		detail = err.Error()
	}
	finishedAt := s.clock.Now()
	if ferr := s.database.FinishOperation(op.ID, status, version, detail, finishedAt); ferr != nil {
		s.logger.Warn("recording operation finish failed", "operation", op.Operation, "id", op.ID, "error", ferr)
	}
	op.Status = status
	op.Version = version
	op.Detail = detail
	op.FinishedAt = sql.NullTime{Time: finishedAt, Valid: true}
}
