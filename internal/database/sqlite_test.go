package database

import (
	"testing"
	"time"

	"skillsync/internal/model"
)

// newTestDB creates a new in-memory database with schema applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testWorkspace(id, skillID, rootPath string) *model.Workspace {
	return &model.Workspace{
		ID:        id,
		SkillID:   skillID,
		SkillSlug: "writing-helper",
		RootPath:  rootPath,
		CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteDatabase_FindWorkspaceByPath(t *testing.T) {
	t.Run("returns nil when workspace not tracked", func(t *testing.T) {
		db := newTestDB(t)

		ws, err := db.FindWorkspaceByPath("/nonexistent/path")
		if err != nil {
			t.Fatalf("FindWorkspaceByPath() error = %v", err)
		}
		if ws != nil {
			t.Errorf("FindWorkspaceByPath() = %v, want nil", ws)
		}
	})

	t.Run("finds tracked workspace", func(t *testing.T) {
		db := newTestDB(t)

		created := testWorkspace("ws-1", "sk-1", "/home/u/skills/writing")
		if err := db.CreateWorkspace(created); err != nil {
			t.Fatalf("CreateWorkspace() error = %v", err)
		}

		found, err := db.FindWorkspaceByPath("/home/u/skills/writing")
		if err != nil {
			t.Fatalf("FindWorkspaceByPath() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindWorkspaceByPath() returned nil, want workspace")
		}
		if found.ID != created.ID {
			t.Errorf("ID = %v, want %v", found.ID, created.ID)
		}
		if found.SkillID != created.SkillID {
			t.Errorf("SkillID = %v, want %v", found.SkillID, created.SkillID)
		}
		if found.SkillSlug != created.SkillSlug {
			t.Errorf("SkillSlug = %v, want %v", found.SkillSlug, created.SkillSlug)
		}
		if !found.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", found.CreatedAt, created.CreatedAt)
		}
	})
}

func TestSQLiteDatabase_CreateWorkspace(t *testing.T) {
	t.Run("rejects duplicate root path", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.CreateWorkspace(testWorkspace("ws-1", "sk-1", "/home/u/skills/writing")); err != nil {
			t.Fatalf("CreateWorkspace() error = %v", err)
		}

		err := db.CreateWorkspace(testWorkspace("ws-2", "sk-2", "/home/u/skills/writing"))
		if err == nil {
			t.Error("CreateWorkspace() with duplicate root path expected error, got nil")
		}
	})
}

func TestSQLiteDatabase_ListWorkspaces(t *testing.T) {
	t.Run("empty database", func(t *testing.T) {
		db := newTestDB(t)

		list, err := db.ListWorkspaces()
		if err != nil {
			t.Fatalf("ListWorkspaces() error = %v", err)
		}
		if len(list) != 0 {
			t.Errorf("ListWorkspaces() returned %d workspaces, want 0", len(list))
		}
	})

	t.Run("returns all tracked workspaces", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.CreateWorkspace(testWorkspace("ws-1", "sk-1", "/home/u/skills/writing")); err != nil {
			t.Fatalf("CreateWorkspace() error = %v", err)
		}
		if err := db.CreateWorkspace(testWorkspace("ws-2", "sk-2", "/home/u/skills/review")); err != nil {
			t.Fatalf("CreateWorkspace() error = %v", err)
		}

		list, err := db.ListWorkspaces()
		if err != nil {
			t.Fatalf("ListWorkspaces() error = %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("ListWorkspaces() returned %d workspaces, want 2", len(list))
		}
	})
}

func TestSQLiteDatabase_CreateOperation(t *testing.T) {
	db := newTestDB(t)

	op := &model.SyncOperation{
		SkillID:   "sk-1",
		Operation: "push",
		Status:    "started",
		StartedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := db.CreateOperation(op); err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	if op.ID == 0 {
		t.Error("CreateOperation() did not assign an id")
	}

	second := &model.SyncOperation{
		SkillID:   "sk-1",
		Operation: "pull",
		Status:    "started",
		StartedAt: time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC),
	}
	if err := db.CreateOperation(second); err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	if second.ID <= op.ID {
		t.Errorf("operation ids not increasing: first = %d, second = %d", op.ID, second.ID)
	}
}

func TestSQLiteDatabase_FinishOperation(t *testing.T) {
	db := newTestDB(t)

	op := &model.SyncOperation{
		SkillID:   "sk-1",
		Operation: "push",
		Status:    "started",
		StartedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := db.CreateOperation(op); err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}

	finishedAt := time.Date(2025, 3, 10, 9, 1, 30, 0, time.UTC)
	if err := db.FinishOperation(op.ID, "completed", 4, "12 files", finishedAt); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}

	ops, err := db.ListOperations("sk-1", 10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("ListOperations() returned %d operations, want 1", len(ops))
	}

	got := ops[0]
	if got.Status != "completed" {
		t.Errorf("Status = %q, want %q", got.Status, "completed")
	}
	if got.Version != 4 {
		t.Errorf("Version = %d, want 4", got.Version)
	}
	if got.Detail != "12 files" {
		t.Errorf("Detail = %q, want %q", got.Detail, "12 files")
	}
	if !got.FinishedAt.Valid {
		t.Fatal("FinishedAt not set")
	}
	if !got.FinishedAt.Time.Equal(finishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt.Time, finishedAt)
	}
}

func TestSQLiteDatabase_ListOperations(t *testing.T) {
	db := newTestDB(t)

	for i, skillID := range []string{"sk-1", "sk-2", "sk-1", "sk-1"} {
		op := &model.SyncOperation{
			SkillID:   skillID,
			Operation: "push",
			Status:    "completed",
			StartedAt: time.Date(2025, 3, 10, 9, i, 0, 0, time.UTC),
		}
		if err := db.CreateOperation(op); err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
	}

	t.Run("filters by skill id", func(t *testing.T) {
		ops, err := db.ListOperations("sk-1", 0)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 3 {
			t.Fatalf("ListOperations() returned %d operations, want 3", len(ops))
		}
		for _, op := range ops {
			if op.SkillID != "sk-1" {
				t.Errorf("SkillID = %q, want sk-1", op.SkillID)
			}
		}
	})

	t.Run("empty skill id returns all", func(t *testing.T) {
		ops, err := db.ListOperations("", 0)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 4 {
			t.Fatalf("ListOperations() returned %d operations, want 4", len(ops))
		}
	})

	t.Run("newest first", func(t *testing.T) {
		ops, err := db.ListOperations("", 0)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		for i := 1; i < len(ops); i++ {
			if ops[i].ID > ops[i-1].ID {
				t.Errorf("operations not ordered newest first: %d before %d", ops[i-1].ID, ops[i].ID)
			}
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		ops, err := db.ListOperations("", 2)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("ListOperations() returned %d operations, want 2", len(ops))
		}
	})
}
