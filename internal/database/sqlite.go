// Package database persists workspace links and the local sync operation
// log in SQLite.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"skillsync/internal/database/migrations"
	"skillsync/internal/model"
	"skillsync/internal/skill"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the skill.Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

var _ skill.Database = (*SQLiteDatabase)(nil)

// NewSQLiteDatabase opens the database at path, creating the file when it
// does not exist. path can be a file path or ":memory:".
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db}
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the rest of the package expects. Exported for tools and tests that need a
// raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Foreign key enforcement is off by default in SQLite.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if path == ":memory:" {
		// Every pooled connection to :memory: gets its own empty database,
		// so the pool must stay at a single connection.
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// Workspace operations

func (s *SQLiteDatabase) FindWorkspaceByPath(rootPath string) (*model.Workspace, error) {
	row := s.db.QueryRow(
		`SELECT id, skill_id, skill_slug, root_path, created_at FROM workspaces WHERE root_path = ?`,
		rootPath)

	var ws model.Workspace
	err := row.Scan(&ws.ID, &ws.SkillID, &ws.SkillSlug, &ws.RootPath, &ws.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not tracked
		}
		return nil, fmt.Errorf("finding workspace by path: %w", err)
	}
	return &ws, nil
}

func (s *SQLiteDatabase) CreateWorkspace(ws *model.Workspace) error {
	_, err := s.db.Exec(
		`INSERT INTO workspaces (id, skill_id, skill_slug, root_path, created_at) VALUES (?, ?, ?, ?, ?)`,
		ws.ID, ws.SkillID, ws.SkillSlug, ws.RootPath, ws.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListWorkspaces() ([]*model.Workspace, error) {
	rows, err := s.db.Query(
		`SELECT id, skill_id, skill_slug, root_path, created_at FROM workspaces ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	defer rows.Close()

	var result []*model.Workspace
	for rows.Next() {
		var ws model.Workspace
		if err := rows.Scan(&ws.ID, &ws.SkillID, &ws.SkillSlug, &ws.RootPath, &ws.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workspace row: %w", err)
		}
		result = append(result, &ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workspace rows: %w", err)
	}
	return result, nil
}

// Operation log

func (s *SQLiteDatabase) CreateOperation(op *model.SyncOperation) error {
	res, err := s.db.Exec(
		`INSERT INTO operations (skill_id, operation, version, detail, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		op.SkillID, op.Operation, op.Version, op.Detail, op.Status, op.StartedAt)
	if err != nil {
		return fmt.Errorf("creating operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading new operation id: %w", err)
	}
	op.ID = id
	return nil
}

func (s *SQLiteDatabase) FinishOperation(id int64, status string, version int64, detail string, finishedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE operations SET status = ?, version = ?, detail = ?, finished_at = ? WHERE id = ?`,
		status, version, detail, finishedAt, id)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(skillID string, limit int) ([]*model.SyncOperation, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as no limit
	}

	query := `SELECT id, skill_id, operation, version, detail, status, started_at, finished_at FROM operations ORDER BY id DESC LIMIT ?`
	args := []any{limit}
	if skillID != "" {
		query = `SELECT id, skill_id, operation, version, detail, status, started_at, finished_at FROM operations WHERE skill_id = ? ORDER BY id DESC LIMIT ?`
		args = []any{skillID, limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var result []*model.SyncOperation
	for rows.Next() {
		var op model.SyncOperation
		if err := rows.Scan(&op.ID, &op.SkillID, &op.Operation, &op.Version, &op.Detail, &op.Status, &op.StartedAt, &op.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning operation row: %w", err)
		}
		result = append(result, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operation rows: %w", err)
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.Check(s.db)
}

// MigrateUp brings the database schema to the latest version.
func (s *SQLiteDatabase) MigrateUp() error {
	return migrations.Up(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
