package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skillsync/internal/api"
	"skillsync/internal/archive"
	"skillsync/internal/auth"
	"skillsync/internal/config"
	"skillsync/internal/database"
	"skillsync/internal/encryption"
	"skillsync/internal/model"
	"skillsync/internal/skill"
	"skillsync/internal/workspace"
)

// SyncApp is the application layer between the CLI and SyncService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and manages the DB lifecycle on Close.
type SyncApp struct {
	cfg       *config.Config
	tokens    *auth.FileTokenStore
	workspace *workspace.Manager
	db        skill.Database
	encryptor skill.Encryptor
	service   *skill.SyncService
	logFile   *os.File
}

// NewSyncApp creates a fully wired SyncApp from the given config.
// The context is used to load AWS configuration when the archive backend
// is s3. The caller must call Close when done.
func NewSyncApp(ctx context.Context, cfg *config.Config) (*SyncApp, error) {
	tokens := auth.NewFileTokenStore(cfg.TokenPath)

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second}
	client := api.NewClient(cfg.APIBaseURL, tokens, httpClient)

	wsmgr := workspace.NewManager(cfg.Workspace.Ignore)

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date (run `skillsync config init`): %w", err)
	}

	store, err := archive.NewArchiveFromConfig(ctx, cfg.Archive)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive store: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	svc := skill.NewSyncService(client, wsmgr, db, store, enc, &slogAdapter{l: logger}, skill.RealClock{}, skill.UUIDGenerator{}, cacheTTL)

	return &SyncApp{
		cfg:       cfg,
		tokens:    tokens,
		workspace: wsmgr,
		db:        db,
		encryptor: enc,
		service:   svc,
		logFile:   logFile,
	}, nil
}

// resolveRoot turns a raw CLI path into the absolute workspace root.
func resolveRoot(rawRoot string) (string, error) {
	root, err := filepath.Abs(rawRoot)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return root, nil
}

// Link associates the given directory with a remote skill.
func (a *SyncApp) Link(rawRoot, skillID, skillSlug, platformURL string) error {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return err
	}
	return a.service.Link(root, skillID, skillSlug, platformURL)
}

// LinkedSkill returns the sync metadata of the workspace at the given path.
// Fails with skill.ErrNotLinked when the directory is not linked.
func (a *SyncApp) LinkedSkill(rawRoot string) (*model.Meta, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	meta, err := a.workspace.ReadMeta(root)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", skill.ErrNotLinked, root)
	}
	return meta, nil
}

// SkillDoc reads the descriptive header of the workspace's SKILL.md.
// A workspace without one returns nil with no error.
func (a *SyncApp) SkillDoc(rawRoot string) (*workspace.SkillDoc, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	return workspace.ReadSkillDoc(root)
}

// CheckChanges compares the workspace at the given path against its remote
// head version.
func (a *SyncApp) CheckChanges(ctx context.Context, rawRoot string) (*skill.ChangeReport, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	return a.service.CheckChanges(ctx, root)
}

// Push uploads the workspace at the given path as a new version.
func (a *SyncApp) Push(ctx context.Context, rawRoot, changeSummary string) (*skill.PushOutcome, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	return a.service.Push(ctx, root, changeSummary)
}

// Pull downloads a version into the workspace at the given path.
// version 0 means the latest.
func (a *SyncApp) Pull(ctx context.Context, rawRoot string, version int) (*skill.PullOutcome, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	return a.service.Pull(ctx, root, version)
}

// Rollback restores an older version as a new head version.
func (a *SyncApp) Rollback(ctx context.Context, rawRoot string, toVersion int) (*skill.RollbackOutcome, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	return a.service.Rollback(ctx, root, toVersion)
}

// Versions lists all versions of a skill, newest first.
func (a *SyncApp) Versions(ctx context.Context, skillID string) ([]model.VersionEntry, error) {
	return a.service.Versions(ctx, skillID)
}

// History returns a page of a skill's version history.
func (a *SyncApp) History(ctx context.Context, skillID string, opts model.HistoryOptions) (*model.HistoryPage, error) {
	return a.service.History(ctx, skillID, opts)
}

// VersionDiff compares two versions of a skill.
func (a *SyncApp) VersionDiff(ctx context.Context, skillID string, from, to int, includeContent bool) (*model.VersionDiff, error) {
	return a.service.VersionDiff(ctx, skillID, from, to, includeContent)
}

// Export stores an archive of the linked skill's current version.
func (a *SyncApp) Export(ctx context.Context, rawRoot string) (*skill.ExportOutcome, error) {
	root, err := resolveRoot(rawRoot)
	if err != nil {
		return nil, err
	}
	return a.service.Export(ctx, root)
}

// RetrieveExport streams a stored archive to w. Encrypted archives (".age"
// keys) require the passphrase that unlocks the private key.
func (a *SyncApp) RetrieveExport(ctx context.Context, key string, w io.Writer, passphrase string) error {
	var decrypt skill.DecryptionContext
	if strings.HasSuffix(key, ".age") {
		if passphrase == "" {
			return fmt.Errorf("archive %s is encrypted: a passphrase is required", key)
		}
		dc, err := a.encryptor.Unlock(passphrase)
		if err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}
		decrypt = dc
	}
	return a.service.RetrieveExport(ctx, key, w, decrypt)
}

// Catalog returns a page of the public skill catalog.
func (a *SyncApp) Catalog(ctx context.Context, query model.CatalogQuery) (*model.CatalogPage, error) {
	return a.service.Catalog(ctx, query)
}

// Search queries the platform for skills matching the query text.
func (a *SyncApp) Search(ctx context.Context, query model.SearchQuery) ([]model.CatalogSkill, error) {
	return a.service.Search(ctx, query)
}

// Detail returns the full metadata of a published skill.
func (a *SyncApp) Detail(ctx context.Context, slug string) (*model.SkillDetail, error) {
	return a.service.Detail(ctx, slug)
}

// Tree lists the remote file tree of a skill.
func (a *SyncApp) Tree(ctx context.Context, skillID string) ([]model.TreeEntry, error) {
	return a.service.Tree(ctx, skillID)
}

// FileContent fetches one file of a skill's remote tree as plain text.
func (a *SyncApp) FileContent(ctx context.Context, skillID, path string) (string, error) {
	return a.service.FileContent(ctx, skillID, path)
}

// LocalLog returns locally recorded sync operations, newest first.
// An empty skillID lists operations across all skills.
func (a *SyncApp) LocalLog(skillID string, limit int) ([]*model.SyncOperation, error) {
	return a.service.LocalLog(skillID, limit)
}

// Workspaces lists all directories linked to skills on this machine.
func (a *SyncApp) Workspaces() ([]*model.Workspace, error) {
	return a.service.Workspaces()
}

// Login stores the platform token for subsequent API calls.
func (a *SyncApp) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}
	return a.tokens.Save(token)
}

// AuthStatus reports whether a platform token is stored. The token itself
// is never returned.
func (a *SyncApp) AuthStatus() (bool, error) {
	token, err := a.tokens.Token()
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Logout removes the stored platform token.
func (a *SyncApp) Logout() error {
	return a.tokens.Clear()
}

// Close closes the database and the log file.
func (a *SyncApp) Close() error {
	var firstErr error

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
