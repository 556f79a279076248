// Package skill implements the orchestration layer that keeps a local
// workspace in step with its remote version history.
//
// The service coordinates the workspace scanner, the remote client, the
// local tracking database and the archive store. Change detection never
// reads from a cache: every CheckChanges call rescans the workspace and
// refetches the remote status. Only discovery responses and version lists
// are cached, and version lists are invalidated after every successful
// push or rollback.
package skill

import (
	"errors"
	"fmt"
	"time"

	"skillsync/internal/cache"
	"skillsync/internal/model"
)

// ErrNotLinked reports that a workspace has no sync metadata. Callers can
// match it with errors.Is and suggest linking.
var ErrNotLinked = errors.New("workspace is not linked to a skill")

// SyncService is the orchestration layer that coordinates across all
// components to perform the high-level sync operations needed by the CLI.
type SyncService struct {
	client    VersionClient
	workspace Workspace
	database  Database
	archive   ArchiveStore
	encryptor Encryptor
	logger    Logger
	clock     Clock
	idgen     IDGenerator

	versions *cache.Cache[[]model.VersionEntry]
	catalog  *cache.Cache[*model.CatalogPage]
	search   *cache.Cache[[]model.CatalogSkill]
	details  *cache.Cache[*model.SkillDetail]
}

// NewSyncService creates a new SyncService with the provided dependencies.
// cacheTTL bounds how long discovery responses and version lists are served
// from memory; zero or negative disables caching entirely.
func NewSyncService(client VersionClient, workspace Workspace, database Database, archive ArchiveStore, encryptor Encryptor, logger Logger, clock Clock, idgen IDGenerator, cacheTTL time.Duration) *SyncService {
	return &SyncService{
		client:    client,
		workspace: workspace,
		database:  database,
		archive:   archive,
		encryptor: encryptor,
		logger:    logger,
		clock:     clock,
		idgen:     idgen,
		versions:  cache.New[[]model.VersionEntry](cacheTTL, clock),
		catalog:   cache.New[*model.CatalogPage](cacheTTL, clock),
		search:    cache.New[[]model.CatalogSkill](cacheTTL, clock),
		details:   cache.New[*model.SkillDetail](cacheTTL, clock),
	}
}

// resolveMeta loads the sync metadata for a workspace root and fails with
// ErrNotLinked when there is none.
func (s *SyncService) resolveMeta(root string) (*model.Meta, error) {
	meta, err := s.workspace.ReadMeta(root)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotLinked, root)
	}
	return meta, nil
}

// Link associates a local workspace with a remote skill. Re-linking to the
// same skill refreshes the slug and platform URL but keeps the synced
// version. Linking to a different skill is an error so a mistyped ID cannot
// silently redirect pushes.
func (s *SyncService) Link(root, skillID, skillSlug, platformURL string) error {
	if skillID == "" {
		return fmt.Errorf("skill id is empty")
	}

	existing, err := s.workspace.ReadMeta(root)
	if err != nil {
		return err
	}
	if existing != nil && existing.SkillID != skillID {
		return fmt.Errorf("workspace is already linked to skill %s", existing.SkillID)
	}

	meta := existing
	if meta == nil {
		meta = &model.Meta{SkillID: skillID}
	}
	meta.SkillSlug = skillSlug
	meta.PlatformURL = platformURL
	if err := s.workspace.WriteMeta(root, meta); err != nil {
		return err
	}

	// Track the workspace in the local database so it can be enumerated
	// later without walking the filesystem.
	tracked, err := s.database.FindWorkspaceByPath(root)
	if err != nil {
		return fmt.Errorf("checking for tracked workspace: %w", err)
	}
	if tracked == nil {
		ws := &model.Workspace{
			ID:        s.idgen.New(),
			SkillID:   skillID,
			SkillSlug: skillSlug,
			RootPath:  root,
			CreatedAt: s.clock.Now(),
		}
		if err := s.database.CreateWorkspace(ws); err != nil {
			return fmt.Errorf("tracking workspace: %w", err)
		}
	}

	s.logger.Info("workspace linked", "root", root, "skill_id", skillID)
	return nil
}
