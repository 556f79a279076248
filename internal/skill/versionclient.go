package skill

import (
	"context"
	"io"

	"skillsync/internal/model"
)

// VersionClient is the remote version history and catalog the service syncs
// against. Implementations carry their own credentials; the service never
// sees a token.
type VersionClient interface {
	// Status returns the remote head version and per-file hashes.
	Status(ctx context.Context, skillID string) (*model.RemoteStatus, error)

	// Pull fetches the full file contents of a version. A version of zero
	// or less requests the latest.
	Pull(ctx context.Context, skillID string, version int) (*model.PullResult, error)

	// Push uploads the complete file set as the next version and returns
	// the version number the remote assigned.
	Push(ctx context.Context, skillID string, files []model.SkillFile, changeSummary string) (int, error)

	// Versions lists all versions of a skill, newest first.
	Versions(ctx context.Context, skillID string) ([]model.VersionEntry, error)

	// History returns one page of version history.
	History(ctx context.Context, skillID string, opts model.HistoryOptions) (*model.HistoryPage, error)

	// Diff returns the remote's file-level classification between two
	// versions. The range passes through as given; a reversed range yields
	// the inverse classification.
	Diff(ctx context.Context, skillID string, from, to int, includeContent bool) (*model.VersionDiff, error)

	// Export streams the remote's export archive into w.
	Export(ctx context.Context, skillID string, w io.Writer) (int64, error)

	// Catalog returns one page of the public skill catalog.
	Catalog(ctx context.Context, query model.CatalogQuery) (*model.CatalogPage, error)

	// Search queries the catalog by free text.
	Search(ctx context.Context, query model.SearchQuery) ([]model.CatalogSkill, error)

	// Detail returns the catalog detail page for a skill slug.
	Detail(ctx context.Context, slug string) (*model.SkillDetail, error)

	// Tree lists a skill's remote files.
	Tree(ctx context.Context, skillID string) ([]model.TreeEntry, error)

	// FileContent fetches one file's raw content by the URL carried in its
	// tree entry.
	FileContent(ctx context.Context, fileURL string) (string, error)
}
