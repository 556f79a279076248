package model

import (
	"database/sql"
	"time"
)

// SkillFile is a single file within a skill bundle.
// ContentHash is the SHA-256 fingerprint of the raw bytes and is recomputed
// whenever the content changes. Binary files (content that is not valid
// UTF-8) carry a hash but no content; they participate in change detection
// by presence and fingerprint only.
type SkillFile struct {
	Filepath    string `json:"filepath"`
	Content     string `json:"content"`
	ContentHash string `json:"content_hash"`
	Size        int64  `json:"file_size"`
	IsBinary    bool   `json:"-"`
}

// FileHash pairs a path with its content fingerprint. This is the comparison
// input on both the local and remote side.
type FileHash struct {
	Filepath    string `json:"filepath"`
	ContentHash string `json:"content_hash"`
}

// FileHashes projects a file set down to its comparison input.
func FileHashes(files []SkillFile) []FileHash {
	hashes := make([]FileHash, len(files))
	for i, f := range files {
		hashes[i] = FileHash{Filepath: f.Filepath, ContentHash: f.ContentHash}
	}
	return hashes
}

// RemoteStatus is the server-authoritative snapshot of what a skill version
// looks like: the version number and the fingerprint of every file in it.
type RemoteStatus struct {
	Version int        `json:"version"`
	Files   []FileHash `json:"files"`
}

// VersionEntry describes one immutable version of a skill. Versions start at
// 1, increase strictly, and are never edited or deleted.
type VersionEntry struct {
	Version       int          `json:"version"`
	ChangeSummary string       `json:"change_summary,omitempty"`
	Source        string       `json:"source"`
	CreatedAt     time.Time    `json:"created_at"`
	FileCount     int          `json:"file_count"`
	TotalSize     int64        `json:"total_size"`
	GitCommitOID  string       `json:"git_commit_oid,omitempty"`
	Diff          *VersionDiff `json:"diff,omitempty"`
}

// DiffStatus classifies a file's change between two versions.
type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffModified DiffStatus = "modified"
	DiffDeleted  DiffStatus = "deleted"
)

// Valid reports whether s is one of the three known classifications.
// Consumers switch exhaustively over DiffStatus; an unknown value coming off
// the wire must be rejected, not silently passed through.
func (s DiffStatus) Valid() bool {
	switch s {
	case DiffAdded, DiffModified, DiffDeleted:
		return true
	default:
		return false
	}
}

// DiffEntry is the per-file result of diffing two versions. OldContent and
// NewContent are populated only when the diff was requested with content.
type DiffEntry struct {
	Filepath   string     `json:"filepath"`
	Status     DiffStatus `json:"status"`
	OldContent string     `json:"old_content,omitempty"`
	NewContent string     `json:"new_content,omitempty"`
}

// DiffSummary counts changes by classification.
type DiffSummary struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`
}

// VersionDiff is the full result of diffing two versions of a skill.
type VersionDiff struct {
	Changes []DiffEntry `json:"changes"`
	Summary DiffSummary `json:"summary"`
}

// CompareResult is the classification of a local file set against a remote
// status snapshot. It is derived on demand and never persisted.
// HasChanges is true iff at least one of the three lists is non-empty.
type CompareResult struct {
	HasChanges bool
	Added      []string
	Modified   []string
	Deleted    []string
}

// PullResult is a version's full file set as returned by a pull.
type PullResult struct {
	Version int         `json:"version"`
	Files   []SkillFile `json:"files"`
}

// HistoryPage is one page of a skill's version history.
type HistoryPage struct {
	Versions      []VersionEntry `json:"versions"`
	TotalVersions int            `json:"total_versions"`
}

// HistoryOptions selects a page of version history. IncludeDiff asks the
// remote to annotate each entry with the diff against its immediate
// predecessor.
type HistoryOptions struct {
	Limit       int
	Offset      int
	IncludeDiff bool
}

// SearchQuery is the body of a catalog search request.
type SearchQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// CatalogQuery selects a page of the public catalog. Zero values fall back
// to the remote's defaults (page 1, limit 20, all categories).
type CatalogQuery struct {
	Page     int
	Limit    int
	Category string
	SortBy   string
	Type     string
}

// CatalogSkill is a skill as listed by the public catalog and search
// endpoints.
type CatalogSkill struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	Category     string   `json:"category"`
	SimpleScore  *float64 `json:"simple_score,omitempty"`
	SimpleRating string   `json:"simple_rating,omitempty"`
	GithubStars  *int     `json:"github_stars,omitempty"`
	RepoURL      string   `json:"repo_url"`
}

// CatalogPage is one page of the skill catalog.
type CatalogPage struct {
	Skills []CatalogSkill `json:"skills"`
	Total  int            `json:"total"`
}

// SkillDetail is the full public record for a single skill.
type SkillDetail struct {
	CatalogSkill
	LatestVersion int    `json:"latest_version,omitempty"`
	Readme        string `json:"readme,omitempty"`
}

// TreeEntry is one node of a skill's remote file listing. URL, set on files
// only, points at the raw content behind the file-content proxy.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Meta is the .skillhub.json sidecar written into a workspace root. It links
// the directory to a skill and records the last synced version.
type Meta struct {
	SkillID     string    `json:"skill_id"`
	SkillSlug   string    `json:"skill_slug"`
	Version     int       `json:"version"`
	SyncedAt    time.Time `json:"synced_at"`
	PlatformURL string    `json:"platform_url"`
}

// Workspace is a local directory linked to a skill, tracked in the local
// database.
type Workspace struct {
	ID        string
	SkillID   string
	SkillSlug string
	RootPath  string
	CreatedAt time.Time
}

// SyncOperation is one entry in the append-only local operation log.
type SyncOperation struct {
	ID         int64
	SkillID    string
	Operation  string
	Version    int64
	Detail     string
	Status     string
	StartedAt  time.Time
	FinishedAt sql.NullTime
}
