package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"skillsync/internal/diff"
	"skillsync/internal/model"
	"skillsync/internal/skill"
)

// MockVersion is one stored version of a skill in the mock remote.
type MockVersion struct {
	Files     []model.SkillFile
	Summary   string
	Source    string
	CreatedAt time.Time
}

// MockVersionClient is a scripted in-memory remote for service tests. Pushes
// append versions; status, pull, versions and history read them back. Catalog
// data is seeded directly on the struct.
type MockVersionClient struct {
	// Versions per skill. Index 0 holds version 1.
	skills map[string][]MockVersion

	// Scripted catalog data. DiffResult, when set, overrides the diff
	// otherwise computed from the stored versions. FileContents maps file
	// URLs to their raw content.
	CatalogPage  *model.CatalogPage
	SearchResult []model.CatalogSkill
	Details      map[string]*model.SkillDetail
	TreeEntries  []model.TreeEntry
	FileContents map[string]string
	ExportData   []byte
	DiffResult   *model.VersionDiff

	// Forced errors. When set, the matching call fails.
	StatusErr   error
	PullErr     error
	PushErr     error
	VersionsErr error
	ExportErr   error

	// Call counts, used to verify caching and freshness.
	StatusCalls      int
	PullCalls        int
	PushCalls        int
	VersionsCalls    int
	HistoryCalls     int
	DiffCalls        int
	ExportCalls      int
	CatalogCalls     int
	SearchCalls      int
	DetailCalls      int
	TreeCalls        int
	FileContentCalls int

	// Arguments of the most recent diff and push requests.
	DiffFrom        int
	DiffTo          int
	DiffWithContent bool
	LastSummary     string
}

// NewMockVersionClient creates an empty mock remote.
func NewMockVersionClient() *MockVersionClient {
	return &MockVersionClient{
		skills:       make(map[string][]MockVersion),
		Details:      make(map[string]*model.SkillDetail),
		FileContents: make(map[string]string),
	}
}

// AddVersion appends a version to a skill, bypassing Push bookkeeping.
func (m *MockVersionClient) AddVersion(skillID, summary string, files ...model.SkillFile) int {
	m.skills[skillID] = append(m.skills[skillID], MockVersion{
		Files:     files,
		Summary:   summary,
		Source:    "web",
		CreatedAt: time.Now(),
	})
	return len(m.skills[skillID])
}

// Version returns a stored version for assertions. Versions start at 1.
func (m *MockVersionClient) Version(skillID string, version int) (MockVersion, bool) {
	list := m.skills[skillID]
	if version < 1 || version > len(list) {
		return MockVersion{}, false
	}
	return list[version-1], true
}

func (m *MockVersionClient) Status(ctx context.Context, skillID string) (*model.RemoteStatus, error) {
	m.StatusCalls++
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}
	list := m.skills[skillID]
	if len(list) == 0 {
		return nil, fmt.Errorf("skill not found: %s", skillID)
	}
	head := list[len(list)-1]
	return &model.RemoteStatus{
		Version: len(list),
		Files:   model.FileHashes(head.Files),
	}, nil
}

func (m *MockVersionClient) Pull(ctx context.Context, skillID string, version int) (*model.PullResult, error) {
	m.PullCalls++
	if m.PullErr != nil {
		return nil, m.PullErr
	}
	list := m.skills[skillID]
	if len(list) == 0 {
		return nil, fmt.Errorf("skill not found: %s", skillID)
	}
	if version <= 0 {
		version = len(list)
	}
	if version > len(list) {
		return nil, fmt.Errorf("version %d not found", version)
	}
	return &model.PullResult{
		Version: version,
		Files:   list[version-1].Files,
	}, nil
}

func (m *MockVersionClient) Push(ctx context.Context, skillID string, files []model.SkillFile, changeSummary string) (int, error) {
	m.PushCalls++
	if m.PushErr != nil {
		return 0, m.PushErr
	}
	m.LastSummary = changeSummary
	m.skills[skillID] = append(m.skills[skillID], MockVersion{
		Files:     files,
		Summary:   changeSummary,
		Source:    "cli",
		CreatedAt: time.Now(),
	})
	return len(m.skills[skillID]), nil
}

func (m *MockVersionClient) Versions(ctx context.Context, skillID string) ([]model.VersionEntry, error) {
	m.VersionsCalls++
	if m.VersionsErr != nil {
		return nil, m.VersionsErr
	}
	return m.versionEntries(skillID), nil
}

func (m *MockVersionClient) History(ctx context.Context, skillID string, opts model.HistoryOptions) (*model.HistoryPage, error) {
	m.HistoryCalls++
	entries := m.versionEntries(skillID)
	total := len(entries)

	if opts.Offset > 0 {
		if opts.Offset >= len(entries) {
			entries = nil
		} else {
			entries = entries[opts.Offset:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(entries) {
		entries = entries[:opts.Limit]
	}
	return &model.HistoryPage{Versions: entries, TotalVersions: total}, nil
}

func (m *MockVersionClient) Diff(ctx context.Context, skillID string, from, to int, includeContent bool) (*model.VersionDiff, error) {
	m.DiffCalls++
	m.DiffFrom = from
	m.DiffTo = to
	m.DiffWithContent = includeContent
	if m.DiffResult != nil {
		return m.DiffResult, nil
	}
	oldV, ok := m.Version(skillID, from)
	if !ok {
		return nil, fmt.Errorf("version %d not found", from)
	}
	newV, ok := m.Version(skillID, to)
	if !ok {
		return nil, fmt.Errorf("version %d not found", to)
	}

	oldByPath := make(map[string]model.SkillFile, len(oldV.Files))
	for _, f := range oldV.Files {
		oldByPath[f.Filepath] = f
	}
	newByPath := make(map[string]model.SkillFile, len(newV.Files))
	for _, f := range newV.Files {
		newByPath[f.Filepath] = f
	}

	result := diff.Compare(model.FileHashes(newV.Files), &model.RemoteStatus{Files: model.FileHashes(oldV.Files)})
	d := &model.VersionDiff{
		Summary: model.DiffSummary{
			Added:    len(result.Added),
			Modified: len(result.Modified),
			Deleted:  len(result.Deleted),
		},
	}
	for _, path := range result.Added {
		entry := model.DiffEntry{Filepath: path, Status: model.DiffAdded}
		if includeContent {
			entry.NewContent = newByPath[path].Content
		}
		d.Changes = append(d.Changes, entry)
	}
	for _, path := range result.Modified {
		entry := model.DiffEntry{Filepath: path, Status: model.DiffModified}
		if includeContent {
			entry.OldContent = oldByPath[path].Content
			entry.NewContent = newByPath[path].Content
		}
		d.Changes = append(d.Changes, entry)
	}
	for _, path := range result.Deleted {
		entry := model.DiffEntry{Filepath: path, Status: model.DiffDeleted}
		if includeContent {
			entry.OldContent = oldByPath[path].Content
		}
		d.Changes = append(d.Changes, entry)
	}
	return d, nil
}

func (m *MockVersionClient) Export(ctx context.Context, skillID string, w io.Writer) (int64, error) {
	m.ExportCalls++
	if m.ExportErr != nil {
		return 0, m.ExportErr
	}
	n, err := io.Copy(w, bytes.NewReader(m.ExportData))
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (m *MockVersionClient) Catalog(ctx context.Context, query model.CatalogQuery) (*model.CatalogPage, error) {
	m.CatalogCalls++
	if m.CatalogPage != nil {
		return m.CatalogPage, nil
	}
	return &model.CatalogPage{}, nil
}

func (m *MockVersionClient) Search(ctx context.Context, query model.SearchQuery) ([]model.CatalogSkill, error) {
	m.SearchCalls++
	return m.SearchResult, nil
}

func (m *MockVersionClient) Detail(ctx context.Context, slug string) (*model.SkillDetail, error) {
	m.DetailCalls++
	detail, ok := m.Details[slug]
	if !ok {
		return nil, fmt.Errorf("skill not found: %s", slug)
	}
	return detail, nil
}

func (m *MockVersionClient) Tree(ctx context.Context, skillID string) ([]model.TreeEntry, error) {
	m.TreeCalls++
	return m.TreeEntries, nil
}

func (m *MockVersionClient) FileContent(ctx context.Context, fileURL string) (string, error) {
	m.FileContentCalls++
	content, ok := m.FileContents[fileURL]
	if !ok {
		return "", fmt.Errorf("file content not found: %s", fileURL)
	}
	return content, nil
}

// versionEntries lists stored versions newest first, the order the real
// remote returns them in.
func (m *MockVersionClient) versionEntries(skillID string) []model.VersionEntry {
	list := m.skills[skillID]
	entries := make([]model.VersionEntry, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		v := list[i]
		var total int64
		for _, f := range v.Files {
			total += f.Size
		}
		entries = append(entries, model.VersionEntry{
			Version:       i + 1,
			ChangeSummary: v.Summary,
			Source:        v.Source,
			CreatedAt:     v.CreatedAt,
			FileCount:     len(v.Files),
			TotalSize:     total,
		})
	}
	return entries
}

// Compile-time check
var _ skill.VersionClient = (*MockVersionClient)(nil)
