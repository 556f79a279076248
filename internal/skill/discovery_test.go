package skill_test

import (
	"context"
	"testing"
	"time"

	"skillsync/internal/model"
	"skillsync/internal/skill"
	"skillsync/internal/testutil"
	"skillsync/internal/workspace"
)

func TestSyncService_Discovery(t *testing.T) {
	setup := func(t *testing.T, ttl time.Duration) (*skill.SyncService, *testutil.MockVersionClient) {
		t.Helper()
		client := testutil.NewMockVersionClient()
		svc := skill.NewSyncService(client, workspace.NewManager(nil), testutil.NewTestDatabase(t), testutil.NewTestArchive(), testutil.NewTestEncryptor(), skill.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator(), ttl)
		return svc, client
	}

	t.Run("caches catalog pages per query", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.CatalogPage = &model.CatalogPage{
			Skills: []model.CatalogSkill{{ID: "skill-1", Name: "Writing Helper", Slug: "writing-helper"}},
			Total:  1,
		}

		query := model.CatalogQuery{Page: 1, Limit: 20}
		for i := 0; i < 2; i++ {
			page, err := svc.Catalog(ctx, query)
			if err != nil {
				t.Fatalf("Catalog() error = %v", err)
			}
			if page.Total != 1 {
				t.Errorf("Total = %d, want 1", page.Total)
			}
		}
		if client.CatalogCalls != 1 {
			t.Errorf("CatalogCalls = %d, want 1", client.CatalogCalls)
		}

		// A different page misses the cache.
		if _, err := svc.Catalog(ctx, model.CatalogQuery{Page: 2, Limit: 20}); err != nil {
			t.Fatalf("Catalog() error = %v", err)
		}
		if client.CatalogCalls != 2 {
			t.Errorf("CatalogCalls = %d, want 2", client.CatalogCalls)
		}
	})

	t.Run("caches search results per query", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.SearchResult = []model.CatalogSkill{{ID: "skill-1", Slug: "writing-helper"}}

		for i := 0; i < 2; i++ {
			skills, err := svc.Search(ctx, model.SearchQuery{Query: "writing", Limit: 10})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(skills) != 1 {
				t.Errorf("got %d results, want 1", len(skills))
			}
		}
		if client.SearchCalls != 1 {
			t.Errorf("SearchCalls = %d, want 1", client.SearchCalls)
		}

		if _, err := svc.Search(ctx, model.SearchQuery{Query: "editing", Limit: 10}); err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if client.SearchCalls != 2 {
			t.Errorf("SearchCalls = %d, want 2", client.SearchCalls)
		}
	})

	t.Run("caches detail pages per slug", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.Details["writing-helper"] = &model.SkillDetail{
			CatalogSkill:  model.CatalogSkill{ID: "skill-1", Slug: "writing-helper"},
			LatestVersion: 3,
		}

		for i := 0; i < 2; i++ {
			detail, err := svc.Detail(ctx, "writing-helper")
			if err != nil {
				t.Fatalf("Detail() error = %v", err)
			}
			if detail.LatestVersion != 3 {
				t.Errorf("LatestVersion = %d, want 3", detail.LatestVersion)
			}
		}
		if client.DetailCalls != 1 {
			t.Errorf("DetailCalls = %d, want 1", client.DetailCalls)
		}
	})

	t.Run("does not cache detail errors", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			if _, err := svc.Detail(ctx, "missing"); err == nil {
				t.Fatal("expected error for unknown slug")
			}
		}
		if client.DetailCalls != 2 {
			t.Errorf("DetailCalls = %d, want 2", client.DetailCalls)
		}
	})

	t.Run("tree is not cached", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.TreeEntries = []model.TreeEntry{{Path: "SKILL.md", Type: "file", Size: 12}}

		for i := 0; i < 2; i++ {
			entries, err := svc.Tree(ctx, "skill-1")
			if err != nil {
				t.Fatalf("Tree() error = %v", err)
			}
			if len(entries) != 1 {
				t.Errorf("got %d entries, want 1", len(entries))
			}
		}
		if client.TreeCalls != 2 {
			t.Errorf("TreeCalls = %d, want 2", client.TreeCalls)
		}
	})

	t.Run("zero TTL disables caching", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 0)
		ctx := context.Background()

		query := model.CatalogQuery{Page: 1, Limit: 20}
		for i := 0; i < 2; i++ {
			if _, err := svc.Catalog(ctx, query); err != nil {
				t.Fatalf("Catalog() error = %v", err)
			}
		}
		if client.CatalogCalls != 2 {
			t.Errorf("CatalogCalls = %d, want 2 with caching disabled", client.CatalogCalls)
		}
	})

	t.Run("file content resolves the path through the tree", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.TreeEntries = []model.TreeEntry{
			{Path: "SKILL.md", Type: "file", Size: 12, URL: "https://cdn.example.com/skill-1/SKILL.md"},
			{Path: "reference.md", Type: "file", Size: 4, URL: "https://cdn.example.com/skill-1/reference.md"},
		}
		client.FileContents["https://cdn.example.com/skill-1/reference.md"] = "ref\n"

		content, err := svc.FileContent(ctx, "skill-1", "reference.md")
		if err != nil {
			t.Fatalf("FileContent() error = %v", err)
		}
		if content != "ref\n" {
			t.Errorf("content = %q, want %q", content, "ref\n")
		}
		if client.FileContentCalls != 1 {
			t.Errorf("FileContentCalls = %d, want 1", client.FileContentCalls)
		}
	})

	t.Run("file content fails for a path missing from the tree", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.TreeEntries = []model.TreeEntry{
			{Path: "SKILL.md", Type: "file", Size: 12, URL: "https://cdn.example.com/skill-1/SKILL.md"},
		}

		_, err := svc.FileContent(ctx, "skill-1", "missing.md")
		if err == nil {
			t.Fatal("expected error for a path not in the tree")
		}
		if client.FileContentCalls != 0 {
			t.Errorf("FileContentCalls = %d, want 0", client.FileContentCalls)
		}
	})

	t.Run("file content fails for an entry without a URL", func(t *testing.T) {
		t.Parallel()
		svc, client := setup(t, 5*time.Minute)
		ctx := context.Background()
		client.TreeEntries = []model.TreeEntry{
			{Path: "SKILL.md", Type: "file", Size: 12},
		}

		if _, err := svc.FileContent(ctx, "skill-1", "SKILL.md"); err == nil {
			t.Fatal("expected error for an entry without a content URL")
		}
	})
}
