package skill

import (
	"context"
	"fmt"

	"skillsync/internal/model"
)

// Catalog returns one page of the public skill catalog. Pages are cached
// per query for the configured TTL.
func (s *SyncService) Catalog(ctx context.Context, query model.CatalogQuery) (*model.CatalogPage, error) {
	key := fmt.Sprintf("catalog:%d:%d:%s:%s:%s", query.Page, query.Limit, query.Category, query.SortBy, query.Type)
	if page, ok := s.catalog.Get(key); ok {
		return page, nil
	}
	page, err := s.client.Catalog(ctx, query)
	if err != nil {
		return nil, err
	}
	s.catalog.Put(key, page)
	return page, nil
}

// Search queries the catalog by free text. Results are cached per query for
// the configured TTL.
func (s *SyncService) Search(ctx context.Context, query model.SearchQuery) ([]model.CatalogSkill, error) {
	key := fmt.Sprintf("search:%s:%d", query.Query, query.Limit)
	if skills, ok := s.search.Get(key); ok {
		return skills, nil
	}
	skills, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.search.Put(key, skills)
	return skills, nil
}

// Detail returns the catalog detail page for a skill slug, cached for the
// configured TTL.
func (s *SyncService) Detail(ctx context.Context, slug string) (*model.SkillDetail, error) {
	key := "detail:" + slug
	if detail, ok := s.details.Get(key); ok {
		return detail, nil
	}
	detail, err := s.client.Detail(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.details.Put(key, detail)
	return detail, nil
}

// Tree lists a skill's remote files, uncached.
func (s *SyncService) Tree(ctx context.Context, skillID string) ([]model.TreeEntry, error) {
	return s.client.Tree(ctx, skillID)
}

// FileContent fetches one remote file's raw content. The path is resolved
// against the skill's tree listing; directories and unlisted paths fail.
func (s *SyncService) FileContent(ctx context.Context, skillID, path string) (string, error) {
	entries, err := s.client.Tree(ctx, skillID)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Path != path {
			continue
		}
		if e.URL == "" {
			return "", fmt.Errorf("file %s has no content URL", path)
		}
		return s.client.FileContent(ctx, e.URL)
	}
	return "", fmt.Errorf("file not found in skill %s: %s", skillID, path)
}
