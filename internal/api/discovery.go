package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"skillsync/internal/model"
)

// Catalog returns one page of the public skill catalog.
func (c *Client) Catalog(ctx context.Context, query model.CatalogQuery) (*model.CatalogPage, error) {
	q := url.Values{}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Category != "" {
		q.Set("category", query.Category)
	}
	if query.SortBy != "" {
		q.Set("sortBy", query.SortBy)
	}
	if query.Type != "" {
		q.Set("type", query.Type)
	}

	path := "/api/v1/desktop/catalog"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page model.CatalogPage
	if err := c.getJSON(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	return &page, nil
}

// Search queries the catalog by free text.
func (c *Client) Search(ctx context.Context, query model.SearchQuery) ([]model.CatalogSkill, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encoding search query: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/desktop/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		Skills []model.CatalogSkill `json:"skills"`
	}
	if err := c.doJSON(req, &result); err != nil {
		return nil, fmt.Errorf("searching skills: %w", err)
	}
	return result.Skills, nil
}

// Detail returns the catalog detail page for a skill slug.
func (c *Client) Detail(ctx context.Context, slug string) (*model.SkillDetail, error) {
	var detail model.SkillDetail
	path := "/api/v1/desktop/skills/" + url.PathEscape(slug)
	if err := c.getJSON(ctx, path, &detail); err != nil {
		return nil, fmt.Errorf("fetching detail for skill %s: %w", slug, err)
	}
	return &detail, nil
}
