package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"skillsync/internal/model"
)

// maxTreeDepth bounds how deep Tree descends into the remote file listing.
// A skill bundle is a shallow directory of documents; anything deeper points
// at a malformed or hostile listing.
const maxTreeDepth = 10

// Tree lists a skill's remote files by walking the listing endpoint with an
// explicit worklist, one request per directory. A directory nested deeper
// than maxTreeDepth fails the walk. A listing failure below the root skips
// that subtree; the root listing itself must succeed. Entries come back
// sorted by path.
func (c *Client) Tree(ctx context.Context, skillID string) ([]model.TreeEntry, error) {
	type dirItem struct {
		path  string
		depth int
	}

	worklist := []dirItem{{path: "", depth: 0}}
	var entries []model.TreeEntry

	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]

		if item.depth > maxTreeDepth {
			return nil, fmt.Errorf("remote tree exceeds depth %d at %q", maxTreeDepth, item.path)
		}

		listing, err := c.listFiles(ctx, skillID, item.path)
		if err != nil {
			if item.path == "" {
				return nil, err
			}
			continue
		}

		for _, entry := range listing {
			if entry.Type == "dir" {
				worklist = append(worklist, dirItem{path: entry.Path, depth: item.depth + 1})
				continue
			}
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// FileContent fetches one file's raw content through the platform's
// file-content proxy. fileURL comes from a TreeEntry's URL field; the body
// passes through as plain text, not JSON.
func (c *Client) FileContent(ctx context.Context, fileURL string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/skills/file-content?url="+url.QueryEscape(fileURL), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching file content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching file content: %w", newError(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading file content: %w", err)
	}
	return string(body), nil
}

// listFiles fetches the listing of one remote directory. An empty dir lists
// the skill root.
func (c *Client) listFiles(ctx context.Context, skillID, dir string) ([]model.TreeEntry, error) {
	path := fmt.Sprintf("/api/v1/skills/%s/files", url.PathEscape(skillID))
	if dir != "" {
		path += "?path=" + url.QueryEscape(dir)
	}

	var result struct {
		Files []model.TreeEntry `json:"files"`
	}
	if err := c.getJSON(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("listing files for skill %s: %w", skillID, err)
	}
	return result.Files, nil
}
