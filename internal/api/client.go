// Package api implements the HTTP client for the skill platform's version
// history and discovery endpoints. Every request carries a bearer token from
// the configured TokenSource and fails closed with ErrNoCredential when no
// token is stored. Non-2xx responses surface as *Error. The client performs
// no retries; callers decide whether an operation is worth repeating.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skillsync/internal/auth"
	"skillsync/internal/model"
	"skillsync/internal/skill"
)

// DefaultBaseURL is the public platform endpoint, overridable in config.
const DefaultBaseURL = "https://www.skillhub.club"

// Client talks to the remote skill platform.
type Client struct {
	baseURL string
	tokens  auth.TokenSource
	http    *http.Client
}

var _ skill.VersionClient = (*Client)(nil)

// NewClient creates a client for the platform at baseURL. A nil httpClient
// falls back to one with a 30 second timeout.
func NewClient(baseURL string, tokens auth.TokenSource, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
	}
}

// Status returns the remote head version and per-file hashes for a skill.
func (c *Client) Status(ctx context.Context, skillID string) (*model.RemoteStatus, error) {
	var status model.RemoteStatus
	path := fmt.Sprintf("/api/v1/skills/%s/status", url.PathEscape(skillID))
	if err := c.getJSON(ctx, path, &status); err != nil {
		return nil, fmt.Errorf("fetching status for skill %s: %w", skillID, err)
	}
	return &status, nil
}

// Pull fetches the full file contents of a version. A version of zero or
// less requests the latest.
func (c *Client) Pull(ctx context.Context, skillID string, version int) (*model.PullResult, error) {
	path := fmt.Sprintf("/api/v1/skills/%s/pull", url.PathEscape(skillID))
	if version > 0 {
		path += "?version=" + strconv.Itoa(version)
	}

	var result model.PullResult
	if err := c.getJSON(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("pulling skill %s: %w", skillID, err)
	}
	return &result, nil
}

// Push uploads the complete file set as the next version and returns the
// version number the remote assigned. The remote treats the upload as
// atomic; concurrent pushes resolve last-write-wins on its side.
func (c *Client) Push(ctx context.Context, skillID string, files []model.SkillFile, changeSummary string) (int, error) {
	payload := struct {
		Files         []model.SkillFile `json:"files"`
		ChangeSummary string            `json:"change_summary,omitempty"`
	}{Files: files, ChangeSummary: changeSummary}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding push payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/skills/%s/push", url.PathEscape(skillID)), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		Version int `json:"version"`
	}
	if err := c.doJSON(req, &result); err != nil {
		return 0, fmt.Errorf("pushing skill %s: %w", skillID, err)
	}
	return result.Version, nil
}

// Versions lists all versions of a skill, newest first.
func (c *Client) Versions(ctx context.Context, skillID string) ([]model.VersionEntry, error) {
	var result struct {
		Versions []model.VersionEntry `json:"versions"`
	}
	path := fmt.Sprintf("/api/v1/skills/%s/versions", url.PathEscape(skillID))
	if err := c.getJSON(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("listing versions for skill %s: %w", skillID, err)
	}
	return result.Versions, nil
}

// History returns one page of version history. With opts.IncludeDiff the
// remote annotates each entry with the diff against its immediate
// predecessor.
func (c *Client) History(ctx context.Context, skillID string, opts model.HistoryOptions) (*model.HistoryPage, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.IncludeDiff {
		q.Set("include_diff", "true")
	}

	path := fmt.Sprintf("/api/v1/skills/%s/history", url.PathEscape(skillID))
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page model.HistoryPage
	if err := c.getJSON(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("fetching history for skill %s: %w", skillID, err)
	}
	return &page, nil
}

// Diff returns the remote's file-level classification between two versions.
// The from and to versions pass through untouched; a reversed range yields
// the inverse classification. With includeContent the remote attaches old
// and new file contents for line diffing.
func (c *Client) Diff(ctx context.Context, skillID string, from, to int, includeContent bool) (*model.VersionDiff, error) {
	q := url.Values{}
	q.Set("from", strconv.Itoa(from))
	q.Set("to", strconv.Itoa(to))
	if includeContent {
		q.Set("include_content", "true")
	}

	var diff model.VersionDiff
	path := fmt.Sprintf("/api/v1/skills/%s/diff?%s", url.PathEscape(skillID), q.Encode())
	if err := c.getJSON(ctx, path, &diff); err != nil {
		return nil, fmt.Errorf("fetching diff for skill %s: %w", skillID, err)
	}
	return &diff, nil
}

// Export streams the remote's export archive for a skill into w and returns
// the number of bytes written. The archive bytes are opaque to the client.
func (c *Client) Export(ctx context.Context, skillID string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/skills/%s/export", url.PathEscape(skillID)), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("exporting skill %s: %w", skillID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("exporting skill %s: %w", skillID, newError(resp))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("streaming export for skill %s: %w", skillID, err)
	}
	return n, nil
}

// newRequest builds an authenticated request. It fails with ErrNoCredential
// before anything goes on the wire when no token is stored.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("loading credential: %w", err)
	}
	if token == "" {
		return nil, ErrNoCredential
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// getJSON performs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// doJSON executes req and decodes a 2xx JSON body into out. Non-2xx
// responses become a *Error.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
