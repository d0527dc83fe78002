// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package github is a thin, typed wrapper over the GitHub Contents API.
// It fetches and writes files in the content repository, tracking each
// file's blob SHA as the integrity token that the API requires on write
// to detect concurrent modification.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultRawBase = "https://raw.githubusercontent.com"

	userAgent = "Stagecraft-Admin-Panel"
)

// Sentinel errors for the remote store failure taxonomy.
var (
	// ErrNotFound indicates the path, branch, or repository is inaccessible.
	ErrNotFound = errors.New("github: not found")

	// ErrUnauthorized indicates the credentials were rejected.
	ErrUnauthorized = errors.New("github: unauthorized")

	// ErrConflict indicates the supplied integrity token no longer matches
	// the file's current state; a concurrent write won the race.
	ErrConflict = errors.New("github: sha conflict")
)

// Client talks to one branch of one content repository.
type Client struct {
	owner   string
	repo    string
	token   string
	branch  string
	apiBase string
	rawBase string
	http    *http.Client
}

// New creates a Contents API client. Returns nil if any of owner, repo, or
// token is empty. Remote mode is feature-detected, and a nil client tells
// callers to use the local-disk path instead.
func New(owner, repo, token, branch string) *Client {
	if owner == "" || repo == "" || token == "" {
		return nil
	}
	if branch == "" {
		branch = "main"
	}
	return &Client{
		owner:   owner,
		repo:    repo,
		token:   token,
		branch:  branch,
		apiBase: defaultAPIBase,
		rawBase: defaultRawBase,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithEndpoints overrides the API and raw-content base URLs. Used by tests
// and GitHub Enterprise installs.
func (c *Client) WithEndpoints(apiBase, rawBase string) *Client {
	c.apiBase = strings.TrimRight(apiBase, "/")
	c.rawBase = strings.TrimRight(rawBase, "/")
	return c
}

// RawURL returns the unauthenticated raw-content URL for a file. The raw
// host serves file contents directly and is used as a read fallback when
// the API is unavailable.
func (c *Client) RawURL(path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase, c.owner, c.repo, c.branch, path)
}

// RawURLPrefix returns the raw-content URL prefix for this repository and
// branch. Reference strings starting with this prefix belong to files in
// the content repository.
func (c *Client) RawURLPrefix() string {
	return fmt.Sprintf("%s/%s/%s/%s/", c.rawBase, c.owner, c.repo, c.branch)
}

// contentsURL builds the Contents API URL for a repository path.
func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, c.owner, c.repo, path)
}

// fileResponse is the subset of the Contents API GET response we consume.
type fileResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

// writeResponse is the subset of the Contents API PUT response we consume.
type writeResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// dirEntry is one element of a Contents API directory listing.
type dirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
}

// Entry describes one file in a directory listing.
type Entry struct {
	Name string
	Path string
}

// FetchFile retrieves a file's decoded content and its current blob SHA.
func (c *Client) FetchFile(ctx context.Context, path string) ([]byte, string, error) {
	u := c.contentsURL(path) + "?ref=" + url.QueryEscape(c.branch)
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", path, err)
	}

	var fr fileResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, "", fmt.Errorf("fetch %s: decode response: %w", path, err)
	}
	if fr.SHA == "" {
		return nil, "", fmt.Errorf("fetch %s: response missing content or sha", path)
	}

	// The API serves file bodies base64-encoded with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(fr.Content))
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: decode base64: %w", path, err)
	}

	slog.Debug("github file fetched", "path", path, "bytes", len(decoded), "sha", shortSHA(fr.SHA))
	return decoded, fr.SHA, nil
}

// WriteFile replaces a file's content. The sha must be the file's current
// blob SHA; the API rejects the write with a conflict when it is stale.
func (c *Client) WriteFile(ctx context.Context, path string, content []byte, sha, message string) error {
	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"sha":     sha,
		"branch":  c.branch,
	}
	body, err := c.do(ctx, http.MethodPut, c.contentsURL(path), payload)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	var wr writeResponse
	if err := json.Unmarshal(body, &wr); err == nil && wr.Content.SHA != "" {
		slog.Info("github file written", "path", path, "new_sha", shortSHA(wr.Content.SHA))
	}
	return nil
}

// UploadBinary creates or updates a binary blob. It first probes for an
// existing blob SHA at the path: absence means create, presence means
// update. The probe-then-write sequence has its own small race window,
// which is accepted. Returns the raw-content URL for immediate access.
func (c *Client) UploadBinary(ctx context.Context, path string, data []byte, message string) (string, string, error) {
	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(data),
		"branch":  c.branch,
	}

	if _, sha, err := c.FetchFile(ctx, path); err == nil {
		payload["sha"] = sha
		slog.Debug("github binary exists, updating", "path", path, "sha", shortSHA(sha))
	} else if !errors.Is(err, ErrNotFound) {
		return "", "", fmt.Errorf("upload %s: probe existing: %w", path, err)
	}

	body, err := c.do(ctx, http.MethodPut, c.contentsURL(path), payload)
	if err != nil {
		return "", "", fmt.Errorf("upload %s: %w", path, err)
	}

	var wr writeResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return "", "", fmt.Errorf("upload %s: decode response: %w", path, err)
	}

	slog.Info("github binary uploaded", "path", path, "bytes", len(data), "sha", shortSHA(wr.Content.SHA))
	return c.RawURL(path), wr.Content.SHA, nil
}

// DeleteFile removes a file. Deleting a file that is already absent is a
// no-op success; delete is idempotent.
func (c *Client) DeleteFile(ctx context.Context, path, message string) error {
	_, sha, err := c.FetchFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		slog.Debug("github file already absent, nothing to delete", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete %s: probe existing: %w", path, err)
	}

	payload := map[string]string{
		"message": message,
		"sha":     sha,
		"branch":  c.branch,
	}
	if _, err := c.do(ctx, http.MethodDelete, c.contentsURL(path), payload); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	slog.Info("github file deleted", "path", path)
	return nil
}

// ListDir lists the files directly under a repository directory. A missing
// directory yields an empty listing.
func (c *Client) ListDir(ctx context.Context, path string) ([]Entry, error) {
	u := c.contentsURL(path) + "?ref=" + url.QueryEscape(c.branch)
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	var entries []dirEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("list %s: decode response: %w", path, err)
	}

	var out []Entry
	for _, e := range entries {
		if e.Type == "file" {
			out = append(out, Entry{Name: e.Name, Path: e.Path})
		}
	}
	return out, nil
}

// do performs one authenticated API call and maps HTTP failures onto the
// sentinel error taxonomy.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w (status %d)", ErrNotFound, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w (status %d): %s", ErrConflict, resp.StatusCode, truncate(body, 200))
	default:
		return nil, fmt.Errorf("github API error (status %d): %s", resp.StatusCode, truncate(body, 200))
	}
}

// stripNewlines removes the line breaks GitHub inserts into base64 bodies.
func stripNewlines(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// shortSHA abbreviates a blob SHA for logging.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// truncate caps an error body for log-friendly messages.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
