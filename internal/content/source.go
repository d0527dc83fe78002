// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// source.go defines where the canonical document lives. Two strategies
// exist: the GitHub content repository (with a read fallback chain) and a
// plain local file. The choice is made once at startup by capability
// check, not by branching on configuration throughout the codebase.
package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"stagecraft/internal/github"
)

// Source abstracts the storage of one textual document.
type Source interface {
	// Load returns the current document, applying the full fallback chain
	// where one exists. Used by the read path.
	Load(ctx context.Context) ([]byte, error)

	// Current returns the document together with its integrity token,
	// bypassing fallbacks. A write needs the authoritative copy and a
	// token that is current, or the store will reject the write.
	Current(ctx context.Context) ([]byte, string, error)

	// Store writes the document back, presenting the integrity token
	// obtained from Current.
	Store(ctx context.Context, doc []byte, token, message string) error
}

const (
	// readAttempts is how many times the remote API read is tried before
	// falling back to the raw endpoint.
	readAttempts = 3

	// backoffStep is the linear backoff unit between API read attempts
	// (200ms, 400ms, ...).
	backoffStep = 200 * time.Millisecond
)

// NewSource selects the document source: the GitHub repository when the
// client is configured, the local file otherwise.
func NewSource(gh *github.Client, remotePath, localPath string) Source {
	if gh == nil {
		return &localSource{path: localPath}
	}
	return &remoteSource{
		gh:         gh,
		remotePath: remotePath,
		localPath:  localPath,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

// localSource reads and writes a document on local disk. It has no
// conflict detection at all: concurrent local writes can clobber each
// other, an accepted limitation of the non-remote mode.
type localSource struct {
	path string
}

func (s *localSource) Load(_ context.Context) ([]byte, error) {
	doc, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *localSource) Current(ctx context.Context) ([]byte, string, error) {
	doc, err := s.Load(ctx)
	return doc, "", err
}

func (s *localSource) Store(_ context.Context, doc []byte, _, _ string) error {
	if err := os.WriteFile(s.path, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// remoteSource reads the document from the GitHub Contents API, falling
// back to the unauthenticated raw endpoint and then to the local
// disaster-recovery copy. Writes go to the API only.
type remoteSource struct {
	gh         *github.Client
	remotePath string
	localPath  string
	http       *http.Client
}

// Load walks the fallback chain: API (retried), raw endpoint, local copy.
// Each attempt's distinct failure is recorded; if all three fail, a single
// aggregated SourceError is returned.
func (s *remoteSource) Load(ctx context.Context) ([]byte, error) {
	var attempts []Attempt

	doc, err := s.loadFromAPI(ctx)
	if err == nil {
		return doc, nil
	}
	slog.Error("content API read failed, attempting fallbacks", "path", s.remotePath, "error", err)
	attempts = append(attempts, Attempt{Source: "api", Err: err})

	doc, err = s.loadFromRaw(ctx)
	if err == nil {
		slog.Warn("content served from raw fallback", "path", s.remotePath)
		return doc, nil
	}
	slog.Error("raw fallback read failed", "path", s.remotePath, "error", err)
	attempts = append(attempts, Attempt{Source: "raw", Err: err})

	doc, localErr := os.ReadFile(s.localPath)
	if localErr == nil {
		slog.Warn("content served from local fallback file", "path", s.localPath)
		return doc, nil
	}
	slog.Error("local fallback read failed", "path", s.localPath, "error", localErr)
	attempts = append(attempts, Attempt{Source: "local", Err: localErr})

	return nil, &SourceError{Attempts: attempts}
}

// loadFromAPI reads through the Contents API with linearly increasing
// backoff between attempts.
func (s *remoteSource) loadFromAPI(ctx context.Context) ([]byte, error) {
	var doc []byte
	attempt := 0

	backoff := retry.WithMaxRetries(readAttempts-1, retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return backoffStep * time.Duration(attempt), false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var ferr error
		doc, _, ferr = s.gh.FetchFile(ctx, s.remotePath)
		if ferr != nil {
			slog.Error("content API read attempt failed",
				"path", s.remotePath,
				"attempt", attempt+1,
				"error", ferr,
			)
			return retry.RetryableError(ferr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// loadFromRaw fetches the same file from the raw-content endpoint without
// authentication.
func (s *remoteSource) loadFromRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.gh.RawURL(s.remotePath), nil)
	if err != nil {
		return nil, fmt.Errorf("build raw request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("raw fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("raw fetch: status %d", resp.StatusCode)
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("raw fetch read body: %w", err)
	}
	return doc, nil
}

// Current fetches the authoritative document and its blob SHA fresh from
// the API. No fallback: a write must not be built on a fallback copy.
func (s *remoteSource) Current(ctx context.Context) ([]byte, string, error) {
	return s.gh.FetchFile(ctx, s.remotePath)
}

func (s *remoteSource) Store(ctx context.Context, doc []byte, token, message string) error {
	return s.gh.WriteFile(ctx, s.remotePath, doc, token, message)
}
