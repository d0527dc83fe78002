// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps binary assets on local disk under the public directory.
type LocalStore struct {
	publicDir string
}

// NewLocalStore creates a store rooted at the given public directory.
func NewLocalStore(publicDir string) *LocalStore {
	return &LocalStore{publicDir: publicDir}
}

// Put writes the asset to disk, creating the project directory as needed,
// and returns the site-relative reference.
func (s *LocalStore) Put(ctx context.Context, projectID, filename string, data []byte, _ string) (string, error) {
	dir := filepath.Join(s.publicDir, projectsRoot, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create project dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return publicRef(projectID, filename), nil
}

// Delete removes the asset file. An already-absent file is a no-op
// success.
func (s *LocalStore) Delete(ctx context.Context, ref, _ string) error {
	rel, ok := refToRelPath(ref)
	if !ok || strings.Contains(rel, "..") {
		return fmt.Errorf("reference %q is not a project asset", ref)
	}
	path := filepath.Join(s.publicDir, filepath.FromSlash(rel))

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// List returns site-relative references of a project's image files. A
// missing project directory yields an empty listing.
func (s *LocalStore) List(ctx context.Context, projectID string) ([]string, error) {
	dir := filepath.Join(s.publicDir, projectsRoot, projectID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list assets: %w", err)
	}

	var refs []string
	for _, e := range entries {
		if !e.IsDir() && isImageFile(e.Name()) {
			refs = append(refs, publicRef(projectID, e.Name()))
		}
	}
	return refs, nil
}
