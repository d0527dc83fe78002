// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"strings"

	"stagecraft/internal/github"
)

// GitHubStore keeps binary assets in the content repository under
// public/{projectsRoot}. Uploaded assets are referenced by their
// raw-content URL for immediate availability.
type GitHubStore struct {
	client *github.Client
}

// NewGitHubStore wraps a configured Contents API client.
func NewGitHubStore(client *github.Client) *GitHubStore {
	return &GitHubStore{client: client}
}

// repoPath is the path of an asset inside the repository.
func (s *GitHubStore) repoPath(projectID, filename string) string {
	return "public/" + projectsRoot + "/" + projectID + "/" + filename
}

// Put uploads the asset and returns its raw-content URL.
func (s *GitHubStore) Put(ctx context.Context, projectID, filename string, data []byte, message string) (string, error) {
	url, _, err := s.client.UploadBinary(ctx, s.repoPath(projectID, filename), data, message)
	if err != nil {
		return "", err
	}
	return url, nil
}

// Delete removes the asset behind a public reference. Both site-relative
// references and raw-content URLs of this repository are accepted.
func (s *GitHubStore) Delete(ctx context.Context, ref, message string) error {
	repoPath, ok := s.RepoPathFromRef(ref)
	if !ok {
		return fmt.Errorf("reference %q is not a project asset", ref)
	}
	return s.client.DeleteFile(ctx, repoPath, message)
}

// List returns raw-content URLs of the image files stored for a project.
func (s *GitHubStore) List(ctx context.Context, projectID string) ([]string, error) {
	dir := "public/" + projectsRoot + "/" + projectID
	entries, err := s.client.ListDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, e := range entries {
		if isImageFile(e.Name) {
			refs = append(refs, s.client.RawURL(e.Path))
		}
	}
	return refs, nil
}

// RepoPathFromRef resolves a reference string to a repository path.
// Site-relative references map under public/; raw-content URLs of this
// repository map to their repository path directly.
func (s *GitHubStore) RepoPathFromRef(ref string) (string, bool) {
	if rel, ok := refToRelPath(ref); ok {
		return "public/" + rel, true
	}
	if prefix := s.client.RawURLPrefix(); strings.HasPrefix(ref, prefix) {
		path := strings.TrimPrefix(ref, prefix)
		if strings.HasPrefix(path, "public/"+projectsRoot+"/") {
			return path, true
		}
	}
	return "", false
}
