// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage stores binary image assets. Two backends exist, the
// GitHub content repository and a local public directory, chosen once at
// startup by the same capability check that selects the document source.
// Assets live under {projectsRoot}/{projectId}/{filename}; the public
// reference string mirrors the same relative path.
package storage

import (
	"context"
	"strings"
)

// projectsRoot is the asset directory inside the public tree.
const projectsRoot = "images/projects"

// BlobStore stores and removes binary assets for projects.
type BlobStore interface {
	// Put stores an asset and returns the public reference string that
	// project records should carry.
	Put(ctx context.Context, projectID, filename string, data []byte, message string) (string, error)

	// Delete removes the asset behind a public reference. Deleting an
	// absent asset is a no-op success.
	Delete(ctx context.Context, ref, message string) error

	// List returns the public reference strings of a project's assets.
	List(ctx context.Context, projectID string) ([]string, error)
}

// publicRef builds the site-relative reference for an asset.
func publicRef(projectID, filename string) string {
	return "/" + projectsRoot + "/" + projectID + "/" + filename
}

// refToRelPath converts a public reference ("/images/projects/x/y.jpg")
// back to the path relative to the public root. Returns false when the
// reference does not point into the projects tree.
func refToRelPath(ref string) (string, bool) {
	prefix := "/" + projectsRoot + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, "/"), true
}

// isImageFile reports whether a filename carries an accepted image
// extension.
func isImageFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
