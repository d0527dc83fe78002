// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	// Decoders for upload verification.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"stagecraft/internal/content"
	"stagecraft/internal/slug"
	"stagecraft/internal/storage"
)

// maxUploadSize caps a single image upload.
const maxUploadSize = 10 << 20 // 10 MB

// allowedExtensions maps accepted file extensions to the sniffed content
// types they must match.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadHandler manages binary image assets: upload, listing, and delete
// with reference cleanup.
type UploadHandler struct {
	blobs storage.BlobStore
	store *content.Store
}

// NewUploadHandler creates the image asset handler.
func NewUploadHandler(blobs storage.BlobStore, store *content.Store) *UploadHandler {
	return &UploadHandler{blobs: blobs, store: store}
}

// Upload handles POST /api/admin/upload. Expects multipart form data with
// an "image" file, a "projectId", and an optional "type". A thumbnail
// upload always lands on the fixed name thumb.{ext} so re-uploading
// replaces it; everything else gets a timestamped collision-free name.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "File too large or invalid form data (max 10MB)")
		return
	}

	projectID := r.FormValue("projectId")
	if !slug.Valid(projectID) {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	imageType := r.FormValue("type")
	if imageType == "" {
		imageType = "image"
	}
	if !slug.Valid(imageType) {
		respondError(w, http.StatusBadRequest, "Invalid image type")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	wantType, ok := allowedExtensions[ext]
	if !ok {
		respondError(w, http.StatusBadRequest, "Unsupported file type. Allowed: jpg, jpeg, png, webp")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	if sniffed := http.DetectContentType(data); sniffed != wantType {
		respondError(w, http.StatusBadRequest, "File content does not match its extension")
		return
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		respondError(w, http.StatusBadRequest, "File is not a valid image")
		return
	}

	filename := buildFilename(imageType, ext)
	ref, err := h.blobs.Put(r.Context(), projectID, filename, data,
		fmt.Sprintf("chore: upload %s for project %s", filename, projectID))
	if err != nil {
		slog.Error("store uploaded image", "project", projectID, "file", filename, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	slog.Info("image uploaded", "project", projectID, "file", filename, "size", len(data))
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"url":      ref,
		"filename": filename,
	})
}

// List handles GET /api/admin/upload?projectId={id}.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")
	if !slug.Valid(projectID) {
		respondError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	refs, err := h.blobs.List(r.Context(), projectID)
	if err != nil {
		slog.Error("list project images", "project", projectID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list images")
		return
	}
	if refs == nil {
		refs = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"images":  refs,
	})
}

// Delete handles DELETE /api/admin/upload?path={ref}. The asset is
// removed first; reference cleanup of project records runs in the
// background afterwards and its outcome does not affect the response:
// the asset is already gone, and a failed sweep only leaves dangling
// references that render as broken images until the next edit.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("path")
	if ref == "" {
		respondError(w, http.StatusBadRequest, "Image path is required")
		return
	}

	if err := h.blobs.Delete(r.Context(), ref, "chore: delete image "+ref); err != nil {
		slog.Error("delete image", "ref", ref, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	slog.Info("image deleted", "ref", ref)

	go func(ref string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := h.store.RemoveImageReferences(ctx, ref); err != nil {
			slog.Error("image reference cleanup failed", "ref", ref, "error", err)
		}
	}(ref)

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// buildFilename names a stored asset. Thumbnails use a fixed name per
// project; other uploads are timestamped with a short random suffix to
// avoid collisions within the same millisecond.
func buildFilename(imageType, ext string) string {
	if imageType == "thumbnail" {
		return "thumb" + ext
	}
	return fmt.Sprintf("%s-%d-%s%s", imageType, time.Now().UnixMilli(), uuid.NewString()[:4], ext)
}
