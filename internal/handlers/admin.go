// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stagecraft/internal/content"
	"stagecraft/internal/middleware"
	"stagecraft/internal/models"
	"stagecraft/internal/validate"
)

// AdminHandler implements the content mutation endpoints behind the admin
// session gate. Every write goes through validation first and through the
// content store's read-modify-write path second; a conflicting concurrent
// write surfaces as 409.
type AdminHandler struct {
	store *content.Store
}

// NewAdminHandler creates the admin content handler.
func NewAdminHandler(store *content.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

// CreateProject handles POST /api/admin/projects.
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := decodeJSON(r, &project); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	project.Normalize()

	if verr := validate.Project(project); verr != nil {
		respondErrors(w, http.StatusBadRequest, verr.Errors)
		return
	}

	projects, _, err := h.store.GetCurrentData(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	for _, p := range projects {
		if p.ID == project.ID {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("A project with ID %q already exists", project.ID))
			return
		}
	}

	updated := append(append([]models.Project{}, projects...), project)
	if err := h.store.UpdateProjects(r.Context(), updated); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("project created", "id", project.ID, "admin", middleware.AdminEmailFromCtx(r.Context()))
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"project": project,
	})
}

// UpdateProject handles PUT /api/admin/projects/{id}. The path ID wins
// over any ID in the body; project IDs are immutable.
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var project models.Project
	if err := decodeJSON(r, &project); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	project.ID = id
	project.Normalize()

	if verr := validate.Project(project); verr != nil {
		respondErrors(w, http.StatusBadRequest, verr.Errors)
		return
	}

	projects, _, err := h.store.GetCurrentData(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	found := false
	updated := make([]models.Project, len(projects))
	for i, p := range projects {
		if p.ID == id {
			updated[i] = project
			found = true
		} else {
			updated[i] = p
		}
	}
	if !found {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.store.UpdateProjects(r.Context(), updated); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("project updated", "id", id, "admin", middleware.AdminEmailFromCtx(r.Context()))
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"project": project,
	})
}

// DeleteProject handles DELETE /api/admin/projects/{id}.
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	projects, _, err := h.store.GetCurrentData(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	updated := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID != id {
			updated = append(updated, p)
		}
	}
	if len(updated) == len(projects) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.store.UpdateProjects(r.Context(), updated); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("project deleted", "id", id, "admin", middleware.AdminEmailFromCtx(r.Context()))
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// UpdateCategories handles PUT /api/admin/categories. The whole category
// list is replaced at once; per-category validation errors are indexed so
// the UI can point at the offending entry.
func (h *AdminHandler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []models.Category `json:"categories"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Categories == nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []string
	for i, c := range req.Categories {
		if verr := validate.Category(c); verr != nil {
			for _, msg := range verr.Errors {
				errs = append(errs, fmt.Sprintf("Category %d: %s", i+1, msg))
			}
		}
	}
	if len(errs) > 0 {
		respondErrors(w, http.StatusBadRequest, errs)
		return
	}

	if err := h.store.UpdateCategories(r.Context(), req.Categories); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("categories updated", "count", len(req.Categories), "admin", middleware.AdminEmailFromCtx(r.Context()))
	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": req.Categories,
	})
}

// GetSiteConfig handles GET /api/admin/site-config.
func (h *AdminHandler) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.store.GetSiteConfig(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config":  cfg,
	})
}

// UpdateSiteConfig handles PUT /api/admin/site-config.
func (h *AdminHandler) UpdateSiteConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.SiteConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if verr := validate.SiteConfig(cfg); verr != nil {
		respondErrors(w, http.StatusBadRequest, verr.Errors)
		return
	}

	if err := h.store.UpdateSiteConfig(r.Context(), cfg); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("site config updated", "admin", middleware.AdminEmailFromCtx(r.Context()))
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config":  cfg,
	})
}
