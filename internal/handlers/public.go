// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stagecraft/internal/content"
	"stagecraft/internal/models"
)

// PublicHandler serves the read-only content endpoints consumed by the
// website frontend.
type PublicHandler struct {
	store *content.Store
}

// NewPublicHandler creates the public content handler.
func NewPublicHandler(store *content.Store) *PublicHandler {
	return &PublicHandler{store: store}
}

// withResolvedIcons returns a copy of the project whose stages all carry a
// concrete display icon. Resolution is presentation-only: the stored
// record keeps whatever the author set (possibly nothing), and defaults
// are computed on the way out so they never get persisted by a later
// write.
func withResolvedIcons(p models.Project) models.Project {
	stages := make([]models.ProjectStage, len(p.Stages))
	for i, s := range p.Stages {
		s.Icon = models.ResolveIcon(s, i)
		stages[i] = s
	}
	p.Stages = stages
	return p
}

// Projects handles GET /api/projects.
func (h *PublicHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, _, err := h.store.GetCurrentData(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]models.Project, len(projects))
	for i, p := range projects {
		out[i] = withResolvedIcons(p)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"projects": out,
	})
}

// ProjectByID handles GET /api/projects/{id}.
func (h *PublicHandler) ProjectByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	projects, _, err := h.store.GetCurrentData(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	for _, p := range projects {
		if p.ID == id {
			respondJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"project": withResolvedIcons(p),
			})
			return
		}
	}
	respondError(w, http.StatusNotFound, "Project not found")
}

// Categories handles GET /api/categories.
func (h *PublicHandler) Categories(w http.ResponseWriter, r *http.Request) {
	_, categories, err := h.store.GetCurrentData(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// SiteConfig handles GET /api/site-config. The record always exists;
// defaults are served when the stored document is unavailable.
func (h *PublicHandler) SiteConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.store.GetSiteConfig(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config":  cfg,
	})
}
