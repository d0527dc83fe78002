// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public content API,
// the admin dashboard API, and the contact form. Every response body is
// JSON with a "success" flag; errors carry either a single "error" string
// or an "errors" list when validation reports multiple problems.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stagecraft/internal/content"
	"stagecraft/internal/github"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError writes a single-message error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// respondErrors writes a multi-message error response, used by validators
// that report every violated rule at once.
func respondErrors(w http.ResponseWriter, status int, errs []string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"errors":  errs,
	})
}

// respondStoreError maps content-store failures to HTTP responses. A stale
// integrity token means another session won the write; the caller must
// reload and retry by hand; the server never retries conflicted writes.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, github.ErrConflict):
		slog.Warn("write conflict", "error", err)
		respondError(w, http.StatusConflict,
			"Content was modified by another session. Reload and try again.")
	case errors.Is(err, content.ErrSourceUnavailable):
		slog.Error("content unavailable", "error", err)
		respondError(w, http.StatusInternalServerError,
			"Content data is currently unavailable")
	default:
		slog.Error("content store error", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update content")
	}
}

// decodeJSON decodes a request body into dst. Unknown fields are ignored;
// the admin UI sends extra presentation-only fields.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
