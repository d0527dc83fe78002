// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the single authoritative read/write path for the
// portfolio document: projects, categories, and the site configuration.
// It abstracts over where the canonical document lives (GitHub repository
// or local disk), keeps a short-lived whole-document cache, and performs
// read-modify-write updates that splice one declaration at a time so the
// rest of the document survives byte-for-byte.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"stagecraft/internal/models"
)

// DefaultCacheTTL is the freshness window of the document cache. It exists
// purely to collapse bursts of near-simultaneous reads into one underlying
// load; it is not a consistency mechanism.
const DefaultCacheTTL = 1 * time.Second

// snapshot is one cached parse of the content document.
type snapshot struct {
	projects   []models.Project
	categories []models.Category
	loadedAt   time.Time
}

// Store orchestrates reads and writes of the content document. The cache
// is instance-owned and process-local: whole-document granularity, one
// slot, timestamp freshness check.
type Store struct {
	data Source // projects + categories document
	cfg  Source // site configuration document

	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	snap    *snapshot
	cfgSnap *configSnapshot
}

// NewStore creates a content store over the given document sources.
func NewStore(data, cfg Source) *Store {
	return &Store{
		data: data,
		cfg:  cfg,
		ttl:  DefaultCacheTTL,
		now:  time.Now,
	}
}

// SetClock replaces the store's time source. Tests use it to control the
// cache freshness window.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// GetCurrentData returns the current projects and categories. A cached
// copy younger than the freshness window is returned unchanged; otherwise
// the document is loaded through the source's fallback chain, parsed, and
// cached. Failure to load from every source is fatal for this call;
// stale or partial data is never substituted.
func (s *Store) GetCurrentData(ctx context.Context) ([]models.Project, []models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && s.now().Sub(s.snap.loadedAt) < s.ttl {
		return s.snap.projects, s.snap.categories, nil
	}

	doc, err := s.data.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	projects, categories, err := parseDocument(doc)
	if err != nil {
		return nil, nil, err
	}

	s.snap = &snapshot{
		projects:   projects,
		categories: categories,
		loadedAt:   s.now(),
	}
	return projects, categories, nil
}

// Invalidate drops the cached snapshot so the next read reloads from
// source.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.cfgSnap = nil
	s.mu.Unlock()
	slog.Info("content cache invalidated")
}

// UpdateProjects replaces the whole projects array. The current document
// and its integrity token are fetched fresh, not from cache, so the
// token presented on write is current; a concurrent writer's token goes
// stale and the store rejects the losing write with a conflict, which is
// surfaced to the caller unretried.
func (s *Store) UpdateProjects(ctx context.Context, projects []models.Project) error {
	return s.updateArray(ctx, projectsMarker, projects, "chore: update projects via admin dashboard")
}

// UpdateCategories replaces the whole categories array, leaving the
// projects declaration untouched byte-for-byte.
func (s *Store) UpdateCategories(ctx context.Context, categories []models.Category) error {
	return s.updateArray(ctx, categoriesMarker, categories, "chore: update categories via admin dashboard")
}

// updateArray serializes the replacement array, splices it over the
// declaration the marker names, and writes the document back with the
// fresh integrity token. On success the cache is invalidated.
func (s *Store) updateArray(ctx context.Context, marker *regexp.Regexp, value any, message string) error {
	serialized, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize array: %w", err)
	}

	doc, token, err := s.data.Current(ctx)
	if err != nil {
		return fmt.Errorf("fetch current document: %w", err)
	}

	newDoc, err := spliceValue(doc, marker, '[', ']', serialized)
	if err != nil {
		return fmt.Errorf("splice document: %w", err)
	}

	if err := s.data.Store(ctx, newDoc, token, message); err != nil {
		return err
	}

	s.Invalidate()
	return nil
}

// parseDocument extracts and decodes the two entity arrays, then
// normalizes every project (stage ID backfill).
func parseDocument(doc []byte) ([]models.Project, []models.Category, error) {
	rawProjects, err := extractValue(doc, projectsMarker, '[', ']')
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	rawCategories, err := extractValue(doc, categoriesMarker, '[', ']')
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}

	var projects []models.Project
	if err := json.Unmarshal(rawProjects, &projects); err != nil {
		return nil, nil, fmt.Errorf("parse projects: %w", err)
	}
	var categories []models.Category
	if err := json.Unmarshal(rawCategories, &categories); err != nil {
		return nil, nil, fmt.Errorf("parse categories: %w", err)
	}

	for i := range projects {
		projects[i].Normalize()
	}
	return projects, categories, nil
}
