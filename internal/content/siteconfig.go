// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// siteconfig.go handles the singleton site configuration record, stored
// as its own document next to the content document. Unlike the entity
// arrays it is written whole: the document is regenerated from the record
// on every update.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"stagecraft/internal/models"
)

// configSnapshot is one cached parse of the site configuration document.
type configSnapshot struct {
	config   models.SiteConfig
	loadedAt time.Time
}

// configPreamble reproduces the type declarations the stored document
// carries ahead of the configuration record.
const configPreamble = `export type OpeningHour = {
  day: string;
  open: string;
  close: string;
  closed?: boolean;
  note?: string;
};

export type HeroSlide = {
  projectId: string;
  image: string;
  title: string;
  category?: string;
};

export type SiteConfig = {
  siteName: string;
  tagline: string;
  faviconUrl: string;
  contactEmail: string;
  phone: string; // store as E.164-ish, e.g. +390289031657
  address: string;
  googleMapsUrl: string;
  legal: {
    companyName: string;
    piva: string;
    legalAddress?: string;
  };
  openingHours: OpeningHour[];
  social: {
    facebook?: string;
    instagram?: string;
    linkedin?: string;
  };
  seo: {
    defaultMetaTitle: string;
    defaultMetaDescription: string;
  };
  heroCarousel: HeroSlide[];
};

`

// GetSiteConfig returns the current site configuration. The record always
// exists: when the stored document cannot be read or parsed, the built-in
// default is returned instead.
func (s *Store) GetSiteConfig(ctx context.Context) models.SiteConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfgSnap != nil && s.now().Sub(s.cfgSnap.loadedAt) < s.ttl {
		return s.cfgSnap.config
	}

	doc, err := s.cfg.Load(ctx)
	if err != nil {
		slog.Warn("site config unavailable, serving defaults", "error", err)
		return models.DefaultSiteConfig()
	}

	cfg, err := parseSiteConfig(doc)
	if err != nil {
		slog.Warn("site config unparseable, serving defaults", "error", err)
		return models.DefaultSiteConfig()
	}

	s.cfgSnap = &configSnapshot{config: cfg, loadedAt: s.now()}
	return cfg
}

// UpdateSiteConfig regenerates the configuration document from the record
// and writes it back with a fresh integrity token.
func (s *Store) UpdateSiteConfig(ctx context.Context, cfg models.SiteConfig) error {
	newDoc, err := serializeSiteConfig(cfg)
	if err != nil {
		return err
	}

	// The token must be current even though the document is replaced
	// wholesale; the remote store rejects writes with a stale token.
	_, token, err := s.cfg.Current(ctx)
	if err != nil {
		return fmt.Errorf("fetch current site config: %w", err)
	}

	if err := s.cfg.Store(ctx, newDoc, token, "chore: update site config via admin"); err != nil {
		return err
	}

	s.mu.Lock()
	s.cfgSnap = nil
	s.mu.Unlock()
	return nil
}

// parseSiteConfig extracts and decodes the configuration record.
func parseSiteConfig(doc []byte) (models.SiteConfig, error) {
	raw, err := extractValue(doc, siteConfigMarker, '{', '}')
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("parse site config: %w", err)
	}
	var cfg models.SiteConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return models.SiteConfig{}, fmt.Errorf("parse site config: %w", err)
	}
	return cfg, nil
}

// serializeSiteConfig renders the full configuration document.
func serializeSiteConfig(cfg models.SiteConfig) ([]byte, error) {
	serialized, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize site config: %w", err)
	}
	doc := configPreamble + "export const siteConfig: SiteConfig = " + string(serialized) + ";\n"
	return []byte(doc), nil
}
