// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validate gates write acceptance before records reach the
// content store. Validators return every violated rule, not just the
// first, so the admin UI can show all problems at once. Validation is
// advisory: the content store itself does not re-validate.
package validate

import (
	"fmt"
	"strings"

	"stagecraft/internal/models"
)

// Year bounds for plausible project years.
const (
	MinYear = 2000
	MaxYear = 2100
)

// ValidationError carries the full list of violated rules.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Project checks a project record. Returns nil when the record is valid.
func Project(p models.Project) *ValidationError {
	var errs []string

	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, "Project ID is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "Project title is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, "Project category is required")
	}
	if p.Year < MinYear || p.Year > MaxYear {
		errs = append(errs, fmt.Sprintf("Project year must be between %d and %d", MinYear, MaxYear))
	}
	if strings.TrimSpace(p.Description) == "" {
		errs = append(errs, "Project description is required")
	}
	if strings.TrimSpace(p.Thumbnail) == "" {
		errs = append(errs, "Project thumbnail is required")
	}

	if len(p.Stages) == 0 {
		errs = append(errs, "Project must have at least one stage")
	} else {
		for i, stage := range p.Stages {
			if strings.TrimSpace(stage.Title) == "" {
				errs = append(errs, fmt.Sprintf("Stage %d title is required", i+1))
			}
			if len(stage.Images) == 0 {
				errs = append(errs, fmt.Sprintf("Stage %d must have at least one image", i+1))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// Category checks a category record. Returns nil when the record is valid.
func Category(c models.Category) *ValidationError {
	var errs []string

	if strings.TrimSpace(c.ID) == "" {
		errs = append(errs, "Category ID is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "Category name is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "Category description is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// SiteConfig checks the singleton configuration record.
func SiteConfig(cfg models.SiteConfig) *ValidationError {
	var errs []string

	required := []struct {
		field string
		value string
	}{
		{"siteName", cfg.SiteName},
		{"tagline", cfg.Tagline},
		{"faviconUrl", cfg.FaviconURL},
		{"contactEmail", cfg.ContactEmail},
		{"phone", cfg.Phone},
		{"address", cfg.Address},
		{"googleMapsUrl", cfg.GoogleMapsURL},
		{"legal.companyName", cfg.Legal.CompanyName},
		{"legal.piva", cfg.Legal.PIVA},
		{"seo.defaultMetaTitle", cfg.SEO.DefaultMetaTitle},
		{"seo.defaultMetaDescription", cfg.SEO.DefaultMetaDescription},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, "Missing or invalid field: "+r.field)
		}
	}

	if cfg.OpeningHours == nil {
		errs = append(errs, "openingHours must be an array")
	}
	if cfg.HeroCarousel == nil {
		errs = append(errs, "heroCarousel must be an array")
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
