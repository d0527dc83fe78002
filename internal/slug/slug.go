// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly identifier generation and validation.
// Project and category IDs are slugs: they double as lookup keys, URL
// segments, and filesystem path segments, so the character set is strict.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// validID is the full shape of an acceptable identifier.
	validID = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Resort Fashion Show 2024" → "resort-fashion-show-2024"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether id is a safe identifier: letters, digits, and
// hyphens only. The shape rules out path traversal segments, so IDs can
// be used directly as path components.
func Valid(id string) bool {
	if id == "" {
		return false
	}
	return validID.MatchString(id)
}
