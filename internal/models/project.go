// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content document schema: portfolio projects,
// their narrative stages, grouping categories, and the singleton site
// configuration record. These are pure data definitions; persistence lives
// in the content package.
package models

import (
	"fmt"
	"hash/fnv"
)

// StageIcon is the fixed set of display icons a project stage may carry.
type StageIcon string

const (
	IconCompass   StageIcon = "compass"
	IconBlueprint StageIcon = "blueprint"
	IconLayers    StageIcon = "layers"
	IconCamera    StageIcon = "camera"
	IconSparkles  StageIcon = "sparkles"
	IconFlag      StageIcon = "flag"
)

// fallbackIconOrder is the deterministic rotation used when a stage has
// neither an explicit icon nor a recognized type.
var fallbackIconOrder = []StageIcon{IconCompass, IconBlueprint, IconLayers, IconCamera, IconSparkles, IconFlag}

// ProjectStage is one phase of a project's narrative (e.g. "Concept",
// "Build"). Image order is insertion order and equals display order.
type ProjectStage struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Images      []string  `json:"images"`
	Description string    `json:"description,omitempty"`
	Icon        StageIcon `json:"icon,omitempty"`
	Type        string    `json:"type,omitempty"`
}

// Project is one portfolio case study. The ID is a stable slug used as the
// lookup key and as a path segment; it is immutable once created.
type Project struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Year        int            `json:"year"`
	Client      string         `json:"client,omitempty"`
	Description string         `json:"description"`
	Thumbnail   string         `json:"thumbnail"`
	Stages      []ProjectStage `json:"stages"`
}

// Normalize backfills missing stage IDs. The generated ID is derived from
// the project ID and the stage position, so repeated normalization of the
// same record always produces the same ID. Legacy records gain an ID once
// and keep it across loads.
func (p *Project) Normalize() {
	for i := range p.Stages {
		if p.Stages[i].ID == "" {
			p.Stages[i].ID = stageID(p.ID, i)
		}
	}
}

// ResolveIcon returns the display icon for a stage: the explicit icon if
// set, else a default derived from the legacy stage type, else a fixed
// rotation by stage position.
func ResolveIcon(s ProjectStage, index int) StageIcon {
	if s.Icon != "" {
		return s.Icon
	}
	switch s.Type {
	case "drawing":
		return IconBlueprint
	case "final":
		return IconSparkles
	}
	return fallbackIconOrder[index%len(fallbackIconOrder)]
}

// stageID produces a stable opaque stage identifier from the project ID
// and stage position.
func stageID(projectID string, index int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s#%d", projectID, index)
	return fmt.Sprintf("stage-%012x", h.Sum64()&0xffffffffffff)
}
