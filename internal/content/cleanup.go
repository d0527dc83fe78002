// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cleanup.go maintains best-effort referential hygiene after a binary
// asset is deleted out-of-band from the project records that point to it.
package content

import (
	"context"
	"log/slog"

	"stagecraft/internal/models"
)

// CleanupReport summarizes what a reference sweep changed.
type CleanupReport struct {
	ProjectsUpdated   int
	ReferencesRemoved int

	// ThumbnailWarnings lists project IDs whose thumbnail pointed at the
	// deleted asset. Thumbnails are load-bearing for list views, so they
	// are flagged rather than removed.
	ThumbnailWarnings []string
}

// RemoveImageReferences scans every project's stage image lists and
// removes exact matches of the deleted reference. If nothing matched, no
// write is issued at all, since a no-op write would still race against the
// integrity token. If anything changed, the whole project collection is
// written back in one batch.
func (s *Store) RemoveImageReferences(ctx context.Context, ref string) (*CleanupReport, error) {
	projects, _, err := s.GetCurrentData(ctx)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{}
	updated := make([]models.Project, len(projects))

	for i, p := range projects {
		modified := false

		if p.Thumbnail == ref {
			slog.Warn("project uses deleted image as thumbnail", "project", p.ID, "ref", ref)
			report.ThumbnailWarnings = append(report.ThumbnailWarnings, p.ID)
		}

		stages := make([]models.ProjectStage, len(p.Stages))
		for j, st := range p.Stages {
			kept := make([]string, 0, len(st.Images))
			for _, img := range st.Images {
				if img == ref {
					continue
				}
				kept = append(kept, img)
			}
			if removed := len(st.Images) - len(kept); removed > 0 {
				report.ReferencesRemoved += removed
				modified = true
				slog.Info("removed stage image reference", "project", p.ID, "stage", st.Title, "removed", removed)
			}
			st.Images = kept
			stages[j] = st
		}

		p.Stages = stages
		updated[i] = p
		if modified {
			report.ProjectsUpdated++
		}
	}

	if report.ProjectsUpdated == 0 {
		slog.Info("no project references found for deleted image", "ref", ref)
		return report, nil
	}

	if err := s.UpdateProjects(ctx, updated); err != nil {
		return report, err
	}
	slog.Info("updated projects after image delete",
		"projects_updated", report.ProjectsUpdated,
		"references_removed", report.ReferencesRemoved,
	)
	return report, nil
}
