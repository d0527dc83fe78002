package content

import (
	"context"
	"encoding/json"
	"testing"

	"stagecraft/internal/models"
)

func cleanupDoc(t *testing.T, projects []models.Project) string {
	t.Helper()
	raw, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		t.Fatalf("marshal projects: %v", err)
	}
	return "export const projects: Project[] = " + string(raw) + ";\n\n" +
		"export const categories: Category[] = [];\n"
}

func TestRemoveImageReferences(t *testing.T) {
	deleted := "/images/projects/villa/old.jpg"

	projects := []models.Project{
		{
			ID: "villa", Title: "Villa", Category: "weddings", Year: 2024,
			Description: "d", Thumbnail: "/images/projects/villa/thumb.jpg",
			Stages: []models.ProjectStage{
				{ID: "s1", Title: "Concept", Images: []string{deleted, "/images/projects/villa/keep.jpg"}},
				{ID: "s2", Title: "Build", Images: []string{deleted}},
			},
		},
		{
			ID: "loft", Title: "Loft", Category: "corporate", Year: 2023,
			Description: "d", Thumbnail: deleted,
			Stages: []models.ProjectStage{
				{ID: "s1", Title: "Concept", Images: []string{"/images/projects/loft/a.jpg"}},
			},
		},
	}

	store, data := newTestStore(cleanupDoc(t, projects))

	report, err := store.RemoveImageReferences(context.Background(), deleted)
	if err != nil {
		t.Fatalf("RemoveImageReferences: %v", err)
	}

	if report.ReferencesRemoved != 2 {
		t.Errorf("got %d references removed, want 2", report.ReferencesRemoved)
	}
	if report.ProjectsUpdated != 1 {
		t.Errorf("got %d projects updated, want 1", report.ProjectsUpdated)
	}
	if len(report.ThumbnailWarnings) != 1 || report.ThumbnailWarnings[0] != "loft" {
		t.Errorf("got thumbnail warnings %v, want [loft]", report.ThumbnailWarnings)
	}
	if data.stores != 1 {
		t.Fatalf("got %d writes, want 1 batch write", data.stores)
	}

	store.Invalidate()
	got, _, err := store.GetCurrentData(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentData: %v", err)
	}
	if imgs := got[0].Stages[0].Images; len(imgs) != 1 || imgs[0] != "/images/projects/villa/keep.jpg" {
		t.Errorf("stage images after cleanup: %v", imgs)
	}
	if len(got[0].Stages[1].Images) != 0 {
		t.Errorf("second stage still references the deleted image: %v", got[0].Stages[1].Images)
	}
	// The thumbnail is flagged, never rewritten.
	if got[1].Thumbnail != deleted {
		t.Errorf("thumbnail was modified: %q", got[1].Thumbnail)
	}
}

func TestRemoveImageReferencesNoMatchSkipsWrite(t *testing.T) {
	projects := []models.Project{{
		ID: "villa", Title: "Villa", Category: "weddings", Year: 2024,
		Description: "d", Thumbnail: "/images/projects/villa/thumb.jpg",
		Stages: []models.ProjectStage{
			{ID: "s1", Title: "Concept", Images: []string{"/images/projects/villa/a.jpg"}},
		},
	}}

	store, data := newTestStore(cleanupDoc(t, projects))

	report, err := store.RemoveImageReferences(context.Background(), "/images/projects/other/gone.jpg")
	if err != nil {
		t.Fatalf("RemoveImageReferences: %v", err)
	}
	if report.ProjectsUpdated != 0 || report.ReferencesRemoved != 0 {
		t.Errorf("unexpected report for no-match sweep: %+v", report)
	}
	if data.stores != 0 {
		t.Errorf("a no-op sweep issued %d writes, want 0", data.stores)
	}
}

func TestRemoveImageReferencesExactMatchOnly(t *testing.T) {
	// A reference that merely shares a prefix with the deleted one stays.
	projects := []models.Project{{
		ID: "villa", Title: "Villa", Category: "weddings", Year: 2024,
		Description: "d", Thumbnail: "/t.jpg",
		Stages: []models.ProjectStage{
			{ID: "s1", Title: "Concept", Images: []string{
				"/images/projects/villa/a.jpg",
				"/images/projects/villa/a.jpg.bak",
			}},
		},
	}}

	store, _ := newTestStore(cleanupDoc(t, projects))

	report, err := store.RemoveImageReferences(context.Background(), "/images/projects/villa/a.jpg")
	if err != nil {
		t.Fatalf("RemoveImageReferences: %v", err)
	}
	if report.ReferencesRemoved != 1 {
		t.Errorf("got %d removed, want exactly 1", report.ReferencesRemoved)
	}

	store.Invalidate()
	got, _, _ := store.GetCurrentData(context.Background())
	if imgs := got[0].Stages[0].Images; len(imgs) != 1 || imgs[0] != "/images/projects/villa/a.jpg.bak" {
		t.Errorf("prefix-matching reference was removed: %v", imgs)
	}
}
