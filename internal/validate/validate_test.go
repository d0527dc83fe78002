package validate

import (
	"strings"
	"testing"

	"stagecraft/internal/models"
)

func validProject() models.Project {
	return models.Project{
		ID:          "villa-ricordi",
		Title:       "Villa Ricordi",
		Category:    "weddings",
		Year:        2024,
		Description: "A lakeside wedding.",
		Thumbnail:   "/images/projects/villa-ricordi/thumb.jpg",
		Stages: []models.ProjectStage{
			{Title: "Concept", Images: []string{"/images/projects/villa-ricordi/a.jpg"}},
		},
	}
}

func TestProjectValid(t *testing.T) {
	if err := Project(validProject()); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}
}

func TestProjectReportsAllErrors(t *testing.T) {
	p := validProject()
	p.Title = ""
	p.Year = 1850
	p.Stages[0].Images = nil

	err := Project(p)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if len(err.Errors) != 3 {
		t.Fatalf("got %d errors, want all 3: %v", len(err.Errors), err.Errors)
	}

	wants := []string{
		"Project title is required",
		"Project year must be between 2000 and 2100",
		"Stage 1 must have at least one image",
	}
	for _, want := range wants {
		found := false
		for _, got := range err.Errors {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing error %q in %v", want, err.Errors)
		}
	}
}

func TestProjectRequiresStages(t *testing.T) {
	p := validProject()
	p.Stages = nil

	err := Project(p)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "at least one stage") {
		t.Errorf("unexpected errors: %v", err.Errors)
	}
}

func TestProjectYearBounds(t *testing.T) {
	tests := []struct {
		year int
		ok   bool
	}{
		{1999, false},
		{2000, true},
		{2100, true},
		{2101, false},
	}
	for _, tt := range tests {
		p := validProject()
		p.Year = tt.year
		err := Project(p)
		if (err == nil) != tt.ok {
			t.Errorf("year %d: got err=%v, want ok=%v", tt.year, err, tt.ok)
		}
	}
}

func TestProjectWhitespaceOnlyFields(t *testing.T) {
	p := validProject()
	p.Description = "   \t"
	if err := Project(p); err == nil {
		t.Error("whitespace-only description accepted")
	}
}

func TestCategory(t *testing.T) {
	valid := models.Category{ID: "weddings", Name: "Weddings", Description: "d"}
	if err := Category(valid); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}

	err := Category(models.Category{})
	if err == nil {
		t.Fatal("empty category accepted")
	}
	if len(err.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(err.Errors), err.Errors)
	}
}

func TestSiteConfig(t *testing.T) {
	cfg := models.DefaultSiteConfig()
	cfg.SiteName = "Studio"
	cfg.Tagline = "Events"
	cfg.FaviconURL = "/favicon.ico"
	cfg.ContactEmail = "hello@example.com"
	cfg.Phone = "+390289031657"
	cfg.Address = "Via Roma 1"
	cfg.GoogleMapsURL = "https://maps.example.com"
	cfg.Legal.CompanyName = "Studio SRL"
	cfg.Legal.PIVA = "IT01234567890"
	cfg.SEO.DefaultMetaTitle = "Studio"
	cfg.SEO.DefaultMetaDescription = "Events studio"

	if err := SiteConfig(cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg.Phone = ""
	cfg.OpeningHours = nil
	err := SiteConfig(cfg)
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	if len(err.Errors) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(err.Errors), err.Errors)
	}
}
