package models

import "testing"

func TestNormalizeBackfillsStageIDs(t *testing.T) {
	p := Project{
		ID: "villa",
		Stages: []ProjectStage{
			{Title: "Concept"},
			{ID: "stage-custom", Title: "Build"},
			{Title: "Reveal"},
		},
	}
	p.Normalize()

	if p.Stages[0].ID == "" || p.Stages[2].ID == "" {
		t.Fatal("missing stage IDs not backfilled")
	}
	if p.Stages[1].ID != "stage-custom" {
		t.Errorf("existing stage ID overwritten: %q", p.Stages[1].ID)
	}
	if p.Stages[0].ID == p.Stages[2].ID {
		t.Errorf("distinct stages got the same ID: %q", p.Stages[0].ID)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	p := Project{ID: "villa", Stages: []ProjectStage{{Title: "Concept"}}}
	p.Normalize()
	first := p.Stages[0].ID

	p.Normalize()
	if p.Stages[0].ID != first {
		t.Errorf("stage ID changed across normalizations: %q vs %q", p.Stages[0].ID, first)
	}

	// The same project shape always yields the same ID.
	q := Project{ID: "villa", Stages: []ProjectStage{{Title: "Concept"}}}
	q.Normalize()
	if q.Stages[0].ID != first {
		t.Errorf("equal records got different stage IDs: %q vs %q", q.Stages[0].ID, first)
	}
}

func TestResolveIcon(t *testing.T) {
	tests := []struct {
		name  string
		stage ProjectStage
		index int
		want  StageIcon
	}{
		{"explicit icon wins", ProjectStage{Icon: IconFlag, Type: "drawing"}, 0, IconFlag},
		{"drawing type", ProjectStage{Type: "drawing"}, 0, IconBlueprint},
		{"final type", ProjectStage{Type: "final"}, 0, IconSparkles},
		{"rotation position 0", ProjectStage{}, 0, IconCompass},
		{"rotation position 3", ProjectStage{}, 3, IconCamera},
		{"rotation wraps", ProjectStage{}, 6, IconCompass},
		{"unknown type falls to rotation", ProjectStage{Type: "misc"}, 1, IconBlueprint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveIcon(tt.stage, tt.index); got != tt.want {
				t.Errorf("ResolveIcon = %q, want %q", got, tt.want)
			}
		})
	}
}
