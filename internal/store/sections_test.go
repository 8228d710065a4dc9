package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/aradaa/internal/db"
	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
)

func TestSectionRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hero := &model.HeroSection{
		TitleLine1:       "Designing",
		TitleLine2:       "Spaces",
		Description:      "Interiors that last.",
		Features:         []string{"Residential", "Commercial"},
		FeaturedProjects: []model.FeaturedProject{{Title: "Villa", ImageURL: "/v.jpg"}},
	}
	hero.IsActive = true
	if err := SectionOrder[model.HeroSection](database).Place(ctx, hero, nil); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if hero.ID == "" {
		t.Fatal("expected ID to be assigned")
	}

	got, err := GetSection[model.HeroSection](ctx, database, hero.ID)
	if err != nil || got == nil {
		t.Fatalf("GetSection: %v", err)
	}
	if got.TitleLine2 != "Spaces" || len(got.Features) != 2 || got.FeaturedProjects[0].Title != "Villa" {
		t.Errorf("content did not round-trip: %+v", got)
	}
	if got.ID != hero.ID || !got.IsActive || got.CreatedAt.IsZero() {
		t.Errorf("meta not loaded from columns: %+v", got.SectionMeta)
	}

	// A hero ID is not an about section.
	other, err := GetSection[model.AboutSection](ctx, database, hero.ID)
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if other != nil {
		t.Error("expected nil for section of another kind")
	}
}

func TestCurrentSectionFollowsOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	m := SectionOrder[model.AboutSection](database)

	current, err := CurrentSection[model.AboutSection](ctx, database)
	if err != nil {
		t.Fatalf("CurrentSection: %v", err)
	}
	if current != nil {
		t.Fatal("expected no current section")
	}

	old := &model.AboutSection{MainHeading: "Old"}
	old.IsActive = true
	if err := m.Place(ctx, old, nil); err != nil {
		t.Fatalf("Place: %v", err)
	}

	// Placing a new section at 0 pushes the old one out of the way.
	fresh := &model.AboutSection{MainHeading: "New"}
	fresh.IsActive = true
	if err := m.Place(ctx, fresh, intPtr(0)); err != nil {
		t.Fatalf("Place: %v", err)
	}

	current, err = CurrentSection[model.AboutSection](ctx, database)
	if err != nil || current == nil {
		t.Fatalf("CurrentSection: %v", err)
	}
	if current.MainHeading != "New" {
		t.Errorf("expected New to be current, got %q", current.MainHeading)
	}

	all, _ := ListSections[model.AboutSection](ctx, database)
	if len(all) != 2 || all[1].MainHeading != "Old" || all[1].DisplayOrder != 1 {
		t.Errorf("unexpected sections: %+v", all)
	}
}

func TestSectionKindsAreOrderedSeparately(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	team := &model.TeamSection{Heading: "Team"}
	team.IsActive = true
	if err := SectionOrder[model.TeamSection](database).Place(ctx, team, intPtr(0)); err != nil {
		t.Fatalf("Place: %v", err)
	}

	contact := &model.ContactInfo{ContactHeading: "Contact", Phone1: "1", Email1: "a@b.c"}
	contact.IsActive = true
	if err := SectionOrder[model.ContactInfo](database).Place(ctx, contact, intPtr(0)); err != nil {
		t.Fatalf("Place: %v", err)
	}

	got, _ := GetSection[model.TeamSection](ctx, database, team.ID)
	if got == nil || got.DisplayOrder != 0 {
		t.Errorf("team section should keep order 0, got %+v", got)
	}

	err := DeleteSection(ctx, database, model.SectionTeam, contact.ID)
	if !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting across kinds, got %v", err)
	}
	if err := DeleteSection(ctx, database, model.SectionContact, contact.ID); err != nil {
		t.Errorf("DeleteSection: %v", err)
	}
}
