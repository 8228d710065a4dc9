package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/aradaa/internal/db"
	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
)

func TestListServicesActiveOnly(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	placeService(t, database, "Shown", nil)
	hidden := newService("Hidden")
	hidden.IsActive = false
	if err := ServiceOrder(database).Place(ctx, hidden, nil); err != nil {
		t.Fatalf("Place: %v", err)
	}

	all, _ := ListServices(ctx, database, false)
	if len(all) != 2 {
		t.Errorf("expected 2 services, got %d", len(all))
	}

	active, _ := ListServices(ctx, database, true)
	if len(active) != 1 || active[0].Title != "Shown" {
		t.Errorf("expected only the active service, got %+v", active)
	}
}

func TestDeleteService(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s := placeService(t, database, "Gone", nil)
	if err := DeleteService(ctx, database, s.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}

	got, err := GetService(ctx, database, s.ID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}

	if err := DeleteService(ctx, database, s.ID); !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListProjectsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	m := ProjectOrder(database)

	projects := []*model.Project{
		{Title: "Villa", Category: model.ProjectCategoryResidential, ImageURL: "/1.jpg", IsFeatured: true, IsActive: true},
		{Title: "HQ", Category: model.ProjectCategoryOffice, ImageURL: "/2.jpg", ImageAlt: "Lobby", IsActive: true},
		{Title: "Flat", Category: model.ProjectCategoryResidential, ImageURL: "/3.jpg", IsActive: true},
		{Title: "Draft", Category: model.ProjectCategoryMosque, ImageURL: "/4.jpg", IsFeatured: true},
	}
	for _, p := range projects {
		if err := m.Place(ctx, p, nil); err != nil {
			t.Fatalf("Place %s: %v", p.Title, err)
		}
	}

	tests := []struct {
		name   string
		filter ProjectFilter
		want   []string
	}{
		{"all", ProjectFilter{}, []string{"Villa", "HQ", "Flat", "Draft"}},
		{"active", ProjectFilter{ActiveOnly: true}, []string{"Villa", "HQ", "Flat"}},
		{"residential", ProjectFilter{ActiveOnly: true, Category: model.ProjectCategoryResidential}, []string{"Villa", "Flat"}},
		{"featured", ProjectFilter{ActiveOnly: true, FeaturedOnly: true}, []string{"Villa"}},
	}

	for _, tt := range tests {
		got, err := ListProjects(ctx, database, tt.filter)
		if err != nil {
			t.Fatalf("%s: ListProjects: %v", tt.name, err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %d projects, got %d", tt.name, len(tt.want), len(got))
			continue
		}
		for i, title := range tt.want {
			if got[i].Title != title {
				t.Errorf("%s: position %d: expected %q, got %q", tt.name, i, title, got[i].Title)
			}
		}
	}

	hq, _ := GetProject(ctx, database, projects[1].ID)
	if hq == nil || hq.ImageAlt != "Lobby" {
		t.Errorf("expected image alt to round-trip, got %+v", hq)
	}
}

func TestShowreelRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	e := &model.ShowreelEntry{MediaType: model.MediaTypeVideo, MediaURL: "/media/videos/reel.mp4", Title: "Reel", IsActive: true}
	if err := ShowreelOrder(database).Place(ctx, e, nil); err != nil {
		t.Fatalf("Place: %v", err)
	}

	got, err := GetShowreelEntry(ctx, database, e.ID)
	if err != nil || got == nil {
		t.Fatalf("GetShowreelEntry: %v", err)
	}
	if got.Title != "Reel" || got.Alt != "" || got.MediaType != model.MediaTypeVideo {
		t.Errorf("unexpected entry: %+v", got)
	}

	if err := DeleteShowreelEntry(ctx, database, e.ID); err != nil {
		t.Fatalf("DeleteShowreelEntry: %v", err)
	}
	list, _ := ListShowreel(ctx, database, false)
	if len(list) != 0 {
		t.Errorf("expected empty showreel, got %d", len(list))
	}
}
