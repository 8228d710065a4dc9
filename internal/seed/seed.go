// Package seed loads initial site content from a YAML file.
//
// Keys follow the JSON API field names. Items are placed in file order and
// are active unless the file says is_active: false.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/store"
)

// File is the content of a seed file.
type File struct {
	Services []*model.Service       `json:"services"`
	Projects []*model.Project       `json:"projects"`
	Showreel []*model.ShowreelEntry `json:"showreel"`
	Hero     *model.HeroSection     `json:"hero"`
	About    *model.AboutSection    `json:"about"`
	Team     *model.TeamSection     `json:"team"`
	Contact  *model.ContactInfo     `json:"contact"`
}

// Parse decodes a seed file. The YAML is converted to JSON so the model's
// json tags are the single source of field names.
func Parse(data []byte) (*File, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	for key, v := range tree {
		switch v := v.(type) {
		case []any:
			for _, item := range v {
				defaultActive(item)
			}
		case map[string]any:
			defaultActive(v)
		default:
			return nil, fmt.Errorf("seed key %q: expected a list or a mapping", key)
		}
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}
	f := &File{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return f, nil
}

func defaultActive(v any) {
	if m, ok := v.(map[string]any); ok {
		if _, set := m["is_active"]; !set {
			m["is_active"] = true
		}
	}
}

type validator interface{ Validate() error }

func validateAll[T validator](kind string, items []T) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
	}
	return nil
}

// Validate checks every item in the file.
func (f *File) Validate() error {
	if err := validateAll("services", f.Services); err != nil {
		return err
	}
	if err := validateAll("projects", f.Projects); err != nil {
		return err
	}
	if err := validateAll("showreel", f.Showreel); err != nil {
		return err
	}
	for _, s := range f.sections() {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.Kind(), err)
		}
	}
	return nil
}

func (f *File) sections() []model.Section {
	var out []model.Section
	if f.Hero != nil {
		out = append(out, f.Hero)
	}
	if f.About != nil {
		out = append(out, f.About)
	}
	if f.Team != nil {
		out = append(out, f.Team)
	}
	if f.Contact != nil {
		out = append(out, f.Contact)
	}
	return out
}

// Apply validates f and writes its content through the ordering managers.
func Apply(ctx context.Context, db *sql.DB, f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}

	services := store.ServiceOrder(db)
	for _, s := range f.Services {
		if err := services.Place(ctx, s, nil); err != nil {
			return fmt.Errorf("seeding service %q: %w", s.Title, err)
		}
	}

	projects := store.ProjectOrder(db)
	for _, p := range f.Projects {
		if err := projects.Place(ctx, p, nil); err != nil {
			return fmt.Errorf("seeding project %q: %w", p.Title, err)
		}
	}

	showreel := store.ShowreelOrder(db)
	for _, e := range f.Showreel {
		if err := showreel.Place(ctx, e, nil); err != nil {
			return fmt.Errorf("seeding showreel entry %q: %w", e.MediaURL, err)
		}
	}

	if f.Hero != nil {
		if err := store.SectionOrder[model.HeroSection](db).Place(ctx, f.Hero, nil); err != nil {
			return fmt.Errorf("seeding hero: %w", err)
		}
	}
	if f.About != nil {
		if err := store.SectionOrder[model.AboutSection](db).Place(ctx, f.About, nil); err != nil {
			return fmt.Errorf("seeding about: %w", err)
		}
	}
	if f.Team != nil {
		if err := store.SectionOrder[model.TeamSection](db).Place(ctx, f.Team, nil); err != nil {
			return fmt.Errorf("seeding team: %w", err)
		}
	}
	if f.Contact != nil {
		if err := store.SectionOrder[model.ContactInfo](db).Place(ctx, f.Contact, nil); err != nil {
			return fmt.Errorf("seeding contact: %w", err)
		}
	}

	slog.Info("content seeded",
		"services", len(f.Services),
		"projects", len(f.Projects),
		"showreel", len(f.Showreel),
		"sections", len(f.sections()),
	)
	return store.SetSetting(ctx, db, store.SettingSeededAt, time.Now().UTC().Format(time.RFC3339))
}

// LoadFile reads, parses and applies the seed file at path.
func LoadFile(ctx context.Context, db *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return Apply(ctx, db, f)
}
