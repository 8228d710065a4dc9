package web

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/store"
)

// homeData is everything the public home page renders. Sections are nil
// when no active one exists and the template skips them.
type homeData struct {
	PageData
	Hero     *model.HeroSection
	About    *model.AboutSection
	Team     *model.TeamSection
	Contact  *model.ContactInfo
	Services []model.Service
	Projects []model.Project
	Showreel []model.ShowreelEntry
}

// Home handles GET /. All sections are loaded in parallel; if any load fails
// the page fails.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	data := &homeData{PageData: PageData{Title: "Interior Design"}}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		data.Hero, err = store.CurrentSection[model.HeroSection](ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		data.About, err = store.CurrentSection[model.AboutSection](ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		data.Team, err = store.CurrentSection[model.TeamSection](ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		data.Contact, err = store.CurrentSection[model.ContactInfo](ctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		data.Services, err = store.ListServices(ctx, s.DB, true)
		return err
	})
	g.Go(func() (err error) {
		data.Projects, err = store.ListProjects(ctx, s.DB, store.ProjectFilter{ActiveOnly: true})
		return err
	})
	g.Go(func() (err error) {
		data.Showreel, err = store.ListShowreel(ctx, s.DB, true)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to load home page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, http.StatusOK, "home.html", data)
}
