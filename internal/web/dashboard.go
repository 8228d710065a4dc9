package web

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/ordering"
	"github.com/erazemk/aradaa/internal/store"
)

// row is one line of a dashboard table.
type row struct {
	ID     string
	Label  string
	Detail string
	Order  int
	Active bool
}

type mover interface {
	Move(ctx context.Context, id string, dir ordering.Direction) ([]ordering.Entry, error)
}

// collection is an ordered collection shown on the dashboard.
type collection struct {
	title string
	order mover
	rows  func(ctx context.Context, db *sql.DB) ([]row, error)
}

// dashboardCollections lists the collections in the order they appear.
var dashboardCollections = []string{"services", "projects", "showreel"}

func newCollections(db *sql.DB) map[string]collection {
	return map[string]collection{
		"services": {
			title: "Services",
			order: store.ServiceOrder(db),
			rows: func(ctx context.Context, db *sql.DB) ([]row, error) {
				services, err := store.ListServices(ctx, db, false)
				rows := make([]row, 0, len(services))
				for _, sv := range services {
					rows = append(rows, row{ID: sv.ID, Label: sv.Title, Detail: sv.Category, Order: sv.DisplayOrder, Active: sv.IsActive})
				}
				return rows, err
			},
		},
		"projects": {
			title: "Projects",
			order: store.ProjectOrder(db),
			rows: func(ctx context.Context, db *sql.DB) ([]row, error) {
				projects, err := store.ListProjects(ctx, db, store.ProjectFilter{})
				rows := make([]row, 0, len(projects))
				for _, p := range projects {
					rows = append(rows, row{ID: p.ID, Label: p.Title, Detail: p.Category, Order: p.DisplayOrder, Active: p.IsActive})
				}
				return rows, err
			},
		},
		"showreel": {
			title: "Showreel",
			order: store.ShowreelOrder(db),
			rows: func(ctx context.Context, db *sql.DB) ([]row, error) {
				entries, err := store.ListShowreel(ctx, db, false)
				rows := make([]row, 0, len(entries))
				for _, e := range entries {
					label := e.Title
					if label == "" {
						label = e.MediaURL
					}
					rows = append(rows, row{ID: e.ID, Label: label, Detail: e.MediaType, Order: e.DisplayOrder, Active: e.IsActive})
				}
				return rows, err
			},
		},
	}
}

type dashboardSection struct {
	Name  string
	Title string
	Rows  []row
}

// Dashboard handles GET /admin.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	var sections []dashboardSection
	for _, name := range dashboardCollections {
		c := s.collections[name]
		rows, err := c.rows(r.Context(), s.DB)
		if err != nil {
			slog.Error("failed to list for dashboard", "collection", name, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		sections = append(sections, dashboardSection{Name: name, Title: c.title, Rows: rows})
	}

	s.Templates.Render(w, http.StatusOK, "admin.html", &struct {
		PageData
		Sections []dashboardSection
	}{
		PageData: PageData{
			Title:   "Dashboard",
			Session: sess,
			Error:   r.URL.Query().Get("error"),
			Success: r.URL.Query().Get("success"),
		},
		Sections: sections,
	})
}

// MoveSubmit handles POST /admin/{collection}/{id}/move with a direction
// form value, then redirects back to the dashboard.
func (s *Server) MoveSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	name := r.PathValue("collection")
	c, ok := s.collections[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	dir, err := ordering.ParseDirection(r.FormValue("direction"))
	if err != nil {
		redirectDashboard(w, r, "error", err.Error())
		return
	}

	id := r.PathValue("id")
	_, err = c.order.Move(r.Context(), id, dir)
	switch {
	case errors.Is(err, ordering.ErrNotFound):
		redirectDashboard(w, r, "error", "Only active items can be moved.")
		return
	case err != nil:
		slog.Error("failed to move", "collection", name, "id", id, "error", err)
		redirectDashboard(w, r, "error", "Moving failed, please try again.")
		return
	}

	slog.Info("item moved", "user", sess.Email, "collection", name, "id", id, "direction", string(dir))
	redirectDashboard(w, r, "success", "Order updated.")
}

func redirectDashboard(w http.ResponseWriter, r *http.Request, key, msg string) {
	http.Redirect(w, r, "/admin?"+url.Values{key: {msg}}.Encode(), http.StatusSeeOther)
}
