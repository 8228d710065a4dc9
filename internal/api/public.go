package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/store"
)

// PublicHandler serves the read-only endpoints the site renders from.
// Only active content is returned.
type PublicHandler struct {
	DB *sql.DB
}

// Services handles GET /api/services.
func (h *PublicHandler) Services(w http.ResponseWriter, r *http.Request) {
	services, err := store.ListServices(r.Context(), h.DB, true)
	if err != nil {
		slog.Error("failed to list services", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	jsonResponse(w, http.StatusOK, orEmpty(services))
}

// Showreel handles GET /api/showreel.
func (h *PublicHandler) Showreel(w http.ResponseWriter, r *http.Request) {
	entries, err := store.ListShowreel(r.Context(), h.DB, true)
	if err != nil {
		slog.Error("failed to list showreel", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list showreel")
		return
	}
	jsonResponse(w, http.StatusOK, orEmpty(entries))
}

// Projects handles GET /api/projects?category=&featured=true.
func (h *PublicHandler) Projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProjectFilter{
		ActiveOnly:   true,
		Category:     q.Get("category"),
		FeaturedOnly: q.Get("featured") == "true",
	}
	if filter.Category != "" && !model.ValidProjectCategory(filter.Category) {
		jsonError(w, http.StatusBadRequest, "unknown category")
		return
	}

	projects, err := store.ListProjects(r.Context(), h.DB, filter)
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	jsonResponse(w, http.StatusOK, orEmpty(projects))
}

// currentSection serves the published section of one kind.
func currentSection[T any, S interface {
	*T
	model.Section
}](db *sql.DB, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := store.CurrentSection[T, S](r.Context(), db)
		if err != nil {
			slog.Error("failed to get section", "section", name, "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to get "+name)
			return
		}
		if s == nil {
			jsonError(w, http.StatusNotFound, "no active "+name)
			return
		}
		jsonResponse(w, http.StatusOK, s)
	}
}
