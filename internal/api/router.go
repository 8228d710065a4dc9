package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/model"
)

// registerResource wires the admin CRUD and move endpoints of one collection.
func registerResource[T editable](mux *http.ServeMux, path string, h *ResourceHandler[T], guard func(SessionHandler) http.Handler) {
	mux.Handle("GET "+path, guard(h.List))
	mux.Handle("POST "+path, guard(h.Create))
	mux.Handle("GET "+path+"/{id}", guard(h.Get))
	mux.Handle("PUT "+path+"/{id}", guard(h.Update))
	mux.Handle("DELETE "+path+"/{id}", guard(h.Delete))
	mux.Handle("POST "+path+"/{id}/move", guard(h.Move))
}

// NewRouter creates the API router with all endpoints registered. It also
// serves /media/.
func NewRouter(db *sql.DB, a *auth.Authenticator) http.Handler {
	mux := http.NewServeMux()

	public := &PublicHandler{DB: db}
	authHandler := &AuthHandler{DB: db, Auth: a}
	usersHandler := &UsersHandler{DB: db}
	mediaHandler := &MediaHandler{DB: db}

	// Every account is at least an editor.
	editor := RequireSession(a, model.RoleEditor)
	admin := RequireSession(a, model.RoleAdmin)

	// Public site content.
	mux.HandleFunc("GET /api/services", public.Services)
	mux.HandleFunc("GET /api/showreel", public.Showreel)
	mux.HandleFunc("GET /api/projects", public.Projects)
	mux.HandleFunc("GET /api/hero", currentSection[model.HeroSection](db, "hero section"))
	mux.HandleFunc("GET /api/about", currentSection[model.AboutSection](db, "about section"))
	mux.HandleFunc("GET /api/team", currentSection[model.TeamSection](db, "team section"))
	mux.HandleFunc("GET /api/contact-info", currentSection[model.ContactInfo](db, "contact info"))
	mux.HandleFunc("GET /media/{bucket}/{path...}", mediaHandler.Serve)

	// Auth.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /api/auth/me", editor(authHandler.Me))
	mux.Handle("POST /api/auth/logout", editor(authHandler.Logout))
	mux.Handle("PUT /api/auth/password", editor(authHandler.ChangePassword))

	// Content administration (editor+).
	registerResource(mux, "/api/admin/services", servicesResource(db), editor)
	registerResource(mux, "/api/admin/projects", projectsResource(db), editor)
	registerResource(mux, "/api/admin/showreel", showreelResource(db), editor)
	registerResource(mux, "/api/admin/hero", sectionResource[model.HeroSection](db, "hero section"), editor)
	registerResource(mux, "/api/admin/about", sectionResource[model.AboutSection](db, "about section"), editor)
	registerResource(mux, "/api/admin/team", sectionResource[model.TeamSection](db, "team section"), editor)
	registerResource(mux, "/api/admin/contact-info", sectionResource[model.ContactInfo](db, "contact info"), editor)
	mux.Handle("POST /api/upload", editor(mediaHandler.Upload))
	mux.Handle("GET /api/admin/media", editor(mediaHandler.List))
	mux.Handle("DELETE /api/admin/media/{bucket}/{path...}", editor(mediaHandler.Delete))

	// Users (admin only).
	mux.Handle("GET /api/admin/users", admin(usersHandler.List))
	mux.Handle("POST /api/admin/users", admin(usersHandler.Create))
	mux.Handle("PUT /api/admin/users/{id}", admin(usersHandler.Update))
	mux.Handle("PUT /api/admin/users/{id}/password", admin(usersHandler.ResetPassword))
	mux.Handle("DELETE /api/admin/users/{id}", admin(usersHandler.Delete))

	return mux
}
