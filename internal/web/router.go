package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/model"
	webembed "github.com/erazemk/aradaa/web"
)

// NewRouter creates the page router: the public home page and the admin
// pages under /admin.
func NewRouter(db *sql.DB, a *auth.Authenticator) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:          db,
		Templates:   templates,
		Auth:        a,
		collections: newCollections(db),
	}

	mux := http.NewServeMux()
	editor := s.requireLogin(model.RoleEditor)
	admin := s.requireLogin(model.RoleAdmin)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.HandleFunc("GET /{$}", s.Home)

	mux.HandleFunc("GET /admin/login", s.LoginPage)
	mux.HandleFunc("POST /admin/login", s.LoginSubmit)
	mux.Handle("POST /admin/logout", editor(s.Logout))

	mux.Handle("GET /admin", editor(s.Dashboard))
	mux.Handle("POST /admin/{collection}/{id}/move", editor(s.MoveSubmit))

	mux.Handle("GET /admin/users", admin(s.UsersPage))
	mux.Handle("POST /admin/users", admin(s.UserCreateSubmit))
	mux.Handle("POST /admin/users/{id}/deactivate", admin(s.UserDeactivateSubmit))

	return mux, nil
}
