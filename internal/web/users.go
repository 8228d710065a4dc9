package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/store"
)

// UsersPage handles GET /admin/users (admin only).
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	users, err := store.ListUsers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, http.StatusOK, "users.html", &struct {
		PageData
		Users []model.User
		Roles []string
	}{
		PageData: PageData{
			Title:   "Users",
			Session: sess,
			Error:   r.URL.Query().Get("error"),
			Success: r.URL.Query().Get("success"),
		},
		Users: users,
		Roles: []string{model.RoleEditor, model.RoleAdmin},
	})
}

// UserCreateSubmit handles POST /admin/users (admin only).
func (s *Server) UserCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	email := model.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	role := r.FormValue("role")

	if !strings.Contains(email, "@") || !model.ValidRole(role) {
		redirectUsers(w, r, "error", "Enter a valid email and role.")
		return
	}
	if err := model.ValidatePassword(password); err != nil {
		redirectUsers(w, r, "error", err.Error())
		return
	}

	existing, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		redirectUsers(w, r, "error", "That email is already in use.")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	if _, err := store.CreateUser(r.Context(), s.DB, email, hash, strings.TrimSpace(r.FormValue("full_name")), role); err != nil {
		slog.Error("failed to create user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("user created", "user", sess.Email, "new_user", email, "role", role)
	redirectUsers(w, r, "success", "User created.")
}

// UserDeactivateSubmit handles POST /admin/users/{id}/deactivate (admin only).
func (s *Server) UserDeactivateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	id := r.PathValue("id")
	if id == sess.UserID {
		redirectUsers(w, r, "error", "You cannot deactivate your own account.")
		return
	}

	if err := store.DeactivateUser(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to deactivate user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("user deleted", "user", sess.Email, "deleted_user", id)
	redirectUsers(w, r, "success", "User deactivated.")
}

func redirectUsers(w http.ResponseWriter, r *http.Request, key, msg string) {
	http.Redirect(w, r, "/admin/users?"+url.Values{key: {msg}}.Encode(), http.StatusSeeOther)
}
