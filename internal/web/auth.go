package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/model"
)

// LoginPage handles GET /admin/login. Visitors who are already signed in go
// straight to the dashboard.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Auth.Authenticate(r.Context(), auth.TokenFromRequest(r)); err == nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, http.StatusOK, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /admin/login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, http.StatusBadRequest, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	user, token, err := s.Auth.Login(r.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("login failed", "email", model.NormalizeEmail(email), "remote", r.RemoteAddr)
		s.Templates.Render(w, http.StatusUnauthorized, "login.html", &PageData{
			Title: "Sign in",
			Error: "Wrong email or password.",
		})
		return
	}
	if err != nil {
		slog.Error("login error", "error", err)
		s.Templates.Render(w, http.StatusInternalServerError, "login.html", &PageData{
			Title: "Sign in",
			Error: "Sign in failed, please try again.",
		})
		return
	}

	s.Auth.SetCookie(w, token)
	slog.Info("user logged in", "user", user.Email, "role", user.Role)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := s.Auth.Logout(r.Context(), sess); err != nil {
		slog.Error("failed to revoke token", "error", err)
	}
	s.Auth.ClearCookie(w)
	slog.Info("user logged out", "user", sess.Email)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
