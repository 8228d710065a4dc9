package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/aradaa/internal/auth"
)

// pageHandler is a page handler that runs with an authenticated session.
type pageHandler func(w http.ResponseWriter, r *http.Request, s *auth.Session)

// requireLogin resolves the session from the auth cookie. Visitors without a
// valid session are sent to the login page; sessions below minimum get 403.
func (s *Server) requireLogin(minimum string) func(pageHandler) http.Handler {
	return func(next pageHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.Auth.Authenticate(r.Context(), auth.TokenFromRequest(r))
			if errors.Is(err, auth.ErrUnauthenticated) {
				s.Auth.ClearCookie(w)
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			if err != nil {
				slog.Error("failed to authenticate page request", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !sess.Can(minimum) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next(w, r, sess)
		})
	}
}
