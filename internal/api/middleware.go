package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/aradaa/internal/auth"
)

// SessionHandler is a handler that runs with an authenticated session.
type SessionHandler func(w http.ResponseWriter, r *http.Request, s *auth.Session)

// RequireSession returns middleware that resolves the request's session and
// checks it has at least the given role before calling the handler.
func RequireSession(a *auth.Authenticator, minimum string) func(SessionHandler) http.Handler {
	return func(next SessionHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := a.Authenticate(r.Context(), auth.TokenFromRequest(r))
			if errors.Is(err, auth.ErrUnauthenticated) {
				jsonError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err != nil {
				slog.Error("failed to authenticate request", "error", err)
				jsonError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !s.Can(minimum) {
				jsonError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next(w, r, s)
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
