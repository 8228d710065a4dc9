package auth

import (
	"time"

	"github.com/erazemk/aradaa/internal/model"
)

// CookieName is the cookie that carries the session token.
const CookieName = "auth-token"

// Session is the authenticated identity of one request. Handlers that need
// it take it as an argument instead of reading it from the request context.
type Session struct {
	UserID    string
	Email     string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// NewSession builds a session from validated claims.
func NewSession(c *Claims) *Session {
	s := &Session{
		UserID:  c.UserID,
		Email:   c.Email,
		Role:    c.Role,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

// Can reports whether the session's role meets minimum.
func (s *Session) Can(minimum string) bool {
	return s != nil && model.RoleAtLeast(s.Role, minimum)
}
