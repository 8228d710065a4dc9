package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/store"
)

var (
	// ErrUnauthenticated is returned when a request carries no usable session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials is returned by Login for an unknown email, an
	// inactive account or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authenticator issues and checks session tokens against the database.
type Authenticator struct {
	DB     *sql.DB
	Secret string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

// TokenFromRequest returns the session token from the auth cookie, falling
// back to an Authorization: Bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Authenticate resolves token into a session. Revoked tokens and tokens of
// deactivated users are rejected. The role comes from the database so role
// changes apply to existing sessions.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := ValidateToken(a.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	revoked, err := store.IsTokenRevoked(ctx, a.DB, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}

	user, err := store.GetUser(ctx, a.DB, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("%w: user inactive", ErrUnauthenticated)
	}

	s := NewSession(claims)
	s.Email = user.Email
	s.Role = user.Role
	return s, nil
}

// Login checks credentials and returns the user with a fresh token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := store.GetUserByEmail(ctx, a.DB, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(a.Secret, user)
	if err != nil {
		return nil, "", err
	}

	if err := store.TouchLastLogin(ctx, a.DB, user.ID); err != nil {
		return nil, "", err
	}
	user, err = store.GetUser(ctx, a.DB, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the session's token.
func (a *Authenticator) Logout(ctx context.Context, s *Session) error {
	return store.RevokeToken(ctx, a.DB, s.TokenID, s.ExpiresAt)
}

// SetCookie stores token in the session cookie.
func (a *Authenticator) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   a.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func (a *Authenticator) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
