// Package session manages browser sessions for the web UI.
// Identity is carried in an HS256-signed JWT cookie; one-shot flash
// messages use a separate short-lived cookie that is cleared on read.
package session

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie holding the signed token.
	CookieName = "pressroom_session"
	// FlashCookieName is the one-shot flash message cookie.
	FlashCookieName = "pressroom_flash"
)

type ctxKey string

const ctxUserID ctxKey = "session_user_id"

// ErrNoSession indicates the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

// Manager issues and validates session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager creates a session manager. secure controls the Secure
// cookie attribute and should be true behind TLS.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Issue sets a session cookie for the given user on the response.
func (m *Manager) Issue(w http.ResponseWriter, userID int64) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID extracts and validates the user ID from the request's session
// cookie. Returns ErrNoSession for missing, malformed or expired tokens.
func (m *Manager) UserID(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, ErrNoSession
	}

	tok, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrNoSession
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrNoSession
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return 0, ErrNoSession
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrNoSession
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrNoSession
	}
	return userID, nil
}

// UserIDFromContext retrieves the authenticated user ID stored by
// RequireUser. Returns 0 if the request was not authenticated.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(ctxUserID).(int64); ok {
		return id
	}
	return 0
}

// WithUserID stores the authenticated user ID in the context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// RequireUser is middleware that redirects unauthenticated requests
// to the login page and adds the user ID to the context otherwise.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.UserID(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// SetFlash stores a one-shot message shown on the next rendered page.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
