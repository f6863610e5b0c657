package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"pressroom/internal/handler/web/requestid"
	"pressroom/internal/handler/web/session"
	"pressroom/internal/observability/metrics"
	"pressroom/internal/repository"
)

// AuthHandler serves the login and logout endpoints.
type AuthHandler struct {
	Users    repository.UserRepository
	Sessions *session.Manager
	Renderer *Renderer

	// limiter throttles login attempts across all clients to slow
	// down credential stuffing.
	limiter *rate.Limiter
}

// NewAuthHandler creates the auth handler with a login rate limit of
// one attempt per second with a burst of five.
func NewAuthHandler(users repository.UserRepository, sessions *session.Manager, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		Users:    users,
		Sessions: sessions,
		Renderer: renderer,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

type loginView struct {
	Flash string
	Error string
	Email string
}

// LoginForm renders the sign-in page. An already authenticated user is
// sent straight to the article listing.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.UserID(r); err == nil {
		http.Redirect(w, r, "/articles", http.StatusSeeOther)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "login", loginView{Flash: session.PopFlash(w, r)})
}

// Login validates the submitted credentials, issues a session cookie
// and redirects to the article listing.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	if !h.limiter.Allow() {
		metrics.RecordLoginAttempt("throttled")
		h.Renderer.Render(w, http.StatusTooManyRequests, "login", loginView{
			Error: "Too many login attempts. Please try again shortly.",
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func(reason string) {
		logger.Warn("login failed",
			slog.String("reason", reason),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		metrics.RecordLoginAttempt("failure")
		h.Renderer.Render(w, http.StatusUnauthorized, "login", loginView{
			Error: "Invalid email or password.",
			Email: email,
		})
	}

	if email == "" || password == "" {
		fail("missing_credentials")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		h.serverError(w, r, "look up user", err)
		return
	}
	if user == nil {
		// Burn a comparison anyway so missing and wrong-password
		// responses take similar time.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
			[]byte(password))
		fail("unknown_user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		fail("invalid_password")
		return
	}

	if err := h.Sessions.Issue(w, user.ID); err != nil {
		h.serverError(w, r, "issue session", err)
		return
	}

	logger.Info("login successful",
		slog.Int64("user_id", user.ID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	metrics.RecordLoginAttempt("success")

	http.Redirect(w, r, "/articles", http.StatusSeeOther)
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error("auth handler error",
		slog.String("request_id", requestid.FromContext(r.Context())),
		slog.String("op", op),
		slog.Any("error", err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
