package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pressroom/internal/handler/web/session"
)

// Register wires all routes onto the mux. Login, health and metrics
// are public; everything under /articles requires a session.
func Register(
	mux *http.ServeMux,
	articles *ArticleHandler,
	auth *AuthHandler,
	health *HealthHandler,
	sessions *session.Manager,
	uploadsDir, uploadsBaseURL string,
) {
	mux.HandleFunc("GET /login", auth.LoginForm)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("GET /logout", auth.Logout)

	mux.Handle("GET /articles", sessions.RequireUser(http.HandlerFunc(articles.Index)))
	mux.Handle("GET /articles/create", sessions.RequireUser(http.HandlerFunc(articles.NewForm)))
	mux.Handle("GET /articles/{id}/edit", sessions.RequireUser(http.HandlerFunc(articles.EditForm)))
	mux.Handle("POST /articles/save", sessions.RequireUser(http.HandlerFunc(articles.Save)))
	mux.Handle("POST /articles/validate", sessions.RequireUser(http.HandlerFunc(articles.Validate)))
	mux.Handle("POST /articles/{id}/delete", sessions.RequireUser(http.HandlerFunc(articles.Delete)))

	// Uploaded images are served directly from the local store.
	mux.Handle("GET "+uploadsBaseURL+"/", http.StripPrefix(uploadsBaseURL+"/", http.FileServer(http.Dir(uploadsDir))))

	mux.Handle("GET /healthz", health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/articles", http.StatusSeeOther)
	})
}
