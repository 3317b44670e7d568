package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// RouterConfig holds the optional host credentials. Admin routes are open when
// either field is empty.
type RouterConfig struct {
	AdminUser     string
	AdminPassword string
}

// NewRouter mounts the REST API, the websocket feed and the health check.
func NewRouter(h *Handler, ws *WSHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	h.PublicRoutes(r)

	r.Group(func(r chi.Router) {
		if cfg.AdminUser != "" && cfg.AdminPassword != "" {
			r.Use(middleware.BasicAuth("quiz-host", map[string]string{cfg.AdminUser: cfg.AdminPassword}))
		}
		h.AdminRoutes(r)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if r.URL.Path == "/healthz" {
			return
		}
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}
