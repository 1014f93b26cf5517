package api

import (
	"net/http"

	"shopify-sitemap-service/internal/infrastructure/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the chi router for the service. Anything not matched
// by an explicit route falls through to the public static directory,
// which is where generated sitemap artifacts live.
func NewRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/", h.SignedEntry)
	r.Get("/install", h.Install)
	r.Get("/app", h.App)
	r.Get("/auth/callback", h.AuthCallback)

	r.Post("/api/generate-sitemap", h.GenerateSitemap)

	r.Handle("/*", http.FileServer(http.Dir(h.publicDir)))

	return r
}
