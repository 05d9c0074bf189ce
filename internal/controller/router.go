package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (c controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)
	r.Use(c.metrics.Middleware)
	r.Use(c.corsMw())

	r.NotFound(c.notFound)
	r.Handle("/metrics", c.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(c.securityHeadersMw)

		r.Get("/", c.homePage)
		r.Get("/search", c.searchPage)
		r.Get("/dashboard", c.dashboardPage)
		r.Get("/watch", c.watchPage)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/videos", c.listVideos)
		r.Get("/search", c.searchVideos)
		r.Route("/videos/{video-id}", func(r chi.Router) {
			r.Get("/", c.getVideo)
			r.Post("/{action}", c.videoAction)
		})
		r.Post("/creator/upload", c.uploadVideo)
		r.Post("/creator/videos/{video-id}/{action}", c.creatorAction)

		r.Route("/ws", func(r chi.Router) {
			r.Get("/watch/{video-id}", c.watchSession)
		})
	})

	return r
}

func (c controller) corsMw() func(http.Handler) http.Handler {
	if len(c.cfg.CORSOrigins) == 0 {
		return cors.AllowAll().Handler
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: c.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
