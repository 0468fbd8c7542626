package http

import (
	"net/http"

	"moodtracker/internal/config"
	"moodtracker/internal/http/handler"
	mw "moodtracker/internal/http/middleware"
	"moodtracker/internal/mood"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, svc *mood.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))

	root := &handler.RootHandler{Svc: svc}
	r.Get("/", root.Root)
	r.Get("/health", root.Health)

	moodH := &handler.MoodHandler{Svc: svc}

	r.Route("/api", func(r chi.Router) {
		r.Get("/mood-options", moodH.Options)
		r.Get("/stats", moodH.Stats)

		r.Route("/moods", func(r chi.Router) {
			r.Post("/", moodH.Create)
			r.Get("/", moodH.List)

			r.Get("/export/csv", moodH.ExportCSV)

			r.Get("/{id}", moodH.Get)
			r.Put("/{id}", moodH.Update)
			r.Delete("/{id}", moodH.Delete)
		})
	})

	return r
}
