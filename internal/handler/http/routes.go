package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// every sync route requires a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync/session", h.startSession)
		r.Post("/api/sync/full", h.fullSync)
		r.Post("/api/sync/delta", h.deltaSync)
		r.Post("/api/sync/apply", h.applyChanges)
	})

	return router
}
