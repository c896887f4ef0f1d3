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

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes requiring a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)

		r.Get("/api/diary/entries", h.listEntries)
		r.Post("/api/diary/entries", h.saveEntry)
		r.Delete("/api/diary/entries/{id}", h.deleteEntry)

		r.Get("/api/files", h.listFiles)
		r.Post("/api/files", h.uploadFile)
		r.Post("/api/files/{id}/open", h.openFile)
		r.Delete("/api/files/{id}", h.deleteFile)

		r.Post("/api/export", h.export)

		r.Post("/api/store/backup", h.backup)
		r.Post("/api/store/restore", h.restore)
	})

	return router
}
