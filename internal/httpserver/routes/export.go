package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/httpserver/handlers"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	r.Get("/api/export/bookmarks", handlers.ExportBookmarks(d))
	r.Post("/api/import", handlers.ImportDocument(d))
	r.Get("/api/shared", handlers.Shared(d))
}
