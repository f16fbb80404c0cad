package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.Get("/api/search", handlers.Search(d))
	r.Get("/api/browse", handlers.Browse(d))
	r.Get("/api/topics", handlers.Topics(d))
	r.Get("/api/translations", handlers.Translations(d))
}
