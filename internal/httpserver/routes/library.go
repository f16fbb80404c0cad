package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/httpserver/handlers"
)

func init() { Register(registerLibrary) }

func registerLibrary(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Delete("/", handlers.ClearBookmarks(d))
		r.Get("/cases", handlers.ListBookmarkedCases(d))
		r.Put("/{caseID}", handlers.AddBookmark(d))
		r.Delete("/{caseID}", handlers.RemoveBookmark(d))
		r.Post("/{caseID}/toggle", handlers.ToggleBookmark(d))
	})

	r.Route("/api/collections", func(r chi.Router) {
		r.Get("/", handlers.ListCollections(d))
		r.Post("/", handlers.CreateCollection(d))
		r.Get("/{collectionID}", handlers.GetCollection(d))
		r.Patch("/{collectionID}", handlers.UpdateCollection(d))
		r.Delete("/{collectionID}", handlers.DeleteCollection(d))
		r.Get("/{collectionID}/cases", handlers.CollectionCases(d))
		r.Put("/{collectionID}/cases/{caseID}", handlers.CollectionAddCase(d))
		r.Delete("/{collectionID}/cases/{caseID}", handlers.CollectionRemoveCase(d))
		r.Get("/{collectionID}/share", handlers.ShareCollection(d))
		r.Get("/{collectionID}/export", handlers.ExportCollection(d))
	})
}
