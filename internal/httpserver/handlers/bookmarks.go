package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/httpserver/deps"
)

// ListBookmarks returns the bookmarked case ids in insertion order.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"caseIds": d.Bookmarks.IDs()})
	}
}

// ListBookmarkedCases resolves bookmarks through the case cache. Ids whose
// record was never cached are dropped from the result.
func ListBookmarkedCases(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"cases": d.Bookmarks.Cases()})
	}
}

// AddBookmark bookmarks a case. The body may carry the full case record so
// the cache can resolve it later; the id in the URL wins on mismatch.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := chi.URLParam(r, "caseID")
		cacheBodyCase(d, r, caseID)
		d.Bookmarks.Add(r.Context(), caseID)
		writeJSON(w, http.StatusOK, map[string]any{"bookmarked": true})
	}
}

// RemoveBookmark un-bookmarks a case. A no-op for unknown ids; collections
// are never touched.
func RemoveBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Bookmarks.Remove(r.Context(), chi.URLParam(r, "caseID"))
		writeJSON(w, http.StatusOK, map[string]any{"bookmarked": false})
	}
}

// ToggleBookmark flips the bookmark state and reports the state after the
// call.
func ToggleBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := chi.URLParam(r, "caseID")
		cacheBodyCase(d, r, caseID)
		bookmarked := d.Bookmarks.Toggle(r.Context(), caseID)
		writeJSON(w, http.StatusOK, map[string]any{"bookmarked": bookmarked})
	}
}

// ClearBookmarks empties the bookmark set. Collections survive.
func ClearBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Bookmarks.Clear(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"caseIds": []string{}})
	}
}

// cacheBodyCase caches a case record carried in the request body, if any.
// Mutating bookmark/collection endpoints accept the record inline so the
// UI can persist display data in the same call that saves the id.
func cacheBodyCase(d deps.Deps, r *http.Request, caseID string) {
	if r.ContentLength == 0 {
		return
	}
	var cs domain.Case
	if err := decodeBody(r, &cs); err != nil {
		return
	}
	cs.CaseID = caseID
	d.Cases.Put(r.Context(), cs)
}
