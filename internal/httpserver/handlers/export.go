package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/export"
	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/logger"
)

// ExportBookmarks serves all bookmarked cases as a downloadable JSON
// document.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Exporter.ExportBookmarks()
		serveDocument(w, d, doc)
	}
}

// ExportCollection serves one collection's cases as a downloadable JSON
// document.
func ExportCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := d.Exporter.ExportCollection(chi.URLParam(r, "collectionID"))
		if doc == nil {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		serveDocument(w, d, doc)
	}
}

func serveDocument(w http.ResponseWriter, d deps.Deps, doc *export.Document) {
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", d.Exporter.Filename(doc)))
	writeJSON(w, http.StatusOK, doc)
}

// ImportDocument restores a previously exported document: cases go back
// into the cache, their ids back into the bookmark set.
func ImportDocument(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc export.Document
		if err := decodeBody(r, &doc); err != nil {
			writeError(w, http.StatusBadRequest, "malformed export document")
			return
		}

		imported, err := d.Exporter.Import(r.Context(), &doc)
		if err != nil {
			if errors.Is(err, export.ErrUnsupportedFormat) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			d.Logger.Error("import failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
	}
}

// ShareCollection returns a shareable link for a collection.
func ShareCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok := d.Exporter.ShareLink(chi.URLParam(r, "collectionID"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"url": url})
	}
}

// Shared resolves a share token back into a collection view. A local
// collection with the encoded id is served live; otherwise the view is
// reconstructed from the payload embedded in the token, with whatever
// case records the cache can resolve.
func Shared(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("c")
		if token == "" {
			writeError(w, http.StatusBadRequest, "missing share token c")
			return
		}
		ref, err := export.DecodeShareToken(token)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid share token")
			return
		}

		if col, ok := d.Collections.Get(ref.CollectionID); ok {
			cases, _ := d.Collections.Cases(ref.CollectionID)
			writeJSON(w, http.StatusOK, map[string]any{
				"collection": col,
				"cases":      cases,
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"collection": map[string]any{
				"id":      ref.CollectionID,
				"name":    ref.Name,
				"caseIds": ref.CaseIDs,
			},
			"cases": d.Cases.GetMany(ref.CaseIDs),
		})
	}
}
