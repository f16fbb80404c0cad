package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/library"
)

type createCollectionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"max=500"`
}

type updateCollectionRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// ListCollections returns all collections.
func ListCollections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"collections": d.Collections.All()})
	}
}

// CreateCollection creates a named collection.
func CreateCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCollectionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		col, err := d.Collections.Create(r.Context(), req.Name, req.Description)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, col)
	}
}

// GetCollection returns one collection by id.
func GetCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		col, ok := d.Collections.Get(chi.URLParam(r, "collectionID"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		writeJSON(w, http.StatusOK, col)
	}
}

// UpdateCollection merges name/description changes into a collection.
func UpdateCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCollectionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid fields")
			return
		}

		col, err := d.Collections.Update(r.Context(), chi.URLParam(r, "collectionID"), library.UpdateParams{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if col == nil {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		writeJSON(w, http.StatusOK, col)
	}
}

// DeleteCollection removes a collection. Member cases stay bookmarked.
func DeleteCollection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Collections.Delete(r.Context(), chi.URLParam(r, "collectionID")) {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CollectionCases resolves a collection's members through the case cache.
func CollectionCases(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cases, ok := d.Collections.Cases(chi.URLParam(r, "collectionID"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cases": cases})
	}
}

// CollectionAddCase adds a case to a collection. This is the orchestration
// point for the library convention: the case record from the body is
// cached and the case is bookmarked before membership is updated, so
// everything added to a collection is also a resolvable bookmark.
func CollectionAddCase(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID := chi.URLParam(r, "collectionID")
		caseID := chi.URLParam(r, "caseID")

		if _, ok := d.Collections.Get(collectionID); !ok {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}

		cacheBodyCase(d, r, caseID)
		d.Bookmarks.Add(r.Context(), caseID)
		added := d.Collections.AddCase(r.Context(), collectionID, caseID)
		writeJSON(w, http.StatusOK, map[string]any{"added": added})
	}
}

// CollectionRemoveCase removes membership only; the bookmark survives.
func CollectionRemoveCase(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collectionID := chi.URLParam(r, "collectionID")
		if _, ok := d.Collections.Get(collectionID); !ok {
			writeError(w, http.StatusNotFound, "unknown collection")
			return
		}
		removed := d.Collections.RemoveCase(r.Context(), collectionID, chi.URLParam(r, "caseID"))
		writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
	}
}
