package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/internal/domain"
	appdeps "github.com/caselens/caselens/internal/httpserver/deps"
)

func collectionRouter(d appdeps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/collections", func(r chi.Router) {
		r.Get("/", ListCollections(d))
		r.Post("/", CreateCollection(d))
		r.Get("/{collectionID}", GetCollection(d))
		r.Patch("/{collectionID}", UpdateCollection(d))
		r.Delete("/{collectionID}", DeleteCollection(d))
		r.Get("/{collectionID}/cases", CollectionCases(d))
		r.Put("/{collectionID}/cases/{caseID}", CollectionAddCase(d))
		r.Delete("/{collectionID}/cases/{caseID}", CollectionRemoveCase(d))
	})
	return r
}

func createTestCollection(t *testing.T, r http.Handler, name string) domain.Collection {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/collections", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var col domain.Collection
	decodeJSON(t, rec, &col)
	return col
}

func TestCreateCollection(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	col := createTestCollection(t, r, "Constitutional Cases")
	assert.NotEmpty(t, col.ID)
	assert.Equal(t, "Constitutional Cases", col.Name)
	assert.Empty(t, col.CaseIDs)
}

func TestCreateCollectionValidation(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	tests := []struct {
		name string
		body any
	}{
		{"missing name", map[string]string{"description": "x"}},
		{"empty name", map[string]string{"name": ""}},
		{"whitespace name", map[string]string{"name": "   "}},
		{"unknown field", map[string]string{"name": "ok", "bogus": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/collections", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, d.Collections.All())
}

func TestGetCollection(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	col := createTestCollection(t, r, "Tax Law")

	rec := doJSON(t, r, http.MethodGet, "/api/collections/"+col.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/collections/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCollection(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	col := createTestCollection(t, r, "Old Name")

	rec := doJSON(t, r, http.MethodPatch, "/api/collections/"+col.ID,
		map[string]string{"name": "New Name"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Collection
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "New Name", updated.Name)

	rec = doJSON(t, r, http.MethodPatch, "/api/collections/unknown",
		map[string]string{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/collections/"+col.ID,
		map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCollectionKeepsBookmarks(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)
	ctx := context.Background()

	col := createTestCollection(t, r, "Doomed")
	d.Bookmarks.Add(ctx, "Q1")
	d.Collections.AddCase(ctx, col.ID, "Q1")

	rec := doJSON(t, r, http.MethodDelete, "/api/collections/"+col.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, d.Bookmarks.Contains("Q1"), "deleting a collection must keep bookmarks")

	rec = doJSON(t, r, http.MethodDelete, "/api/collections/"+col.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectionAddCaseAlsoBookmarks(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	col := createTestCollection(t, r, "Cases")

	body := domain.Case{Title: "Republic v. X"}
	rec := doJSON(t, r, http.MethodPut, "/api/collections/"+col.ID+"/cases/Q1", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Added bool `json:"added"`
	}
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Added)

	// Adding to a collection bookmarks the case and caches its record.
	assert.True(t, d.Bookmarks.Contains("Q1"))
	got, ok := d.Cases.Get("Q1")
	require.True(t, ok)
	assert.Equal(t, "Republic v. X", got.Title)

	// Already a member: added=false, membership unchanged.
	rec = doJSON(t, r, http.MethodPut, "/api/collections/"+col.ID+"/cases/Q1", nil)
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Added)

	rec = doJSON(t, r, http.MethodPut, "/api/collections/unknown/cases/Q1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectionRemoveCaseKeepsBookmark(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	col := createTestCollection(t, r, "Cases")
	doJSON(t, r, http.MethodPut, "/api/collections/"+col.ID+"/cases/Q1", nil)

	rec := doJSON(t, r, http.MethodDelete, "/api/collections/"+col.ID+"/cases/Q1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Removed bool `json:"removed"`
	}
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Removed)
	assert.True(t, d.Bookmarks.Contains("Q1"), "membership removal must keep the bookmark")

	rec = doJSON(t, r, http.MethodDelete, "/api/collections/"+col.ID+"/cases/Q1", nil)
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Removed)
}

func TestCollectionCases(t *testing.T) {
	d := newTestDeps(t)
	r := collectionRouter(d)

	col := createTestCollection(t, r, "Cases")
	doJSON(t, r, http.MethodPut, "/api/collections/"+col.ID+"/cases/Q1",
		domain.Case{Title: "Republic v. X"})

	var resp struct {
		Cases []domain.Case `json:"cases"`
	}
	rec := doJSON(t, r, http.MethodGet, "/api/collections/"+col.ID+"/cases", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Cases, 1)
	assert.Equal(t, "Republic v. X", resp.Cases[0].Title)

	rec = doJSON(t, r, http.MethodGet, "/api/collections/unknown/cases", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
