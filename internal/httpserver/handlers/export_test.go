package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/export"
	appdeps "github.com/caselens/caselens/internal/httpserver/deps"
)

func exportRouter(d appdeps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/export/bookmarks", ExportBookmarks(d))
	r.Post("/api/import", ImportDocument(d))
	r.Get("/api/shared", Shared(d))
	r.Get("/api/collections/{collectionID}/share", ShareCollection(d))
	r.Get("/api/collections/{collectionID}/export", ExportCollection(d))
	return r
}

func TestExportBookmarksEndpoint(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)
	ctx := context.Background()

	d.Cases.Put(ctx, domain.Case{CaseID: "Q1", Title: "Republic v. X"})
	d.Bookmarks.Add(ctx, "Q1")

	rec := doJSON(t, r, http.MethodGet, "/api/export/bookmarks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var doc export.Document
	decodeJSON(t, rec, &doc)
	assert.Equal(t, export.FormatVersion, doc.FormatVersion)
	require.Len(t, doc.Cases, 1)
}

func TestExportCollectionEndpoint(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)
	ctx := context.Background()

	col, err := d.Collections.Create(ctx, "Tax Law", "")
	require.NoError(t, err)
	d.Cases.Put(ctx, domain.Case{CaseID: "Q1", Title: "Republic v. X"})
	d.Collections.AddCase(ctx, col.ID, "Q1")

	rec := doJSON(t, r, http.MethodGet, "/api/collections/"+col.ID+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc export.Document
	decodeJSON(t, rec, &doc)
	assert.Equal(t, col.ID, doc.CollectionID)
	assert.Equal(t, "Tax Law", doc.CollectionName)

	rec = doJSON(t, r, http.MethodGet, "/api/collections/unknown/export", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportEndpoint(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)

	doc := export.Document{
		FormatVersion: export.FormatVersion,
		Cases:         []domain.Case{{CaseID: "Q1", Title: "Republic v. X"}},
	}
	rec := doJSON(t, r, http.MethodPost, "/api/import", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Imported int `json:"imported"`
	}
	decodeJSON(t, rec, &resp)
	assert.Equal(t, 1, resp.Imported)
	assert.True(t, d.Bookmarks.Contains("Q1"))

	// Unknown format version is a 422.
	rec = doJSON(t, r, http.MethodPost, "/api/import",
		export.Document{FormatVersion: 99})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	req := doJSON(t, r, http.MethodPost, "/api/import", "not a document")
	assert.Equal(t, http.StatusBadRequest, req.Code)
}

func TestShareAndSharedEndpoints(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)
	ctx := context.Background()

	col, err := d.Collections.Create(ctx, "Shared Cases", "")
	require.NoError(t, err)
	d.Cases.Put(ctx, domain.Case{CaseID: "Q1", Title: "Republic v. X"})
	d.Collections.AddCase(ctx, col.ID, "Q1")

	rec := doJSON(t, r, http.MethodGet, "/api/collections/"+col.ID+"/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var shareResp struct {
		URL string `json:"url"`
	}
	decodeJSON(t, rec, &shareResp)

	parsed, err := url.Parse(shareResp.URL)
	require.NoError(t, err)
	token := parsed.Query().Get("c")
	require.NotEmpty(t, token)

	// A live local collection resolves through the store.
	rec = doJSON(t, r, http.MethodGet, "/api/shared?c="+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sharedResp struct {
		Collection domain.Collection `json:"collection"`
		Cases      []domain.Case     `json:"cases"`
	}
	decodeJSON(t, rec, &sharedResp)
	assert.Equal(t, col.ID, sharedResp.Collection.ID)
	require.Len(t, sharedResp.Cases, 1)

	// After the collection is gone the view rebuilds from the token payload.
	d.Collections.Delete(ctx, col.ID)
	rec = doJSON(t, r, http.MethodGet, "/api/shared?c="+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &sharedResp)
	assert.Equal(t, "Shared Cases", sharedResp.Collection.Name)
	require.Len(t, sharedResp.Cases, 1, "cases must resolve from the cache")
}

func TestSharedEndpointRejectsBadTokens(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/api/shared", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/shared?c="+url.QueryEscape("!!!"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareUnknownCollection(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/api/collections/unknown/share", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportFilenameDateStamp(t *testing.T) {
	d := newTestDeps(t)
	r := exportRouter(d)

	rec := doJSON(t, r, http.MethodGet, "/api/export/bookmarks", nil)
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "caselens-bookmarks-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}
