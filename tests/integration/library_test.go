package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caselens/caselens/internal/config"
	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/export"
	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/httpserver/routes"
	"github.com/caselens/caselens/internal/index"
	"github.com/caselens/caselens/internal/library"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/sparql"
	"github.com/caselens/caselens/internal/storage"
	"github.com/caselens/caselens/internal/storage/memory"
)

const sparqlResponse = `{
  "head": {"vars": ["case", "caseLabel", "date", "citation"]},
  "results": {"bindings": [
    {"case": {"type": "uri", "value": "http://www.wikidata.org/entity/Q12345678"},
     "caseLabel": {"type": "literal", "value": "Republic v. X"},
     "date": {"type": "literal", "value": "1998-06-25T00:00:00Z"},
     "citation": {"type": "literal", "value": "4 CLR 120"}}
  ]}
}`

// newTestServer wires the full route table over the given adapter, with a
// fake SPARQL endpoint behind the search handlers.
func newTestServer(t *testing.T, adapter storage.Adapter) (chi.Router, deps.Deps) {
	t.Helper()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sparqlResponse)
	}))
	t.Cleanup(srv.Close)

	cache := library.NewCaseCache(ctx, adapter, logger.Nop())
	bookmarks := library.NewBookmarks(ctx, adapter, cache, logger.Nop())
	collections := library.NewCollections(ctx, adapter, cache, logger.Nop())

	topics := index.NewTopicIndex()
	topics.Update([]domain.Topic{
		{Key: "constitutional-law", Label: "Constitutional law", ClassQID: "Q1153222"},
	})

	d := deps.Deps{
		Logger:          logger.Nop(),
		StartTime:       time.Now(),
		Bookmarks:       bookmarks,
		Collections:     collections,
		Cases:           cache,
		Exporter:        export.NewEncoder(bookmarks, collections, cache, "http://localhost:8080"),
		Sparql:          sparql.New(sparql.Options{Endpoint: srv.URL, Timeout: 2 * time.Second}, logger.Nop()),
		Topics:          topics,
		SearchLimit:     25,
		BrowseLimit:     50,
		DefaultLanguage: "en",
		Validate:        validator.New(),
		StorageBackend:  config.BackendMemory,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	return r, d
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// TestLibraryWorkflow walks the whole user journey: search, bookmark,
// collect, share, export, and survive a restart.
func TestLibraryWorkflow(t *testing.T) {
	adapter := memory.New()
	r, d := newTestServer(t, adapter)

	// 1. Search caches the returned case records.
	rec := do(t, r, http.MethodGet, "/api/search?q=republic", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: %d %s", rec.Code, rec.Body.String())
	}
	if _, ok := d.Cases.Get("Q12345678"); !ok {
		t.Fatal("search results not cached")
	}

	// 2. Bookmark the case found.
	rec = do(t, r, http.MethodPut, "/api/bookmarks/Q12345678", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bookmark: %d", rec.Code)
	}

	// 3. Create a collection and add the case.
	rec = do(t, r, http.MethodPost, "/api/collections",
		map[string]string{"name": "Constitutional Cases"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create collection: %d %s", rec.Code, rec.Body.String())
	}
	var col domain.Collection
	unmarshal(t, rec, &col)

	rec = do(t, r, http.MethodPut, "/api/collections/"+col.ID+"/cases/Q12345678", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add case: %d", rec.Code)
	}

	// 4. The collection resolves its case through the cache.
	var casesResp struct {
		Cases []domain.Case `json:"cases"`
	}
	rec = do(t, r, http.MethodGet, "/api/collections/"+col.ID+"/cases", nil)
	unmarshal(t, rec, &casesResp)
	if len(casesResp.Cases) != 1 || casesResp.Cases[0].Title != "Republic v. X" {
		t.Fatalf("collection cases = %+v", casesResp.Cases)
	}

	// 5. Share link round-trips through /api/shared.
	var shareResp struct {
		URL string `json:"url"`
	}
	rec = do(t, r, http.MethodGet, "/api/collections/"+col.ID+"/share", nil)
	unmarshal(t, rec, &shareResp)
	parsed, err := url.Parse(shareResp.URL)
	if err != nil {
		t.Fatalf("share url: %v", err)
	}
	rec = do(t, r, http.MethodGet, "/api/shared?c="+parsed.Query().Get("c"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("shared: %d %s", rec.Code, rec.Body.String())
	}

	// 6. Export, then import into a fresh instance.
	rec = do(t, r, http.MethodGet, "/api/export/bookmarks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d", rec.Code)
	}
	exported := rec.Body.Bytes()

	fresh, freshDeps := newTestServer(t, memory.New())
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(exported))
	importRec := httptest.NewRecorder()
	fresh.ServeHTTP(importRec, req)
	if importRec.Code != http.StatusOK {
		t.Fatalf("import: %d %s", importRec.Code, importRec.Body.String())
	}
	if !freshDeps.Bookmarks.Contains("Q12345678") {
		t.Error("imported case not bookmarked on the fresh instance")
	}

	// 7. A new instance over the same adapter sees persisted state.
	_, restarted := newTestServer(t, adapter)
	if !restarted.Bookmarks.Contains("Q12345678") {
		t.Error("bookmark lost across restart")
	}
	if _, ok := restarted.Collections.Get(col.ID); !ok {
		t.Error("collection lost across restart")
	}
	if _, ok := restarted.Cases.Get("Q12345678"); !ok {
		t.Error("case cache lost across restart")
	}
}

func TestBrowseWorkflow(t *testing.T) {
	r, _ := newTestServer(t, memory.New())

	var topicsResp struct {
		Topics []domain.Topic `json:"topics"`
	}
	rec := do(t, r, http.MethodGet, "/api/topics", nil)
	unmarshal(t, rec, &topicsResp)
	if len(topicsResp.Topics) != 1 {
		t.Fatalf("topics = %+v", topicsResp.Topics)
	}

	rec = do(t, r, http.MethodGet, "/api/browse?topic=constitutional-law", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("browse: %d %s", rec.Code, rec.Body.String())
	}
	var browseResp struct {
		Count int `json:"count"`
	}
	unmarshal(t, rec, &browseResp)
	if browseResp.Count != 1 {
		t.Errorf("browse count = %d", browseResp.Count)
	}
}

func TestOpsEndpoints(t *testing.T) {
	r, _ := newTestServer(t, memory.New())

	rec := do(t, r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("readyz: %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/infra", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("infra: %d", rec.Code)
	}

	// Reload is disabled when no topics file is wired.
	rec = do(t, r, http.MethodPost, "/reload", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("reload without trigger: %d, want 404", rec.Code)
	}
}
