package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/caselens/caselens/internal/config"
	"github.com/caselens/caselens/internal/export"
	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/index"
	"github.com/caselens/caselens/internal/library"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/storage/memory"
)

// newTestDeps wires handler dependencies over in-memory stores.
func newTestDeps(t *testing.T) deps.Deps {
	t.Helper()
	ctx := context.Background()
	adapter := memory.New()
	cache := library.NewCaseCache(ctx, adapter, logger.Nop())
	bookmarks := library.NewBookmarks(ctx, adapter, cache, logger.Nop())
	collections := library.NewCollections(ctx, adapter, cache, logger.Nop())

	return deps.Deps{
		Logger:          logger.Nop(),
		StartTime:       time.Now(),
		Bookmarks:       bookmarks,
		Collections:     collections,
		Cases:           cache,
		Exporter:        export.NewEncoder(bookmarks, collections, cache, "http://localhost:8080"),
		Topics:          index.NewTopicIndex(),
		SearchLimit:     25,
		BrowseLimit:     50,
		DefaultLanguage: "en",
		Validate:        validator.New(),
		StorageBackend:  config.BackendMemory,
	}
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
