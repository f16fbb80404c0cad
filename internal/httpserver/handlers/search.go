package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/logger"
)

type searchResponse struct {
	Query   string `json:"query"`
	Count   int    `json:"count"`
	Results any    `json:"results"`
}

// Search proxies a full-text case search to the SPARQL endpoint and caches
// the returned records so bookmarks and collections can resolve them later
// without another round-trip.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter q")
			return
		}
		lang := langParam(r, d.DefaultLanguage)
		limit := limitParam(r, d.SearchLimit)

		cases, err := d.Sparql.Search(r.Context(), query, lang, limit)
		if err != nil {
			d.Logger.Error("search failed",
				logger.String("query", query),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "search backend unavailable")
			return
		}

		d.Cases.PutMany(r.Context(), cases)
		writeJSON(w, http.StatusOK, searchResponse{
			Query:   query,
			Count:   len(cases),
			Results: cases,
		})
	}
}

// Browse lists cases for a configured topic. The topic registry comes from
// the topics file; an unknown key is a 404, not a SPARQL error.
func Browse(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.URL.Query().Get("topic"))
		if key == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter topic")
			return
		}
		if d.Topics == nil {
			writeError(w, http.StatusNotFound, "browse topics not configured")
			return
		}
		topic, ok := d.Topics.Get(key)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown topic")
			return
		}
		lang := langParam(r, d.DefaultLanguage)
		limit := limitParam(r, d.BrowseLimit)

		cases, err := d.Sparql.Browse(r.Context(), topic.ClassQID, lang, limit)
		if err != nil {
			d.Logger.Error("browse failed",
				logger.String("topic", key),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "search backend unavailable")
			return
		}

		d.Cases.PutMany(r.Context(), cases)
		writeJSON(w, http.StatusOK, map[string]any{
			"topic":   topic,
			"count":   len(cases),
			"results": cases,
		})
	}
}

// Topics lists the browsable topics. Empty when no topics file is
// configured.
func Topics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics := []domain.Topic{}
		if d.Topics != nil {
			topics = d.Topics.All()
		}
		writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
	}
}

// Translations returns case title labels in the requested language.
func Translations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawIDs := strings.TrimSpace(r.URL.Query().Get("ids"))
		lang := strings.TrimSpace(r.URL.Query().Get("lang"))
		if rawIDs == "" || lang == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter ids or lang")
			return
		}

		ids := make([]string, 0, 8)
		for _, id := range strings.Split(rawIDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}

		labels, err := d.Sparql.Translations(r.Context(), ids, lang)
		if err != nil {
			d.Logger.Error("translations lookup failed", logger.Error(err))
			writeError(w, http.StatusBadGateway, "search backend unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
	}
}

func langParam(r *http.Request, def string) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return lang
	}
	return def
}

func limitParam(r *http.Request, max int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return max
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		return max
	}
	return n
}
