package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/caselens/caselens/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Count   *int   `json:"count,omitempty"`
	Last    string `json:"last,omitempty"`
	Backend string `json:"backend,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the moving parts: library store sizes, topic
// registry freshness and the storage backend.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks := d.Bookmarks.Count()
		collections := len(d.Collections.All())
		cached := d.Cases.Size()

		components := map[string]componentStatus{
			"bookmarks":   {OK: true, Count: &bookmarks},
			"collections": {OK: true, Count: &collections},
			"case_cache":  {OK: true, Count: &cached},
			"storage":     checkStorage(d),
		}

		if d.Topics != nil {
			topicCount := d.Topics.Count()
			last := "never"
			if t := d.Topics.LastReload(); !t.IsZero() {
				last = t.Format("2006-01-02 15:04:05")
			}
			components["topics"] = componentStatus{
				OK:    topicCount > 0,
				Count: &topicCount,
				Last:  last,
			}
		}

		writeJSON(w, http.StatusOK, infraResponse{Components: components})
	}
}

func checkStorage(d deps.Deps) componentStatus {
	status := componentStatus{OK: true, Backend: d.StorageBackend}
	if d.RedisClient == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		status.OK = false
		status.Error = "redis ping failed"
	}
	return status
}
