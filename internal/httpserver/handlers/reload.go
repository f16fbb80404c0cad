package handlers

import (
	"net/http"

	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/logger"
)

// Reload triggers an immediate reload of the browse topics file.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, http.StatusNotFound, "topics reloading disabled")
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual topics reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]any{"triggered": true})
		default:
			d.Logger.Warn("topics reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "reload already in progress")
		}
	}
}
