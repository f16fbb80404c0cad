package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/caselens/caselens/internal/httpserver/deps"
	"github.com/caselens/caselens/internal/httpserver/handlers"
	"github.com/caselens/caselens/internal/httpserver/mw"
)

func init() { Register(registerOps) }

func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))

	// Operational endpoints are optionally IP-restricted.
	restricted := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	restricted.Get("/infra", handlers.Infra(d))
	restricted.Post("/reload", handlers.Reload(d))
}
