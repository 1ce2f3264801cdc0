// Package api provides HTTP handlers over a composed dbmanager.Manager:
// backend readiness and the temporal condition graph.
package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/dbmanager"
)

// API wires all dbmanager HTTP handlers together.
type API struct {
	mgr    *dbmanager.Manager
	router forge.Router
}

// New creates an API from a Manager and a Forge router.
func New(mgr *dbmanager.Manager, router forge.Router) *API {
	return &API{mgr: mgr, router: router}
}

// Handler returns the fully assembled http.Handler with all routes.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	if err := a.RegisterRoutes(a.router); err != nil {
		panic("dbmanager: register routes: " + err.Error())
	}
	return a.router.Handler()
}

// RegisterRoutes registers all API routes into the given Forge router.
func (a *API) RegisterRoutes(router forge.Router) error {
	registerers := []func(forge.Router) error{
		a.registerReadinessRoutes,
		a.registerConditionRoutes,
		a.registerEdgeRoutes,
	}
	for _, fn := range registerers {
		if err := fn(router); err != nil {
			return err
		}
	}
	return nil
}
