// Package middleware provides HTTP middleware gating requests on the
// readiness of dbmanager backends.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/dbmanager"
)

// RequireReady rejects requests with 503 until every named backend has
// been probed successfully. With no names, every composed backend and
// Redis must be ready.
func RequireReady(mgr *dbmanager.Manager, backends ...string) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			if name, ok := firstNotReady(mgr, backends); !ok {
				return unavailableResponse(ctx, name)
			}
			return next(ctx)
		}
	}
}

// RequireCapability rejects requests with 503 when the named backend was
// not composed at all.
func RequireCapability(mgr *dbmanager.Manager, backend string) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			for _, name := range mgr.Capabilities() {
				if name == backend {
					return next(ctx)
				}
			}
			return unavailableResponse(ctx, backend)
		}
	}
}

// firstNotReady returns the first backend that is not ready.
func firstNotReady(mgr *dbmanager.Manager, backends []string) (string, bool) {
	r := mgr.Readiness()
	if len(backends) == 0 {
		for name := range mgr.IsReadyCheck() {
			if !r.Ready(name) {
				return name, false
			}
		}
		return "", true
	}
	for _, name := range backends {
		if !r.Ready(name) {
			return name, false
		}
	}
	return "", true
}

func unavailableResponse(ctx forge.Context, backend string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(http.StatusServiceUnavailable)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{
		"error":   "backend not ready",
		"backend": backend,
	})
}
