package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/dbmanager"
)

func (a *API) registerReadinessRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("readiness"))

	return g.GET("/readiness", a.readiness,
		forge.WithSummary("Backend readiness"),
		forge.WithDescription("Returns the probe outcome of every composed backend. Responds 503 while any backend is not Ok."),
		forge.WithOperationID("readiness"),
		forge.WithResponseSchema(http.StatusOK, "All backends ready", ReadinessResponse{}),
		forge.WithResponseSchema(http.StatusServiceUnavailable, "Some backend not ready", ReadinessResponse{}),
	)
}

func (a *API) readiness(ctx forge.Context, _ *ReadinessRequest) (*ReadinessResponse, error) {
	backends := a.mgr.IsReadyCheck()
	resp := &ReadinessResponse{Ready: len(backends) > 0, Backends: backends}
	for _, status := range backends {
		if status != dbmanager.StatusOK {
			resp.Ready = false
			break
		}
	}

	if !resp.Ready {
		return resp, ctx.JSON(http.StatusServiceUnavailable, resp)
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}
