package api

import (
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/xraph/dbmanager"
	"github.com/xraph/dbmanager/condition"
)

func (a *API) registerEdgeRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("edges"))

	if err := g.POST("/entities", a.saveEntity,
		forge.WithSummary("Register entity"),
		forge.WithDescription("Registers an entity. Registering an existing entity is a no-op."),
		forge.WithOperationID("saveEntity"),
		forge.WithRequestSchema(SaveEntityRequest{}),
		forge.WithCreatedResponse(&condition.Entity{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/accounts", a.saveAccount,
		forge.WithSummary("Register account"),
		forge.WithDescription("Registers an account. Registering an existing account is a no-op."),
		forge.WithOperationID("saveAccount"),
		forge.WithRequestSchema(SaveAccountRequest{}),
		forge.WithCreatedResponse(&condition.Account{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/edges/:collection", a.saveEdge,
		forge.WithSummary("Link subject to condition"),
		forge.WithDescription("Creates an edge of the given kind. An existing link is returned unchanged."),
		forge.WithOperationID("saveEdge"),
		forge.WithRequestSchema(SaveEdgeRequest{}),
		forge.WithCreatedResponse(&condition.Edge{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.PUT("/edges/:collection/:edgeId/expiry", a.updateEdgeExpiry,
		forge.WithSummary("Update edge expiry"),
		forge.WithDescription("Sets the expiry of an edge. An expiry in the past soft-deletes it."),
		forge.WithOperationID("updateEdgeExpiry"),
		forge.WithRequestSchema(UpdateEdgeExpiryRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) saveEntity(ctx forge.Context, req *SaveEntityRequest) (*condition.Entity, error) {
	if req.EntityID == "" {
		return nil, forge.BadRequest("id is required")
	}
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	e := &condition.Entity{
		ID:        condition.EntityKey(req.EntityID, req.Scheme),
		TenantID:  dbmanager.TenantFromContext(ctx.Context()),
		CreatedAt: time.Now().UTC(),
	}
	if err := cg.SaveEntity(ctx.Context(), e); err != nil {
		return nil, mapError(err)
	}

	return e, ctx.JSON(http.StatusCreated, e)
}

func (a *API) saveAccount(ctx forge.Context, req *SaveAccountRequest) (*condition.Account, error) {
	if req.AccountID == "" {
		return nil, forge.BadRequest("id is required")
	}
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	acct := &condition.Account{
		ID:       condition.AccountKey(req.AccountID, req.Scheme, req.AgentMemberID),
		TenantID: dbmanager.TenantFromContext(ctx.Context()),
	}
	if err := cg.SaveAccount(ctx.Context(), acct); err != nil {
		return nil, mapError(err)
	}

	return acct, ctx.JSON(http.StatusCreated, acct)
}

func (a *API) saveEdge(ctx forge.Context, req *SaveEdgeRequest) (*condition.Edge, error) {
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}
	inception, err := parseTime("incptnDtTm", req.InceptionTime)
	if err != nil {
		return nil, err
	}
	expiry, err := parseOptionalTime("xprtnDtTm", req.ExpiryTime)
	if err != nil {
		return nil, err
	}
	kind, err := condition.ParseEdgeKind(ctx.Param("collection"))
	if err != nil {
		return nil, mapError(err)
	}

	e, err := cg.SaveEdge(ctx.Context(), kind, req.ConditionID, req.SubjectID, condition.EdgeAttrs{
		EventTypes:    req.EventTypes,
		TenantID:      dbmanager.TenantFromContext(ctx.Context()),
		InceptionTime: inception,
		ExpiryTime:    expiry,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return e, ctx.JSON(http.StatusCreated, e)
}

func (a *API) updateEdgeExpiry(ctx forge.Context, req *UpdateEdgeExpiryRequest) (*struct{}, error) {
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}
	expiry, err := parseTime("xprtnDtTm", req.ExpiryTime)
	if err != nil {
		return nil, err
	}
	if expiry.IsZero() {
		return nil, forge.BadRequest("xprtnDtTm is required")
	}

	err = cg.UpdateEdgeExpiry(ctx.Context(), ctx.Param("collection"), ctx.Param("edgeId"), expiry,
		dbmanager.TenantFromContext(ctx.Context()))
	if err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}
