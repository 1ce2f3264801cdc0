package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/dbmanager"
	"github.com/xraph/dbmanager/condition"
)

func (a *API) registerConditionRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("conditions"))

	if err := g.POST("/conditions", a.createCondition,
		forge.WithSummary("Create condition"),
		forge.WithDescription("Stores a condition. It governs nothing until an edge links it to a subject."),
		forge.WithOperationID("createCondition"),
		forge.WithRequestSchema(CreateConditionRequest{}),
		forge.WithCreatedResponse(&condition.Condition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/conditions/:conditionId/expiry", a.updateConditionExpiry,
		forge.WithSummary("Update condition expiry"),
		forge.WithDescription("Sets the expiry of a condition without touching the rest of its payload."),
		forge.WithOperationID("updateConditionExpiry"),
		forge.WithRequestSchema(UpdateConditionExpiryRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/conditions/entity", a.entityConditions,
		forge.WithSummary("Entity conditions"),
		forge.WithDescription("Lists the unexpired conditions attached to an entity."),
		forge.WithOperationID("entityConditions"),
		forge.WithRequestSchema(EntityConditionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Condition list", []*condition.Condition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/conditions/account", a.accountConditions,
		forge.WithSummary("Account conditions"),
		forge.WithDescription("Lists the unexpired conditions attached to an account."),
		forge.WithOperationID("accountConditions"),
		forge.WithRequestSchema(AccountConditionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Condition list", []*condition.Condition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/graph", a.graph,
		forge.WithSummary("Condition graph"),
		forge.WithDescription("Traverses every edge kind for every subject of the tenant."),
		forge.WithOperationID("conditionGraph"),
		forge.WithRequestSchema(GraphRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Edges grouped by kind", &condition.RawConditionResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/graph/entity", a.entityGraph,
		forge.WithSummary("Entity condition graph"),
		forge.WithOperationID("entityConditionGraph"),
		forge.WithRequestSchema(EntityConditionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Edges grouped by kind", &condition.RawConditionResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/graph/account", a.accountGraph,
		forge.WithSummary("Account condition graph"),
		forge.WithOperationID("accountConditionGraph"),
		forge.WithRequestSchema(AccountConditionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Edges grouped by kind", &condition.RawConditionResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createCondition(ctx forge.Context, req *CreateConditionRequest) (*condition.Condition, error) {
	if req.Type == "" {
		return nil, forge.BadRequest("condTp is required")
	}
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

	c, err := cg.SaveCondition(ctx.Context(), &condition.Condition{
		TenantID:      dbmanager.TenantFromContext(ctx.Context()),
		Type:          req.Type,
		Perspective:   req.Perspective,
		Reason:        req.Reason,
		Forced:        req.Forced,
		User:          req.User,
		InceptionTime: inception,
		ExpiryTime:    expiry,
		EventTypes:    req.EventTypes,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return c, ctx.JSON(http.StatusCreated, c)
}

func (a *API) updateConditionExpiry(ctx forge.Context, req *UpdateConditionExpiryRequest) (*struct{}, error) {
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

	if err := cg.UpdateCondition(ctx.Context(), ctx.Param("conditionId"), expiry); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) entityConditions(ctx forge.Context, req *EntityConditionsRequest) ([]*condition.Condition, error) {
	if req.EntityID == "" {
		return nil, forge.BadRequest("id is required")
	}
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	conds, err := cg.GetConditionsByEntity(ctx.Context(), dbmanager.TenantFromContext(ctx.Context()), req.EntityID, req.Scheme)
	if err != nil {
		return nil, mapError(err)
	}

	return conds, ctx.JSON(http.StatusOK, conds)
}

func (a *API) accountConditions(ctx forge.Context, req *AccountConditionsRequest) ([]*condition.Condition, error) {
	if req.AccountID == "" {
		return nil, forge.BadRequest("id is required")
	}
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	conds, err := cg.GetConditionsByAccount(ctx.Context(), dbmanager.TenantFromContext(ctx.Context()), req.AccountID, req.Scheme, req.AgentMemberID)
	if err != nil {
		return nil, mapError(err)
	}

	return conds, ctx.JSON(http.StatusOK, conds)
}

func (a *API) graph(ctx forge.Context, req *GraphRequest) (*condition.RawConditionResponse, error) {
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	resp, err := cg.GetConditionsByGraph(ctx.Context(), dbmanager.TenantFromContext(ctx.Context()), req.ActiveOnly)
	if err != nil {
		return nil, mapError(err)
	}

	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) entityGraph(ctx forge.Context, req *EntityConditionsRequest) (*condition.RawConditionResponse, error) {
	if req.EntityID == "" {
		return nil, forge.BadRequest("id is required")
	}
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	resp, err := cg.GetEntityConditionsByGraph(ctx.Context(), dbmanager.TenantFromContext(ctx.Context()), req.EntityID, req.Scheme, req.RetrieveAll)
	if err != nil {
		return nil, mapError(err)
	}

	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) accountGraph(ctx forge.Context, req *AccountConditionsRequest) (*condition.RawConditionResponse, error) {
	if req.AccountID == "" {
		return nil, forge.BadRequest("id is required")
	}
	cg, err := a.conditionGraph()
	if err != nil {
		return nil, err
	}

	resp, err := cg.GetAccountConditionsByGraph(ctx.Context(), dbmanager.TenantFromContext(ctx.Context()),
		req.AccountID, req.Scheme, req.AgentMemberID, req.RetrieveAll)
	if err != nil {
		return nil, mapError(err)
	}

	return resp, ctx.JSON(http.StatusOK, resp)
}
