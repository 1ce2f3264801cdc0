package dbmanager

import "context"

// The tenant carried by a context scopes every condition graph write
// (conditions, subjects, edges) and the tenant check on edge expiry
// updates. Under Forge the tenant is the organization of the request
// scope; WithTenant supplies it when the manager runs standalone, for
// example behind a plain net/http server or in tests.

type contextKey int

const (
	ctxKeyAppID contextKey = iota
	ctxKeyTenantID
)

// WithTenant returns a context carrying appID and the tenant that
// condition graph calls made with it are scoped to. A Forge scope on the
// same context takes precedence.
func WithTenant(ctx context.Context, appID, tenantID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAppID, appID)
	return context.WithValue(ctx, ctxKeyTenantID, tenantID)
}

func valueFromContext(ctx context.Context, k contextKey) string {
	v, _ := ctx.Value(k).(string)
	return v
}

func appIDFromContext(ctx context.Context) string { return valueFromContext(ctx, ctxKeyAppID) }

func tenantIDFromContext(ctx context.Context) string { return valueFromContext(ctx, ctxKeyTenantID) }
