package dbmanager

import (
	"context"

	"github.com/xraph/forge"
)

// Scope identifies the caller a façade call is made for.
type Scope struct {
	AppID    string
	TenantID string
}

// ScopeFromContext extracts the tenant scope from a forge.Scope, falling
// back to the values set by WithTenant in standalone mode.
func ScopeFromContext(ctx context.Context) Scope {
	if s, ok := forge.ScopeFrom(ctx); ok {
		return Scope{AppID: s.AppID(), TenantID: s.OrgID()}
	}
	return Scope{
		AppID:    appIDFromContext(ctx),
		TenantID: tenantIDFromContext(ctx),
	}
}

// TenantFromContext is shorthand for ScopeFromContext(ctx).TenantID.
func TenantFromContext(ctx context.Context) string {
	return ScopeFromContext(ctx).TenantID
}
