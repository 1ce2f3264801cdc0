package dbmanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xraph/forge"
)

func TestScopeFromStandaloneContext(t *testing.T) {
	ctx := WithTenant(context.Background(), "app1", "t1")
	assert.Equal(t, Scope{AppID: "app1", TenantID: "t1"}, ScopeFromContext(ctx))
	assert.Equal(t, "t1", TenantFromContext(ctx))

	assert.Empty(t, TenantFromContext(context.Background()))
}

func TestForgeScopeTakesPrecedence(t *testing.T) {
	ctx := WithTenant(context.Background(), "app1", "standalone")
	ctx = forge.WithScope(ctx, forge.NewOrgScope("app2", "org7"))

	assert.Equal(t, Scope{AppID: "app2", TenantID: "org7"}, ScopeFromContext(ctx))
}
