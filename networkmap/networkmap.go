// Package networkmap defines the routing network map: which typologies
// and rules evaluate which message types for a tenant.
package networkmap

import (
	"encoding/json"
	"slices"
	"time"
)

// NetworkMap is one version of a tenant's routing map. At most one map
// per tenant is active.
type NetworkMap struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenantId"`
	Cfg       string          `json:"cfg"`
	Active    bool            `json:"active"`
	Messages  json.RawMessage `json:"messages"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Clone returns a deep copy of nm.
func (nm *NetworkMap) Clone() *NetworkMap {
	if nm == nil {
		return nil
	}
	cp := *nm
	cp.Messages = slices.Clone(nm.Messages)
	return &cp
}

// CacheKey is the local cache key of a tenant's active map.
func CacheKey(tenantID string) string {
	return "networkMap_" + tenantID
}
