package networkmap

import "context"

// Store defines persistence operations for network maps.
type Store interface {
	// SaveNetworkMap inserts nm. When nm is active, every other map of the
	// tenant is deactivated in the same transaction.
	SaveNetworkMap(ctx context.Context, nm *NetworkMap) error

	// ListActiveNetworkMaps returns the active maps of the tenant.
	ListActiveNetworkMaps(ctx context.Context, tenantID string) ([]*NetworkMap, error)
}
