package networkmap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/dbmanager/cache"
	"github.com/xraph/dbmanager/id"
)

// Service is the network map façade.
type Service struct {
	store  Store
	local  cache.Local
	policy cache.Policy
	now    func() time.Time
}

// NewService creates a façade over store.
func NewService(store Store, local cache.Local, policy cache.Policy) *Service {
	return &Service{
		store:  store,
		local:  local,
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetActiveNetworkMap returns the tenant's active maps. A single active
// map is cached locally.
func (s *Service) GetActiveNetworkMap(ctx context.Context, tenantID string) ([]*NetworkMap, error) {
	rows, err := cache.CachedRead(ctx, s.local, CacheKey(tenantID), s.policy, func(ctx context.Context) ([]*NetworkMap, error) {
		return s.store.ListActiveNetworkMaps(ctx, tenantID)
	})
	if err != nil {
		return nil, fmt.Errorf("networkmap: get active for %q: %w", tenantID, err)
	}
	return rows, nil
}

// SaveNetworkMap stores nm, assigning an id and creation time when unset.
// A cached active map is served until its TTL lapses.
func (s *Service) SaveNetworkMap(ctx context.Context, nm *NetworkMap) error {
	if nm == nil || len(nm.Messages) == 0 {
		return errors.New("networkmap: messages are required")
	}
	if nm.ID == "" {
		nm.ID = id.NewNetworkMapID().String()
	}
	if nm.CreatedAt.IsZero() {
		nm.CreatedAt = s.now()
	}
	return s.store.SaveNetworkMap(ctx, nm)
}
