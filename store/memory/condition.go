package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xraph/dbmanager/condition"
)

// ──────────────────────────────────────────────────
// Condition graph
// ──────────────────────────────────────────────────

func (s *Store) SaveCondition(_ context.Context, c *condition.Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conditions[c.ID]; ok {
		return fmt.Errorf("dbmanager: save condition %s: %w", c.ID, condition.ErrConditionExists)
	}
	s.conditions[c.ID] = copyCondition(c)
	return nil
}

func (s *Store) SaveEntity(_ context.Context, e *condition.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(e.TenantID, e.ID)
	if _, ok := s.entities[k]; !ok {
		s.entities[k] = clone(e)
	}
	return nil
}

func (s *Store) SaveAccount(_ context.Context, a *condition.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(a.TenantID, a.ID)
	if _, ok := s.accounts[k]; !ok {
		s.accounts[k] = clone(a)
	}
	return nil
}

func (s *Store) SaveEdge(_ context.Context, e *condition.Edge) (*condition.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !e.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown edge kind %q", condition.ErrMalformedInput, e.Kind)
	}
	pair := key(e.Source, e.Destination)
	if existing, ok := s.edgePairs[e.Kind][pair]; ok {
		return copyEdge(s.edges[e.Kind][existing]), nil
	}
	stored := copyEdge(e)
	s.edges[e.Kind][e.ID] = stored
	s.edgePairs[e.Kind][pair] = e.ID
	return copyEdge(stored), nil
}

func (s *Store) ListConditionsBySubject(_ context.Context, q condition.SubjectQuery) ([]*condition.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	result := make([]*condition.Condition, 0)
	for _, kind := range q.Kinds {
		for _, e := range s.edges[kind] {
			if e.Source != q.SubjectID {
				continue
			}
			if q.TenantID != "" && e.TenantID != q.TenantID {
				continue
			}
			c, ok := s.conditions[e.Destination]
			if !ok || !c.Unexpired(q.At) {
				continue
			}
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			result = append(result, copyCondition(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) QueryGraph(_ context.Context, q condition.GraphQuery) (*condition.RawConditionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := condition.NewRawConditionResponse()
	for _, kind := range q.Kinds {
		records := make([]condition.EdgeRecord, 0)
		for _, e := range s.edges[kind] {
			if q.SubjectID != "" && e.Source != q.SubjectID {
				continue
			}
			if q.TenantID != "" && e.TenantID != q.TenantID {
				continue
			}
			if q.ActiveOnly && !e.ActiveAt(q.At) {
				continue
			}
			c, ok := s.conditions[e.Destination]
			if !ok {
				continue
			}
			rec := condition.EdgeRecord{Edge: *copyEdge(e), Condition: *copyCondition(c)}
			switch kind.Subject() {
			case condition.SubjectAccount:
				a, ok := s.accounts[key(e.TenantID, e.Source)]
				if !ok {
					continue
				}
				rec.Account = clone(a)
			default:
				ent, ok := s.entities[key(e.TenantID, e.Source)]
				if !ok {
					continue
				}
				rec.Entity = clone(ent)
			}
			records = append(records, rec)
		}
		sort.Slice(records, func(i, j int) bool {
			a, b := records[i].Edge, records[j].Edge
			if !a.InceptionTime.Equal(b.InceptionTime) {
				return a.InceptionTime.Before(b.InceptionTime)
			}
			return a.ID < b.ID
		})
		resp.Set(kind, records)
	}
	return resp, nil
}

func (s *Store) UpdateEdgeExpiry(_ context.Context, kind condition.EdgeKind, edgeID string, expiry time.Time, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.edges[kind][edgeID]
	if !ok || e.TenantID != tenantID {
		return condition.ErrUnauthorized
	}
	exp := expiry
	e.ExpiryTime = &exp
	return nil
}

func (s *Store) UpdateConditionExpiry(_ context.Context, conditionID string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conditions[conditionID]
	if !ok {
		return nil
	}
	exp := expiry
	c.ExpiryTime = &exp
	return nil
}

func copyCondition(c *condition.Condition) *condition.Condition {
	cp := *c
	cp.ExpiryTime = copyTime(c.ExpiryTime)
	cp.EventTypes = append([]string(nil), c.EventTypes...)
	return &cp
}

func copyEdge(e *condition.Edge) *condition.Edge {
	cp := *e
	cp.ExpiryTime = copyTime(e.ExpiryTime)
	cp.EventTypes = append([]string(nil), e.EventTypes...)
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
