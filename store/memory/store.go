// Package memory provides an in-memory implementation of every store
// contract. It is intended for testing and development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/pseudonym"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/store"
	"github.com/xraph/dbmanager/transaction"
)

// Compile-time interface checks.
var (
	_ condition.Store   = (*Store)(nil)
	_ transaction.Store = (*Store)(nil)
	_ ruleconfig.Store  = (*Store)(nil)
	_ networkmap.Store  = (*Store)(nil)
	_ evaluation.Store  = (*Store)(nil)
	_ pseudonym.Store   = (*Store)(nil)
	_ store.Store       = (*Store)(nil)
)

// Store is a thread-safe in-memory store for all backends.
type Store struct {
	mu sync.RWMutex

	// condition graph
	entities   map[compositeKey]*condition.Entity
	accounts   map[compositeKey]*condition.Account
	conditions map[string]*condition.Condition
	edges      map[condition.EdgeKind]map[string]*condition.Edge
	edgePairs  map[condition.EdgeKind]map[compositeKey]string // (source, destination) -> edge id

	// transaction history
	transactions []*transaction.Transaction
	txIndex      map[compositeKey]struct{}

	// configuration and network map
	ruleConfigs map[compositeKey]*ruleconfig.RuleConfig
	typologies  map[compositeKey]*ruleconfig.Typology
	networkMaps []*networkmap.NetworkMap

	// evaluation
	results []*evaluation.Result

	// pseudonyms
	pAccounts     map[compositeKey]*pseudonym.Account
	pEntities     map[compositeKey]*pseudonym.Entity
	holders       map[compositeKey]*pseudonym.AccountHolder
	relationships []*pseudonym.TransactionRelationship
	relIndex      map[compositeKey]struct{}
}

// New creates a new in-memory store.
func New() *Store {
	s := &Store{
		entities:    make(map[compositeKey]*condition.Entity),
		accounts:    make(map[compositeKey]*condition.Account),
		conditions:  make(map[string]*condition.Condition),
		edges:       make(map[condition.EdgeKind]map[string]*condition.Edge),
		edgePairs:   make(map[condition.EdgeKind]map[compositeKey]string),
		txIndex:     make(map[compositeKey]struct{}),
		ruleConfigs: make(map[compositeKey]*ruleconfig.RuleConfig),
		typologies:  make(map[compositeKey]*ruleconfig.Typology),
		pAccounts:   make(map[compositeKey]*pseudonym.Account),
		pEntities:   make(map[compositeKey]*pseudonym.Entity),
		holders:     make(map[compositeKey]*pseudonym.AccountHolder),
		relIndex:    make(map[compositeKey]struct{}),
	}
	for _, k := range condition.AllEdgeKinds {
		s.edges[k] = make(map[string]*condition.Edge)
		s.edgePairs[k] = make(map[compositeKey]string)
	}
	return s
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// compositeKey indexes rows by up to three identifier parts. Parts are
// compared field by field, so identifiers containing separators never
// collide.
type compositeKey [3]string

func key(parts ...string) compositeKey {
	var k compositeKey
	copy(k[:], parts)
	return k
}

func limitSlice[T any](items []*T, limit int) []*T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneSlice[T any](items []*T) []*T {
	out := make([]*T, len(items))
	for i, v := range items {
		out[i] = clone(v)
	}
	return out
}

func sortNewestFirst[T any](items []*T, createdAt func(*T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}
