// Package mongo provides a MongoDB implementation of the pseudonym graph
// store backed by Grove ORM.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/dbmanager/pseudonym"
)

// Collection name constants.
const (
	colAccounts      = "accounts"
	colEntities      = "entities"
	colAccountHolder = "account_holder"
	colRelationships = "transaction_relationship"
)

// Compile-time interface check.
var _ pseudonym.Store = (*Store)(nil)

// Store is a MongoDB implementation of the pseudonym graph store.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// Migrate creates indexes for all pseudonym collections.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if len(models) == 0 {
			continue
		}
		if _, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("dbmanager/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrationIndexes returns the index definitions for all pseudonym
// collections.
func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colAccounts: {
			{
				Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "account_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colEntities: {
			{
				Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "entity_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colAccountHolder: {
			{
				Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "from", Value: 1}, {Key: "to", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "to", Value: 1}}},
		},
		colRelationships: {
			{
				Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "end_to_end_id", Value: 1}, {Key: "tx_tp", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "from", Value: 1}, {Key: "cre_dt_tm", Value: -1}}},
		},
	}
}

// ──────────────────────────────────────────────────
// Writes
// ──────────────────────────────────────────────────

func (s *Store) CreateAccount(ctx context.Context, a *pseudonym.Account) error {
	return s.insertOnce(ctx, accountToModel(a), "account", a.ID)
}

func (s *Store) CreateEntity(ctx context.Context, e *pseudonym.Entity) error {
	return s.insertOnce(ctx, entityToModel(e), "entity", e.ID)
}

func (s *Store) CreateAccountHolder(ctx context.Context, h *pseudonym.AccountHolder) error {
	return s.insertOnce(ctx, holderToModel(h), "account holder", h.EntityID+"->"+h.AccountID)
}

func (s *Store) CreateTransactionRelationship(ctx context.Context, tr *pseudonym.TransactionRelationship) error {
	return s.insertOnce(ctx, relationshipToModel(tr), "transaction relationship", tr.EndToEndID+"/"+tr.TxTp)
}

// insertOnce inserts m and treats a duplicate key as success.
func (s *Store) insertOnce(ctx context.Context, m any, kind, key string) error {
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		if mongod.IsDuplicateKeyError(err) {
			return nil // already recorded
		}
		return fmt.Errorf("dbmanager: save %s %s: %w", kind, key, err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────

func (s *Store) ListAccountHolders(ctx context.Context, tenantID, accountID string) ([]*pseudonym.AccountHolder, error) {
	var models []holderModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"tenant_id": tenantID, "to": accountID}).
		Sort(bson.D{{Key: "cre_dt_tm", Value: -1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: list holders of %s: %w", accountID, err)
	}
	result := make([]*pseudonym.AccountHolder, len(models))
	for i := range models {
		result[i] = holderFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListTransactionRelationships(ctx context.Context, tenantID, endToEndID string) ([]*pseudonym.TransactionRelationship, error) {
	var models []relationshipModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"tenant_id": tenantID, "end_to_end_id": endToEndID}).
		Sort(bson.D{{Key: "cre_dt_tm", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: list relationships of %s: %w", endToEndID, err)
	}
	return relationshipsFromModels(models), nil
}

func (s *Store) ListDebtorHistory(ctx context.Context, tenantID, accountID string, limit int) ([]*pseudonym.TransactionRelationship, error) {
	var models []relationshipModel
	q := s.mdb.NewFind(&models).
		Filter(bson.M{"tenant_id": tenantID, "from": accountID}).
		Sort(bson.D{{Key: "cre_dt_tm", Value: -1}})
	if limit > 0 {
		q = q.Limit(int64(limit))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("dbmanager: list debtor history of %s: %w", accountID, err)
	}
	return relationshipsFromModels(models), nil
}

func relationshipsFromModels(models []relationshipModel) []*pseudonym.TransactionRelationship {
	result := make([]*pseudonym.TransactionRelationship, len(models))
	for i := range models {
		result[i] = relationshipFromModel(&models[i])
	}
	return result
}
