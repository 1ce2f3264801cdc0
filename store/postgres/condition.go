package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xraph/dbmanager/condition"
)

// ──────────────────────────────────────────────────
// Condition graph writes
// ──────────────────────────────────────────────────

func (s *Store) SaveCondition(ctx context.Context, c *condition.Condition) error {
	m, err := conditionToModel(c)
	if err != nil {
		return fmt.Errorf("dbmanager: save condition %s: %w", c.ID, err)
	}
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			err = condition.ErrConditionExists
		}
		return fmt.Errorf("dbmanager: save condition %s: %w", c.ID, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) SaveEntity(ctx context.Context, e *condition.Entity) error {
	m := &entityModel{ID: e.ID, TenantID: e.TenantID, CreatedAt: e.CreatedAt}
	_, err := s.pgdb.NewInsert(m).
		OnConflict("(id, tenant_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: save entity %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) SaveAccount(ctx context.Context, a *condition.Account) error {
	m := &accountModel{ID: a.ID, TenantID: a.TenantID}
	_, err := s.pgdb.NewInsert(m).
		OnConflict("(id, tenant_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: save account %s: %w", a.ID, err)
	}
	return nil
}

// SaveEdge inserts the edge and reads back whichever row owns the
// (source, destination) pair.
func (s *Store) SaveEdge(ctx context.Context, e *condition.Edge) (*condition.Edge, error) {
	table := string(e.Kind)
	eventTypes := e.EventTypes
	if eventTypes == nil {
		eventTypes = []string{}
	}
	_, err := s.pgdb.NewRaw(
		"INSERT INTO "+table+" ("+edgeColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7) "+
			"ON CONFLICT (source, destination) DO NOTHING",
		e.ID, e.Source, e.Destination, eventTypes, e.TenantID, e.InceptionTime, e.ExpiryTime,
	).Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: save edge %s (%s -> %s): %w", table, e.Source, e.Destination, err)
	}

	var row edgeRow
	err = s.pgdb.NewRaw(
		"SELECT "+edgeColumns+" FROM "+table+" WHERE source = $1 AND destination = $2",
		e.Source, e.Destination,
	).Scan(ctx, row.dest()...)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: read edge %s (%s -> %s): %w", table, e.Source, e.Destination, err)
	}
	return row.toEdge(e.Kind), nil
}

// ──────────────────────────────────────────────────
// Condition graph reads
// ──────────────────────────────────────────────────

func (s *Store) ListConditionsBySubject(ctx context.Context, q condition.SubjectQuery) ([]*condition.Condition, error) {
	seen := make(map[string]struct{})
	result := make([]*condition.Condition, 0)
	for _, kind := range q.Kinds {
		rows, err := s.pgdb.Query(ctx, `
SELECT c.condition
FROM `+string(kind)+` e
JOIN condition c ON c.id = e.destination
WHERE e.source = $1
  AND ($2 = '' OR e.tenant_id = $2)
  AND (c.condition->>'xprtnDtTm' IS NULL OR (c.condition->>'xprtnDtTm')::timestamptz > $3)`,
			q.SubjectID, q.TenantID, q.At)
		if err != nil {
			return nil, fmt.Errorf("dbmanager: list conditions of %s via %s: %w", q.SubjectID, kind, err)
		}
		for rows.Next() {
			var payload []byte
			if err := rows.Scan(&payload); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("dbmanager: scan condition of %s: %w", q.SubjectID, err)
			}
			c, err := conditionFromPayload(payload)
			if err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("dbmanager: decode condition of %s: %w", q.SubjectID, err)
			}
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			result = append(result, c)
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("dbmanager: list conditions of %s via %s: %w", q.SubjectID, kind, err)
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

// QueryGraph runs one edge ⋈ subject ⋈ condition join per kind.
func (s *Store) QueryGraph(ctx context.Context, q condition.GraphQuery) (*condition.RawConditionResponse, error) {
	resp := condition.NewRawConditionResponse()
	for _, kind := range q.Kinds {
		records, err := s.queryKind(ctx, kind, q)
		if err != nil {
			return nil, err
		}
		resp.Set(kind, records)
	}
	return resp, nil
}

func (s *Store) queryKind(ctx context.Context, kind condition.EdgeKind, q condition.GraphQuery) ([]condition.EdgeRecord, error) {
	subjectCols, subjectTable := "s.id, s.tenant_id, s.cre_dt_tm", "entity"
	if kind.Subject() == condition.SubjectAccount {
		subjectCols, subjectTable = "s.id, s.tenant_id", "account"
	}
	query := `
SELECT e.id, e.source, e.destination, e.evt_tp, e.tenant_id, e.incptn_dt_tm, e.xprtn_dt_tm,
       ` + subjectCols + `, c.condition
FROM ` + string(kind) + ` e
JOIN ` + subjectTable + ` s ON s.id = e.source AND s.tenant_id = e.tenant_id
JOIN condition c ON c.id = e.destination
WHERE ($1 = '' OR e.source = $1)
  AND ($2 = '' OR e.tenant_id = $2)
  AND (NOT $3::boolean OR (e.incptn_dt_tm <= $4 AND (e.xprtn_dt_tm IS NULL OR e.xprtn_dt_tm > $4)))
ORDER BY e.incptn_dt_tm, e.id`

	rows, err := s.pgdb.Query(ctx, query, q.SubjectID, q.TenantID, q.ActiveOnly, q.At)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: query graph %s: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]condition.EdgeRecord, 0)
	for rows.Next() {
		var (
			edge    edgeRow
			payload []byte
			rec     condition.EdgeRecord
		)
		dest := edge.dest()
		switch kind.Subject() {
		case condition.SubjectAccount:
			rec.Account = new(condition.Account)
			dest = append(dest, &rec.Account.ID, &rec.Account.TenantID)
		default:
			rec.Entity = new(condition.Entity)
			dest = append(dest, &rec.Entity.ID, &rec.Entity.TenantID, &rec.Entity.CreatedAt)
		}
		dest = append(dest, &payload)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("dbmanager: scan graph %s: %w", kind, err)
		}
		c, err := conditionFromPayload(payload)
		if err != nil {
			return nil, fmt.Errorf("dbmanager: decode graph %s condition: %w", kind, err)
		}
		if rec.Entity != nil {
			rec.Entity.CreatedAt = rec.Entity.CreatedAt.UTC()
		}
		rec.Edge = *edge.toEdge(kind)
		rec.Condition = *c
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dbmanager: query graph %s: %w", kind, err)
	}
	return records, nil
}

// ──────────────────────────────────────────────────
// Condition graph updates
// ──────────────────────────────────────────────────

func (s *Store) UpdateEdgeExpiry(ctx context.Context, kind condition.EdgeKind, edgeID string, expiry time.Time, tenantID string) error {
	table := string(kind)
	tx, err := s.pgdb.BeginTxQuery(ctx, nil)
	if err != nil {
		return fmt.Errorf("dbmanager: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	var owner string
	err = tx.NewRaw("SELECT tenant_id FROM "+table+" WHERE id = $1 FOR UPDATE", edgeID).Scan(ctx, &owner)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("edge %s/%s: %w", table, edgeID, condition.ErrUnauthorized)
		}
		return fmt.Errorf("dbmanager: read edge %s/%s: %w", table, edgeID, err)
	}
	if owner != tenantID {
		return fmt.Errorf("edge %s/%s: %w", table, edgeID, condition.ErrUnauthorized)
	}

	_, err = tx.NewRaw("UPDATE "+table+" SET xprtn_dt_tm = $1 WHERE id = $2", expiry, edgeID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: update edge %s/%s expiry: %w", table, edgeID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dbmanager: commit tx: %w", err)
	}
	return nil
}

func (s *Store) UpdateConditionExpiry(ctx context.Context, conditionID string, expiry time.Time) error {
	_, err := s.pgdb.NewRaw(
		`UPDATE condition SET condition = jsonb_set(condition, '{xprtnDtTm}', to_jsonb($1::text)) WHERE id = $2`,
		expiry.UTC().Format(time.RFC3339Nano), conditionID,
	).Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: update condition %s expiry: %w", conditionID, err)
	}
	return nil
}
