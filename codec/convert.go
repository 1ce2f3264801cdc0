package codec

import (
	"time"

	"github.com/xraph/dbmanager/condition"
)

// TimeLayout is the timestamp format carried in buffer string fields.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Perspective names derived from edge kinds.
const (
	PerspectiveCreditor = "creditor"
	PerspectiveDebtor   = "debtor"
)

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

func perspectiveOf(kind condition.EdgeKind) string {
	switch kind {
	case condition.GovernedAsCreditorBy, condition.GovernedAsCreditorAccountBy:
		return PerspectiveCreditor
	}
	return PerspectiveDebtor
}

// FromEntityConditions builds the buffer for one entity from a graph
// traversal. Each edge becomes a perspective of its condition.
func FromEntityConditions(entity *condition.Entity, resp *condition.RawConditionResponse) *ConditionBuffer {
	return &ConditionBuffer{
		Entity: &Entity{
			ID:        entity.ID,
			TenantID:  entity.TenantID,
			CreatedAt: FormatTime(entity.CreatedAt),
		},
		Conditions: entries(resp, condition.EntityEdgeKinds),
	}
}

// FromAccountConditions builds the buffer for one account from a graph
// traversal.
func FromAccountConditions(account *condition.Account, resp *condition.RawConditionResponse) *ConditionBuffer {
	return &ConditionBuffer{
		Account: &Account{
			ID:       account.ID,
			TenantID: account.TenantID,
		},
		Conditions: entries(resp, condition.AccountEdgeKinds),
	}
}

func entries(resp *condition.RawConditionResponse, kinds []condition.EdgeKind) []*ConditionEntry {
	var out []*ConditionEntry
	byID := make(map[string]*ConditionEntry)
	for _, kind := range kinds {
		for _, rec := range resp.Group(kind) {
			c := rec.Condition
			entry, ok := byID[c.ID]
			if !ok {
				entry = &ConditionEntry{
					ConditionID:   c.ID,
					Type:          c.Type,
					InceptionTime: FormatTime(c.InceptionTime),
					ExpiryTime:    formatOptional(c.ExpiryTime),
					Reason:        c.Reason,
					User:          c.User,
					CreatedAt:     FormatTime(c.CreatedAt),
				}
				byID[c.ID] = entry
				out = append(out, entry)
			}
			entry.Perspectives = append(entry.Perspectives, &Perspective{
				Perspective:   perspectiveOf(kind),
				EventTypes:    append([]string(nil), rec.Edge.EventTypes...),
				InceptionTime: FormatTime(rec.Edge.InceptionTime),
				ExpiryTime:    formatOptional(rec.Edge.ExpiryTime),
			})
		}
	}
	return out
}
