package condition

import (
	"fmt"
	"time"
)

// EdgeKind names one of the four edge collections linking a subject to a
// condition. The value doubles as the storage collection/table name.
type EdgeKind string

// Edge kinds.
const (
	GovernedAsCreditorBy        EdgeKind = "governed_as_creditor_by"
	GovernedAsDebtorBy          EdgeKind = "governed_as_debtor_by"
	GovernedAsCreditorAccountBy EdgeKind = "governed_as_creditor_account_by"
	GovernedAsDebtorAccountBy   EdgeKind = "governed_as_debtor_account_by"
)

// EntityEdgeKinds are the kinds whose source is an entity.
var EntityEdgeKinds = []EdgeKind{GovernedAsCreditorBy, GovernedAsDebtorBy}

// AccountEdgeKinds are the kinds whose source is an account.
var AccountEdgeKinds = []EdgeKind{GovernedAsCreditorAccountBy, GovernedAsDebtorAccountBy}

// AllEdgeKinds lists every kind in aggregation order.
var AllEdgeKinds = []EdgeKind{
	GovernedAsCreditorBy,
	GovernedAsDebtorBy,
	GovernedAsCreditorAccountBy,
	GovernedAsDebtorAccountBy,
}

// SubjectKind distinguishes the two subject tables.
type SubjectKind string

// Subject kinds.
const (
	SubjectEntity  SubjectKind = "entity"
	SubjectAccount SubjectKind = "account"
)

// Valid reports whether k is one of the four known kinds.
func (k EdgeKind) Valid() bool {
	switch k {
	case GovernedAsCreditorBy, GovernedAsDebtorBy, GovernedAsCreditorAccountBy, GovernedAsDebtorAccountBy:
		return true
	}
	return false
}

// Subject returns the kind of record on the source side of the edge.
func (k EdgeKind) Subject() SubjectKind {
	if k == GovernedAsCreditorAccountBy || k == GovernedAsDebtorAccountBy {
		return SubjectAccount
	}
	return SubjectEntity
}

// ParseEdgeKind validates a collection name.
func ParseEdgeKind(collection string) (EdgeKind, error) {
	if collection == "" {
		return "", fmt.Errorf("%w: missing collection name", ErrMalformedInput)
	}
	k := EdgeKind(collection)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown collection %q", ErrMalformedInput, collection)
	}
	return k, nil
}

// Edge links a subject (Source) to a condition (Destination).
// (Source, Destination) is unique per kind.
type Edge struct {
	ID            string     `json:"id"`
	Kind          EdgeKind   `json:"kind"`
	Source        string     `json:"source"`
	Destination   string     `json:"destination"`
	EventTypes    []string   `json:"evtTp"`
	TenantID      string     `json:"tenantId"`
	InceptionTime time.Time  `json:"incptnDtTm"`
	ExpiryTime    *time.Time `json:"xprtnDtTm,omitempty"`
}

// EdgeAttrs are the caller-supplied attributes of a new edge.
type EdgeAttrs struct {
	EventTypes    []string
	TenantID      string
	InceptionTime time.Time
	ExpiryTime    *time.Time
}

// State is the temporal state of an edge or condition at a point in time.
type State int

// Temporal states.
const (
	StatePending State = iota
	StateActive
	StateExpired
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StateAt derives the state of the window [inception, expiry) at now.
// A nil expiry never ends.
func StateAt(now, inception time.Time, expiry *time.Time) State {
	if now.Before(inception) {
		return StatePending
	}
	if expiry != nil && !now.Before(*expiry) {
		return StateExpired
	}
	return StateActive
}

// ActiveAt reports whether the edge is in force at now.
func (e *Edge) ActiveAt(now time.Time) bool {
	return StateAt(now, e.InceptionTime, e.ExpiryTime) == StateActive
}

// validateWindow rejects an expiry before the inception.
func validateWindow(inception time.Time, expiry *time.Time) error {
	if expiry != nil && expiry.Before(inception) {
		return fmt.Errorf("%w: expiry %s before inception %s",
			ErrMalformedInput, expiry.Format(time.RFC3339), inception.Format(time.RFC3339))
	}
	return nil
}
