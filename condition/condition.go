// Package condition models the temporal condition graph: entities and
// accounts (subjects), time-bounded conditions such as holds and blocks,
// and the typed edges that attach a condition to a subject.
//
// A condition carries no subject of its own. It governs a subject only
// through an edge, and an edge is only in force while the current time
// falls inside its inception/expiry window.
package condition

import (
	"errors"
	"time"
)

var (
	// ErrUnauthorized is returned when a mutation targets an edge that
	// does not exist or belongs to another tenant.
	ErrUnauthorized = errors.New("condition: tenant not authorized for record")

	// ErrMalformedInput is returned before any I/O when a request is
	// structurally invalid (missing collection, unknown edge kind,
	// inverted time window).
	ErrMalformedInput = errors.New("condition: malformed input")

	// ErrConditionExists is returned when a condition id is already taken.
	ErrConditionExists = errors.New("condition: condition already exists")
)

// Entity is a natural or legal person identified by a scheme-qualified
// external id.
type Entity struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"creDtTm"`
}

// Account is identified by the triple (externalId, scheme, agent member id)
// collapsed into a single key. See AccountKey.
type Account struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
}

// Condition is a named temporal restriction attached to subjects via edges.
type Condition struct {
	ID            string     `json:"condId"`
	TenantID      string     `json:"tenantId"`
	Type          string     `json:"condTp"`
	Perspective   string     `json:"prsptv"`
	Reason        string     `json:"condRsn"`
	Forced        bool       `json:"forceCret"`
	User          string     `json:"usr"`
	CreatedAt     time.Time  `json:"creDtTm"`
	InceptionTime time.Time  `json:"incptnDtTm"`
	ExpiryTime    *time.Time `json:"xprtnDtTm,omitempty"`
	EventTypes    []string   `json:"evtTp"`
}

// Unexpired reports whether the condition's own expiry is absent or after now.
func (c *Condition) Unexpired(now time.Time) bool {
	return c.ExpiryTime == nil || c.ExpiryTime.After(now)
}

// EntityKey builds the storage key of an entity from its external id and
// identification scheme.
func EntityKey(externalID, scheme string) string {
	return externalID + scheme
}

// AccountKey builds the storage key of an account from its external id,
// identification scheme and servicing agent member id.
func AccountKey(externalID, scheme, agentMemberID string) string {
	return externalID + scheme + agentMemberID
}
