// Package id mints TypeID-based identifiers for records whose id is
// assigned by this module rather than by the caller: conditions, graph
// edges, evaluation results and network map versions.
//
// Stores keep ids as plain strings so caller-supplied condition ids and
// externally keyed records (entities, accounts, transactions) share one
// column type. Generated ids are K-sortable and look like "cond_01h2x...".
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the record type encoded in a TypeID.
type Prefix string

// Prefixes for storage-assigned identifiers.
const (
	PrefixCondition  Prefix = "cond"
	PrefixEdge       Prefix = "edge"
	PrefixEvaluation Prefix = "eval"
	PrefixNetworkMap Prefix = "nmap"
)

// ID wraps a generated or parsed TypeID.
type ID struct {
	inner typeid.TypeID
}

// New generates a new ID with the given prefix. It panics if prefix is
// not a valid TypeID prefix.
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return ID{inner: tid}
}

// Parse parses a TypeID string and, when expected is non-empty, checks
// its prefix.
func Parse(s string, expected Prefix) (ID, error) {
	if s == "" {
		return ID{}, fmt.Errorf("id: parse %q: empty string", s)
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("id: parse %q: %w", s, err)
	}
	parsed := ID{inner: tid}
	if expected != "" && parsed.Prefix() != expected {
		return ID{}, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}
	return parsed, nil
}

// NewConditionID generates a new condition ID.
func NewConditionID() ID { return New(PrefixCondition) }

// NewEdgeID generates a new edge ID.
func NewEdgeID() ID { return New(PrefixEdge) }

// NewEvaluationID generates a new evaluation ID.
func NewEvaluationID() ID { return New(PrefixEvaluation) }

// NewNetworkMapID generates a new network map ID.
func NewNetworkMapID() ID { return New(PrefixNetworkMap) }

// String returns the "prefix_suffix" form.
func (i ID) String() string { return i.inner.String() }

// Prefix returns the prefix component.
func (i ID) Prefix() Prefix { return Prefix(i.inner.Prefix()) }
