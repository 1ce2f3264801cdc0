package api

// ReadinessRequest carries no parameters.
type ReadinessRequest struct{}

// ──────────────────────────────────────────────────
// Condition requests
// ──────────────────────────────────────────────────

// CreateConditionRequest is the body for creating a condition.
type CreateConditionRequest struct {
	Type          string   `json:"condTp" description:"Condition type, e.g. non-overridable-block"`
	Perspective   string   `json:"prsptv" description:"Perspective (governed_as_creditor_by, governed_as_debtor_by or both)"`
	Reason        string   `json:"condRsn,omitempty" description:"Free-form reason"`
	Forced        bool     `json:"forceCret,omitempty" description:"Force creation"`
	User          string   `json:"usr" description:"User that raised the condition"`
	InceptionTime string   `json:"incptnDtTm" description:"RFC 3339 start of the condition"`
	ExpiryTime    string   `json:"xprtnDtTm,omitempty" description:"RFC 3339 end of the condition, empty for never"`
	EventTypes    []string `json:"evtTp" description:"Event types the condition applies to"`
}

// UpdateConditionExpiryRequest is the body for changing a condition's expiry.
type UpdateConditionExpiryRequest struct {
	ConditionID string `path:"conditionId" description:"Condition ID"`
	ExpiryTime  string `json:"xprtnDtTm" description:"RFC 3339 new expiry"`
}

// EntityConditionsRequest holds query parameters for entity lookups.
type EntityConditionsRequest struct {
	EntityID    string `query:"id" description:"Entity external ID"`
	Scheme      string `query:"schmenm" description:"Identification scheme"`
	RetrieveAll bool   `query:"retrieve_all" description:"Include edges outside their window"`
}

// AccountConditionsRequest holds query parameters for account lookups.
type AccountConditionsRequest struct {
	AccountID     string `query:"id" description:"Account external ID"`
	Scheme        string `query:"schmenm" description:"Identification scheme"`
	AgentMemberID string `query:"agt" description:"Servicing agent member ID"`
	RetrieveAll   bool   `query:"retrieve_all" description:"Include edges outside their window"`
}

// GraphRequest holds query parameters for a full graph traversal.
type GraphRequest struct {
	ActiveOnly bool `query:"active_only" description:"Exclude edges outside their window"`
}

// ──────────────────────────────────────────────────
// Subject and edge requests
// ──────────────────────────────────────────────────

// SaveEntityRequest is the body for registering an entity.
type SaveEntityRequest struct {
	EntityID string `json:"id" description:"Entity external ID"`
	Scheme   string `json:"schmenm" description:"Identification scheme"`
}

// SaveAccountRequest is the body for registering an account.
type SaveAccountRequest struct {
	AccountID     string `json:"id" description:"Account external ID"`
	Scheme        string `json:"schmenm" description:"Identification scheme"`
	AgentMemberID string `json:"agt" description:"Servicing agent member ID"`
}

// SaveEdgeRequest is the body for linking a subject to a condition.
type SaveEdgeRequest struct {
	Collection    string   `path:"collection" description:"Edge kind"`
	ConditionID   string   `json:"condId" description:"Condition ID"`
	SubjectID     string   `json:"subjectId" description:"Entity or account storage key"`
	EventTypes    []string `json:"evtTp" description:"Event types"`
	InceptionTime string   `json:"incptnDtTm" description:"RFC 3339 start of the edge"`
	ExpiryTime    string   `json:"xprtnDtTm,omitempty" description:"RFC 3339 end of the edge, empty for never"`
}

// UpdateEdgeExpiryRequest is the body for changing an edge's expiry.
type UpdateEdgeExpiryRequest struct {
	Collection string `path:"collection" description:"Edge kind"`
	EdgeID     string `path:"edgeId" description:"Edge ID"`
	ExpiryTime string `json:"xprtnDtTm" description:"RFC 3339 new expiry"`
}
