package condition

// EdgeRecord is one {edge, subject, condition} triple produced by a graph
// traversal. Exactly one of Entity and Account is set, matching the edge
// kind's subject.
type EdgeRecord struct {
	Edge      Edge      `json:"edge"`
	Entity    *Entity   `json:"entity,omitempty"`
	Account   *Account  `json:"account,omitempty"`
	Condition Condition `json:"condition"`
}

// RawConditionResponse aggregates traversal results under one named group
// per edge kind. A subject can appear in several groups at once.
type RawConditionResponse struct {
	GovernedAsCreditorBy        []EdgeRecord `json:"governed_as_creditor_by"`
	GovernedAsDebtorBy          []EdgeRecord `json:"governed_as_debtor_by"`
	GovernedAsCreditorAccountBy []EdgeRecord `json:"governed_as_creditor_account_by"`
	GovernedAsDebtorAccountBy   []EdgeRecord `json:"governed_as_debtor_account_by"`
}

// NewRawConditionResponse returns a response whose groups are all empty,
// non-nil slices so they serialize as [] rather than null.
func NewRawConditionResponse() *RawConditionResponse {
	return &RawConditionResponse{
		GovernedAsCreditorBy:        []EdgeRecord{},
		GovernedAsDebtorBy:          []EdgeRecord{},
		GovernedAsCreditorAccountBy: []EdgeRecord{},
		GovernedAsDebtorAccountBy:   []EdgeRecord{},
	}
}

// Group returns the records aggregated under kind.
func (r *RawConditionResponse) Group(kind EdgeKind) []EdgeRecord {
	if p := r.group(kind); p != nil {
		return *p
	}
	return nil
}

// Set replaces the records aggregated under kind.
func (r *RawConditionResponse) Set(kind EdgeKind, records []EdgeRecord) {
	if p := r.group(kind); p != nil {
		*p = records
	}
}

// Append adds a record under kind.
func (r *RawConditionResponse) Append(kind EdgeKind, rec EdgeRecord) {
	if p := r.group(kind); p != nil {
		*p = append(*p, rec)
	}
}

// Len returns the total number of records across all groups.
func (r *RawConditionResponse) Len() int {
	return len(r.GovernedAsCreditorBy) + len(r.GovernedAsDebtorBy) +
		len(r.GovernedAsCreditorAccountBy) + len(r.GovernedAsDebtorAccountBy)
}

func (r *RawConditionResponse) group(kind EdgeKind) *[]EdgeRecord {
	switch kind {
	case GovernedAsCreditorBy:
		return &r.GovernedAsCreditorBy
	case GovernedAsDebtorBy:
		return &r.GovernedAsDebtorBy
	case GovernedAsCreditorAccountBy:
		return &r.GovernedAsCreditorAccountBy
	case GovernedAsDebtorAccountBy:
		return &r.GovernedAsDebtorAccountBy
	}
	return nil
}
