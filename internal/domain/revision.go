package domain

// Revision is one user edit to a ledger row. A nil field leaves the
// classifier-assigned value untouched. Only the claimable flag and the
// free-text comment are editable; category and rationale are not.
type Revision struct {
	Row       int     `json:"row"`
	Claimable *bool   `json:"claimable,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}
