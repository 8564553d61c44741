package models

// Resolution is the result of a lookup by email or phone. An empty Customers slice is a valid
// "no data found" answer, distinct from an error.
type Resolution struct {
	Customers   []*CanonicalCustomer `json:"customers"`
	IsAmbiguous bool                 `json:"is_ambiguous"`
	Reason      string               `json:"reason,omitempty"`
}
