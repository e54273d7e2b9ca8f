package models

import "time"

// BillStatus is the lifecycle state of a saved bill.
type BillStatus string

const (
	// StatusDraft bills can still be edited and re-saved.
	StatusDraft BillStatus = "draft"
	// StatusFinalized bills are frozen; no further edits are accepted.
	StatusFinalized BillStatus = "finalized"
)

// Valid reports whether s is a known status.
func (s BillStatus) Valid() bool {
	return s == StatusDraft || s == StatusFinalized
}

// BillRecord is a BillState snapshot kept in a user's bill history.
type BillRecord struct {
	// ID is the unique identifier for the record ("bill-<uuid>").
	ID string `json:"id"`

	// Title is generated from the people on the bill.
	Title string `json:"title"`

	// Date is when the record was last saved.
	Date time.Time `json:"date"`

	// Status is draft or finalized.
	Status BillStatus `json:"status"`

	// Total is the grand total (subtotal + tax + tip) at save time.
	Total float64 `json:"total"`

	// State is the bill snapshot, stored verbatim.
	State BillState `json:"state"`
}

// IsFinalized reports whether the record is frozen.
func (r BillRecord) IsFinalized() bool {
	return r.Status == StatusFinalized
}
