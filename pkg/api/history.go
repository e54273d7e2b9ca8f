package api

import "google.golang.org/protobuf/types/known/timestamppb"

// Bill statuses accepted by SaveBill.
const (
	StatusDraft     = "draft"
	StatusFinalized = "finalized"
)

// BillSummary is a history entry without its bill state.
type BillSummary struct {
	ID     string                 `json:"id"`
	Title  string                 `json:"title"`
	Date   *timestamppb.Timestamp `json:"date"`
	Status string                 `json:"status"`
	Total  float64                `json:"total"`
}

// BillRecord is a full history entry.
type BillRecord struct {
	BillSummary
	Bill *Bill `json:"bill"`
}

type SaveBillRequest struct {
	// BillID is empty for a new bill.
	BillID string `json:"bill_id,omitempty"`
	Status string `json:"status" validate:"required,oneof=draft finalized"`
	Bill   *Bill  `json:"bill" validate:"required"`
}

type SaveBillResponse struct {
	Record *BillRecord `json:"record"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*BillSummary `json:"bills"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type GetBillResponse struct {
	Record *BillRecord `json:"record"`
	// Splits is the settlement of the stored bill.
	Splits []PersonSplit `json:"splits"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type DeleteBillResponse struct{}
