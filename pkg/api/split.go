// Package api defines the request and response messages of the fairsplit RPC
// services. Messages travel as JSON; see package apiconnect for the handlers
// and clients.
package api

// Bill is the wire form of an editable bill.
type Bill struct {
	Items          []Item     `json:"items" validate:"dive"`
	Tax            float64    `json:"tax" validate:"gte=0"`
	TipAmount      float64    `json:"tip_amount" validate:"gte=0"`
	TipPercentage  float64    `json:"tip_percentage" validate:"gte=0"`
	TipType        string     `json:"tip_type" validate:"omitempty,oneof=percent amount"`
	TipFromReceipt bool       `json:"tip_from_receipt,omitempty"`
	People         []Person   `json:"people" validate:"dive"`
	Coverage       []Coverage `json:"coverage,omitempty" validate:"unique=CoveredID,dive"`
	Currency       string     `json:"currency,omitempty"`
}

type Item struct {
	ID         string         `json:"id" validate:"required"`
	Name       string         `json:"name"`
	Price      float64        `json:"price" validate:"gte=0"`
	AssignedTo []string       `json:"assigned_to,omitempty"`
	Shares     map[string]int `json:"shares,omitempty" validate:"omitempty,dive,gte=1"`
}

type Person struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Coverage says who pays CoveredID's share: PayerID, or everyone else when
// SplitAll is set. A bill holds at most one Coverage per CoveredID.
type Coverage struct {
	CoveredID string `json:"covered_id" validate:"required"`
	PayerID   string `json:"payer_id,omitempty" validate:"required_without=SplitAll,excluded_with=SplitAll"`
	SplitAll  bool   `json:"split_all,omitempty"`
}

type ComputeFinalSplitsRequest struct {
	Bill *Bill `json:"bill" validate:"required"`
}

type ComputeFinalSplitsResponse struct {
	Splits []PersonSplit `json:"splits"`
	Totals BillTotals    `json:"totals"`
}

// PersonSplit is one person's settled amount.
type PersonSplit struct {
	PersonID       string   `json:"person_id"`
	Name           string   `json:"name"`
	RawTotal       float64  `json:"raw_total"`
	FinalTotal     float64  `json:"final_total"`
	Notes          []string `json:"notes,omitempty"`
	Covered        bool     `json:"covered,omitempty"`
	CoveringOthers bool     `json:"covering_others,omitempty"`
}

type BillTotals struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Tip        float64 `json:"tip"`
	GrandTotal float64 `json:"grand_total"`
}

type ComputePersonTotalsRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	Bill     *Bill  `json:"bill" validate:"required"`
}

type ComputePersonTotalsResponse struct {
	PersonID string       `json:"person_id"`
	Subtotal float64      `json:"subtotal"`
	Tax      float64      `json:"tax"`
	Tip      float64      `json:"tip"`
	Total    float64      `json:"total"`
	Items    []PersonItem `json:"items,omitempty"`
}

// PersonItem is one item as seen by a single person.
type PersonItem struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Shares      int     `json:"shares"`
	TotalShares int     `json:"total_shares"`
	Uneven      bool    `json:"uneven,omitempty"`
}

type Receipt struct {
	Items    []ReceiptItem `json:"items" validate:"dive"`
	Tax      float64       `json:"tax" validate:"gte=0"`
	Tip      *float64      `json:"tip,omitempty" validate:"omitempty,gte=0"`
	Currency string        `json:"currency,omitempty"`
}

type ReceiptItem struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type SeedFromReceiptRequest struct {
	Receipt *Receipt `json:"receipt" validate:"required"`
	// People names the people to start the bill with. Empty means a single "Me".
	People []string `json:"people,omitempty" validate:"omitempty,dive,required"`
}

type SeedFromReceiptResponse struct {
	Bill *Bill `json:"bill"`
}
