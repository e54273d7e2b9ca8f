package models

// TipType selects how the bill's tip is determined.
type TipType string

const (
	// TipPercent derives the tip from the subtotal and TipPercentage.
	TipPercent TipType = "percent"
	// TipAmount uses TipAmount as given.
	TipAmount TipType = "amount"
)

// DefaultCurrency is the display symbol used when a bill has none.
const DefaultCurrency = "$"

// BillState is the editable state of one bill.
// It is created fresh per bill, mutated by the editor, and frozen into a
// BillRecord for history. The settlement engine only reads it.
type BillState struct {
	// Items are the receipt lines, in display order.
	Items []Item `json:"items"`

	// Tax is the total tax amount for the bill.
	Tax float64 `json:"tax"`

	// TipAmount is the fixed tip used when TipType is TipAmount.
	TipAmount float64 `json:"tip_amount"`

	// TipPercentage is the tip rate (0-100+) used when TipType is TipPercent.
	// The engine accepts any non-negative value; UIs usually cap it.
	TipPercentage float64 `json:"tip_percentage"`

	// TipType selects between TipPercentage and TipAmount.
	TipType TipType `json:"tip_type"`

	// TipFromReceipt is set when the tip was read off the receipt.
	TipFromReceipt bool `json:"tip_from_receipt,omitempty"`

	// People is everyone on the bill. Order defines display and iteration order.
	People []Person `json:"people"`

	// CoverAssignments are coverage rules in insertion order.
	// There is at most one entry per covered person.
	CoverAssignments []CoverAssignment `json:"cover_assignments"`

	// Currency is a display symbol such as "$".
	Currency string `json:"currency,omitempty"`
}

// Subtotal returns the sum of all item prices, including unassigned items.
func (b BillState) Subtotal() float64 {
	var sum float64
	for _, item := range b.Items {
		sum += item.Price
	}
	return sum
}

// FindPerson returns the person with the given ID.
func (b BillState) FindPerson(id string) (Person, bool) {
	for _, p := range b.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// FindItem returns the index of the item with the given ID, or -1.
func (b BillState) FindItem(id string) int {
	for i, item := range b.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// CoverageFor returns the coverage payer for a person, if one is set.
func (b BillState) CoverageFor(personID string) (CoveragePayer, bool) {
	for _, ca := range b.CoverAssignments {
		if ca.CoveredID == personID {
			return ca.Payer, true
		}
	}
	return CoveragePayer{}, false
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (b BillState) Clone() BillState {
	out := b
	out.Items = make([]Item, len(b.Items))
	for i, item := range b.Items {
		out.Items[i] = item.Clone()
	}
	out.People = append([]Person(nil), b.People...)
	out.CoverAssignments = append([]CoverAssignment(nil), b.CoverAssignments...)
	return out
}

// Item represents a single line item on a bill.
// Items can be shared among multiple people with uneven weights.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`

	// Name is the description of the item (e.g., "Pizza", "Beer").
	Name string `json:"name"`

	// Price is the pre-tax price of this item. Never negative.
	Price float64 `json:"price"`

	// AssignedTo is the set of person IDs sharing this item. Order is irrelevant.
	AssignedTo []string `json:"assigned_to"`

	// Shares maps person ID to share weight. Assigned people without an entry
	// have weight 1. Every key must also appear in AssignedTo.
	Shares map[string]int `json:"shares,omitempty"`
}

// IsAssigned reports whether the person shares this item.
func (i Item) IsAssigned(personID string) bool {
	for _, id := range i.AssignedTo {
		if id == personID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	out.AssignedTo = append([]string(nil), i.AssignedTo...)
	if i.Shares != nil {
		out.Shares = make(map[string]int, len(i.Shares))
		for k, v := range i.Shares {
			out.Shares[k] = v
		}
	}
	return out
}

// Person is someone splitting the bill.
type Person struct {
	// ID is unique across the bill.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Color is a display color such as "#6366f1".
	Color string `json:"color"`
}
