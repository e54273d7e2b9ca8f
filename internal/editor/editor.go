// Package editor mutates a BillState while keeping its invariants:
// share weights only exist for assigned people, weights stay at least 1,
// coverage has one entry per person and never points a person at themselves.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/fairsplit/internal/models"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrPersonNotFound = errors.New("person not found")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrNegativePrice  = errors.New("price must not be negative")
	ErrNegativeTip    = errors.New("tip must not be negative")
)

// Palette is the fixed set of person colors, assigned by position.
var Palette = []string{
	"#6366f1", // Indigo
	"#ec4899", // Pink
	"#10b981", // Emerald
	"#f59e0b", // Amber
	"#3b82f6", // Blue
	"#8b5cf6", // Violet
	"#ef4444", // Red
	"#14b8a6", // Teal
}

// DefaultPeople is the starting table for a new bill.
func DefaultPeople() []models.Person {
	return []models.Person{{ID: "p1", Name: "Me", Color: Palette[0]}}
}

// NewBill returns an empty draft with a 15% tip.
func NewBill() models.BillState {
	return models.BillState{
		TipPercentage: 15,
		TipType:       models.TipPercent,
		People:        DefaultPeople(),
		Currency:      models.DefaultCurrency,
	}
}

// AddItem appends a manually entered item and returns it.
func AddItem(bill *models.BillState, name string, price float64) (models.Item, error) {
	if price < 0 {
		return models.Item{}, ErrNegativePrice
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Item"
	}
	item := models.Item{
		ID:     "manual-" + uuid.New().String(),
		Name:   name,
		Price:  price,
		Shares: map[string]int{},
	}
	bill.Items = append(bill.Items, item)
	return item, nil
}

// UpdateItem replaces the item with the same ID.
// Weights for people no longer assigned are dropped.
func UpdateItem(bill *models.BillState, item models.Item) error {
	if item.Price < 0 {
		return ErrNegativePrice
	}
	idx := bill.FindItem(item.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}
	item = item.Clone()
	for id := range item.Shares {
		if !item.IsAssigned(id) {
			delete(item.Shares, id)
		}
	}
	bill.Items[idx] = item
	return nil
}

// DeleteItem removes an item.
func DeleteItem(bill *models.BillState, itemID string) error {
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	bill.Items = append(bill.Items[:idx:idx], bill.Items[idx+1:]...)
	return nil
}

// ToggleAssignment assigns the person to the item with one share, or
// unassigns them and drops their weight.
func ToggleAssignment(bill *models.BillState, itemID, personID string) error {
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if _, ok := bill.FindPerson(personID); !ok {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	item := bill.Items[idx].Clone()
	if item.Shares == nil {
		item.Shares = map[string]int{}
	}
	if item.IsAssigned(personID) {
		item.AssignedTo = without(item.AssignedTo, personID)
		delete(item.Shares, personID)
	} else {
		item.AssignedTo = append(item.AssignedTo, personID)
		item.Shares[personID] = 1
	}
	bill.Items[idx] = item
	return nil
}

// AdjustShare changes an assigned person's weight by delta, never below 1.
// It returns the new weight.
func AdjustShare(bill *models.BillState, itemID, personID string, delta int) (int, error) {
	idx := bill.FindItem(itemID)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	item := bill.Items[idx].Clone()
	if !item.IsAssigned(personID) {
		return 0, fmt.Errorf("%w: %s is not assigned to %s", ErrPersonNotFound, personID, itemID)
	}

	current := 1
	if w, ok := item.Shares[personID]; ok {
		current = w
	}
	next := max(1, current+delta)
	if item.Shares == nil {
		item.Shares = map[string]int{}
	}
	item.Shares[personID] = next
	bill.Items[idx] = item
	return next, nil
}

// AddPerson adds someone to the table with the next palette color.
func AddPerson(bill *models.BillState, name string) (models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Person{}, ErrEmptyName
	}
	p := models.Person{
		ID:    "p-" + uuid.New().String(),
		Name:  name,
		Color: Palette[len(bill.People)%len(Palette)],
	}
	bill.People = append(bill.People, p)
	return p, nil
}

// RemovePerson drops a person and every assignment, weight and coverage
// rule that references them.
func RemovePerson(bill *models.BillState, personID string) error {
	idx := -1
	for i, p := range bill.People {
		if p.ID == personID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	bill.People = append(bill.People[:idx:idx], bill.People[idx+1:]...)

	for i := range bill.Items {
		if !bill.Items[i].IsAssigned(personID) {
			continue
		}
		item := bill.Items[i].Clone()
		item.AssignedTo = without(item.AssignedTo, personID)
		delete(item.Shares, personID)
		bill.Items[i] = item
	}

	kept := make([]models.CoverAssignment, 0, len(bill.CoverAssignments))
	for _, ca := range bill.CoverAssignments {
		if ca.CoveredID == personID {
			continue
		}
		if id, ok := ca.Payer.PersonID(); ok && id == personID {
			continue
		}
		kept = append(kept, ca)
	}
	bill.CoverAssignments = kept
	return nil
}

// SetCoverage records who pays for a person. Choosing the person themselves
// removes the rule. An existing rule keeps its position in the order.
func SetCoverage(bill *models.BillState, coveredID string, payer models.CoveragePayer) error {
	if _, ok := bill.FindPerson(coveredID); !ok {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, coveredID)
	}
	if payer.IsZero() {
		return models.ErrInvalidPayer
	}
	if id, ok := payer.PersonID(); ok {
		if id == coveredID {
			ClearCoverage(bill, coveredID)
			return nil
		}
		if _, ok := bill.FindPerson(id); !ok {
			return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
		}
	}

	for i, ca := range bill.CoverAssignments {
		if ca.CoveredID == coveredID {
			bill.CoverAssignments[i].Payer = payer
			return nil
		}
	}
	bill.CoverAssignments = append(bill.CoverAssignments, models.CoverAssignment{
		CoveredID: coveredID,
		Payer:     payer,
	})
	return nil
}

// ClearCoverage removes a person's coverage rule, if any.
func ClearCoverage(bill *models.BillState, coveredID string) {
	kept := bill.CoverAssignments[:0:0]
	for _, ca := range bill.CoverAssignments {
		if ca.CoveredID != coveredID {
			kept = append(kept, ca)
		}
	}
	bill.CoverAssignments = kept
}

// SetTipPercent switches the bill to a percentage tip.
func SetTipPercent(bill *models.BillState, pct float64) error {
	if pct < 0 {
		return ErrNegativeTip
	}
	bill.TipType = models.TipPercent
	bill.TipPercentage = pct
	return nil
}

// SetTipAmount switches the bill to a fixed tip.
func SetTipAmount(bill *models.BillState, amount float64) error {
	if amount < 0 {
		return ErrNegativeTip
	}
	bill.TipType = models.TipAmount
	bill.TipAmount = amount
	return nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
