package calculator

import "github.com/mmynk/fairsplit/internal/models"

// WeightOf returns a person's share weight on an item.
// People without an explicit weight bear one share.
func WeightOf(item models.Item, personID string) int {
	if w, ok := item.Shares[personID]; ok {
		return w
	}
	return 1
}

// TotalShares sums the weights of everyone assigned to the item.
// Duplicate IDs in AssignedTo count once.
func TotalShares(item models.Item) int {
	total := 0
	for _, id := range assignees(item) {
		total += WeightOf(item, id)
	}
	return total
}

// assignees returns the distinct IDs in AssignedTo, in first-seen order.
func assignees(item models.Item) []string {
	out := make([]string, 0, len(item.AssignedTo))
	seen := make(map[string]struct{}, len(item.AssignedTo))
	for _, id := range item.AssignedTo {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ItemCost computes how much of an item's price a person bears.
// Unassigned people, unassigned items and zero total weight all cost 0.
//
// Based on the algorithm: cost = price × my_shares / total_shares
func ItemCost(item models.Item, personID string) float64 {
	if !item.IsAssigned(personID) {
		return 0
	}
	totalShares := TotalShares(item)
	if totalShares == 0 {
		return 0
	}
	return item.Price * float64(WeightOf(item, personID)) / float64(totalShares)
}

// PersonItem is one item's share for one person.
type PersonItem struct {
	ItemID      string
	Name        string
	Cost        float64 // This person's share of the item
	Shares      int
	TotalShares int
	Uneven      bool // Weights differ from an equal split
}

// PersonItems lists the items a person shares, in bill order.
func PersonItems(bill models.BillState, personID string) []PersonItem {
	var out []PersonItem
	for _, item := range bill.Items {
		if !item.IsAssigned(personID) {
			continue
		}
		total := TotalShares(item)
		out = append(out, PersonItem{
			ItemID:      item.ID,
			Name:        item.Name,
			Cost:        ItemCost(item, personID),
			Shares:      WeightOf(item, personID),
			TotalShares: total,
			Uneven:      total != len(assignees(item)),
		})
	}
	return out
}
