package calculator

import "github.com/mmynk/fairsplit/internal/models"

// PersonTotals is one person's raw breakdown before coverage.
type PersonTotals struct {
	Subtotal float64
	Tax      float64
	Tip      float64
	Total    float64
}

// BillTotals are the bill-wide amounts.
type BillTotals struct {
	Subtotal   float64
	Tax        float64
	Tip        float64
	GrandTotal float64
}

// FinalTip resolves the bill's tip from its tip type.
func FinalTip(bill models.BillState) float64 {
	if bill.TipType == models.TipPercent {
		return bill.Subtotal() * (bill.TipPercentage / 100)
	}
	return bill.TipAmount
}

// ComputeBillTotals returns subtotal, tax, tip and grand total for the bill.
func ComputeBillTotals(bill models.BillState) BillTotals {
	subtotal := bill.Subtotal()
	tip := FinalTip(bill)
	return BillTotals{
		Subtotal:   subtotal,
		Tax:        bill.Tax,
		Tip:        tip,
		GrandTotal: subtotal + bill.Tax + tip,
	}
}

// ComputePersonTotals computes how much a person owes from items, tax and tip.
// Tax and tip are prorated by the person's share of the bill subtotal:
//
//	ratio = my_item_total / bill_subtotal   (0 when the subtotal is 0)
//	tax   = bill_tax × ratio
//	tip   = final_tip × ratio
func ComputePersonTotals(personID string, bill models.BillState) PersonTotals {
	var myItemTotal float64
	for _, item := range bill.Items {
		myItemTotal += ItemCost(item, personID)
	}

	subtotal := bill.Subtotal()
	ratio := 0.0
	if subtotal > 0 {
		ratio = myItemTotal / subtotal
	}
	myTax := bill.Tax * ratio
	myTip := FinalTip(bill) * ratio

	return PersonTotals{
		Subtotal: myItemTotal,
		Tax:      myTax,
		Tip:      myTip,
		Total:    myItemTotal + myTax + myTip,
	}
}
