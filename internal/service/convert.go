package service

import (
	"maps"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/pkg/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BillFromAPI converts a wire bill. A nil bill is empty.
func BillFromAPI(b *api.Bill) models.BillState {
	if b == nil {
		return models.BillState{}
	}
	bill := models.BillState{
		Tax:            b.Tax,
		TipAmount:      b.TipAmount,
		TipPercentage:  b.TipPercentage,
		TipType:        models.TipType(b.TipType),
		TipFromReceipt: b.TipFromReceipt,
		Currency:       b.Currency,
	}
	if bill.TipType == "" {
		bill.TipType = models.TipPercent
	}
	for _, it := range b.Items {
		bill.Items = append(bill.Items, models.Item{
			ID:         it.ID,
			Name:       it.Name,
			Price:      it.Price,
			AssignedTo: append([]string(nil), it.AssignedTo...),
			Shares:     maps.Clone(it.Shares),
		})
	}
	for _, p := range b.People {
		bill.People = append(bill.People, models.Person{ID: p.ID, Name: p.Name, Color: p.Color})
	}
	for _, c := range b.Coverage {
		payer := models.PaidBy(c.PayerID)
		if c.SplitAll {
			payer = models.SplitAmongOthers()
		}
		bill.CoverAssignments = append(bill.CoverAssignments, models.CoverAssignment{
			CoveredID: c.CoveredID,
			Payer:     payer,
		})
	}
	return bill
}

// BillToAPI converts a bill to its wire form.
func BillToAPI(bill models.BillState) *api.Bill {
	b := &api.Bill{
		Items:          make([]api.Item, 0, len(bill.Items)),
		Tax:            bill.Tax,
		TipAmount:      bill.TipAmount,
		TipPercentage:  bill.TipPercentage,
		TipType:        string(bill.TipType),
		TipFromReceipt: bill.TipFromReceipt,
		People:         make([]api.Person, 0, len(bill.People)),
		Currency:       bill.Currency,
	}
	for _, it := range bill.Items {
		item := api.Item{
			ID:         it.ID,
			Name:       it.Name,
			Price:      it.Price,
			AssignedTo: append([]string(nil), it.AssignedTo...),
		}
		if len(it.Shares) > 0 {
			item.Shares = maps.Clone(it.Shares)
		}
		b.Items = append(b.Items, item)
	}
	for _, p := range bill.People {
		b.People = append(b.People, api.Person{ID: p.ID, Name: p.Name, Color: p.Color})
	}
	for _, ca := range bill.CoverAssignments {
		c := api.Coverage{CoveredID: ca.CoveredID, SplitAll: ca.Payer.IsSplitAmongOthers()}
		if id, ok := ca.Payer.PersonID(); ok {
			c.PayerID = id
		}
		b.Coverage = append(b.Coverage, c)
	}
	return b
}

// splitsToAPI lists every person on the bill in table order.
func splitsToAPI(bill models.BillState, s calculator.Settlement) []api.PersonSplit {
	splits := make([]api.PersonSplit, 0, len(bill.People))
	for _, p := range bill.People {
		splits = append(splits, api.PersonSplit{
			PersonID:       p.ID,
			Name:           p.Name,
			RawTotal:       s.RawTotals[p.ID],
			FinalTotal:     s.FinalTotals[p.ID],
			Notes:          s.Notes[p.ID],
			Covered:        s.IsCovered(p.ID),
			CoveringOthers: s.IsCoveringOthers(p.ID),
		})
	}
	return splits
}

func totalsToAPI(t calculator.BillTotals) api.BillTotals {
	return api.BillTotals{
		Subtotal:   t.Subtotal,
		Tax:        t.Tax,
		Tip:        t.Tip,
		GrandTotal: t.GrandTotal,
	}
}

// coverageKinds counts the bill's coverage entries by payer kind.
func coverageKinds(bill models.BillState) (direct, group int) {
	for _, ca := range bill.CoverAssignments {
		if ca.Payer.IsSplitAmongOthers() {
			group++
		} else {
			direct++
		}
	}
	return direct, group
}

func summaryToAPI(r models.BillRecord) *api.BillSummary {
	return &api.BillSummary{
		ID:     r.ID,
		Title:  r.Title,
		Date:   timestamppb.New(r.Date),
		Status: string(r.Status),
		Total:  r.Total,
	}
}

func recordToAPI(r models.BillRecord) *api.BillRecord {
	return &api.BillRecord{
		BillSummary: *summaryToAPI(r),
		Bill:        BillToAPI(r.State),
	}
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   timestamppb.New(time.Unix(u.CreatedAt, 0)),
	}
}
