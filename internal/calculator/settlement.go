package calculator

import (
	"fmt"

	"github.com/mmynk/fairsplit/internal/models"
)

// NoteCoveredByGroup is attached to a person whose share the group absorbs.
const NoteCoveredByGroup = "Covered by group"

const unknownPersonName = "Someone"

// Settlement is the result of settling a bill.
type Settlement struct {
	// RawTotals is what each person owes from items, tax and tip alone.
	RawTotals map[string]float64

	// FinalTotals is what each person pays after coverage rules.
	FinalTotals map[string]float64

	// Notes explains every change between raw and final, in rule order.
	// People untouched by coverage have no entry.
	Notes map[string][]string
}

// IsCovered reports whether someone else pays this person's share.
func (s Settlement) IsCovered(personID string) bool {
	return s.FinalTotals[personID] == 0 && s.RawTotals[personID] > 0
}

// IsCoveringOthers reports whether this person pays more than their own share.
func (s Settlement) IsCoveringOthers(personID string) bool {
	return s.FinalTotals[personID] > s.RawTotals[personID]
}

// ComputeFinalSplits settles a bill: raw totals per person, then coverage
// rules applied in order.
//
// Algorithm:
// - Raw total per person from ComputePersonTotals
// - For each coverage rule, the covered person's RAW total moves to the payer
//   (or is spread evenly over everyone else) and the covered person pays 0
// - Amounts never cascade: money received by covering someone is not passed
//   on when the payer is covered by a later rule
// - Rules with a non-positive amount, an unknown payer, or a self-referential
//   payer have no effect
func ComputeFinalSplits(bill models.BillState) Settlement {
	raw := make(map[string]float64, len(bill.People))
	for _, p := range bill.People {
		raw[p.ID] = ComputePersonTotals(p.ID, bill).Total
	}

	final := make(map[string]float64, len(raw))
	for id, amount := range raw {
		final[id] = amount
	}
	notes := make(map[string][]string)

	for _, ca := range bill.CoverAssignments {
		amount := raw[ca.CoveredID]
		if amount <= 0 {
			continue
		}
		coveredName := nameOf(bill, ca.CoveredID)

		if ca.Payer.IsSplitAmongOthers() {
			others := othersThan(bill.People, ca.CoveredID)
			if len(others) == 0 {
				continue
			}
			share := amount / float64(len(others))

			final[ca.CoveredID] = 0
			notes[ca.CoveredID] = append(notes[ca.CoveredID], NoteCoveredByGroup)
			for _, p := range others {
				final[p.ID] += share
				notes[p.ID] = append(notes[p.ID], fmt.Sprintf("Covering %s (split)", coveredName))
			}
			continue
		}

		payerID, ok := ca.Payer.PersonID()
		if !ok || payerID == ca.CoveredID {
			continue
		}
		payer, ok := bill.FindPerson(payerID)
		if !ok {
			continue
		}

		final[ca.CoveredID] = 0
		notes[ca.CoveredID] = append(notes[ca.CoveredID], "Covered by "+payer.Name)
		final[payerID] += amount
		notes[payerID] = append(notes[payerID], "Covering "+coveredName)
	}

	return Settlement{
		RawTotals:   raw,
		FinalTotals: final,
		Notes:       notes,
	}
}

func othersThan(people []models.Person, id string) []models.Person {
	others := make([]models.Person, 0, len(people))
	for _, p := range people {
		if p.ID != id {
			others = append(others, p)
		}
	}
	return others
}

// nameOf returns the person's display name, or "Someone" when it is unknown or blank.
func nameOf(bill models.BillState, personID string) string {
	if p, ok := bill.FindPerson(personID); ok && p.Name != "" {
		return p.Name
	}
	return unknownPersonName
}
