package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairsplit/internal/models"
)

// dinner builds a bill where each listed person ordered one item at the given price.
func dinner(prices map[string]float64, order ...string) models.BillState {
	bill := models.BillState{TipType: models.TipAmount}
	for _, id := range order {
		bill.People = append(bill.People, models.Person{ID: id, Name: nameFor(id)})
		bill.Items = append(bill.Items, models.Item{
			ID:         "item-" + id,
			Name:       "Dish for " + id,
			Price:      prices[id],
			AssignedTo: []string{id},
		})
	}
	return bill
}

func nameFor(id string) string {
	switch id {
	case "a":
		return "Alice"
	case "b":
		return "Bob"
	case "c":
		return "Charlie"
	case "d":
		return "Diana"
	}
	return id
}

func sum(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

func TestComputeFinalSplitsNoCoverage(t *testing.T) {
	bill := models.BillState{
		Items: []models.Item{
			{Name: "Pizza", Price: 30, AssignedTo: []string{"a", "b", "c"}},
			{Name: "Wine", Price: 27.35, AssignedTo: []string{"a", "c"}, Shares: map[string]int{"c": 3}},
			{Name: "Fries", Price: 6.99, AssignedTo: []string{"b"}},
		},
		Tax:           5.17,
		TipType:       models.TipPercent,
		TipPercentage: 18,
		People: []models.Person{
			{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}, {ID: "c", Name: "Charlie"},
		},
	}

	s := ComputeFinalSplits(bill)
	totals := ComputeBillTotals(bill)

	// Conservation: grand total is counted exactly once across people.
	assert.InDelta(t, totals.GrandTotal, sum(s.RawTotals), 1e-9)
	assert.Equal(t, s.RawTotals, s.FinalTotals)
	assert.Empty(t, s.Notes)
	for _, p := range bill.People {
		assert.False(t, s.IsCovered(p.ID))
		assert.False(t, s.IsCoveringOthers(p.ID))
	}
}

func TestComputeFinalSplitsDirectCoverage(t *testing.T) {
	bill := dinner(map[string]float64{"a": 25, "b": 15}, "a", "b")
	bill.CoverAssignments = []models.CoverAssignment{
		{CoveredID: "a", Payer: models.PaidBy("b")},
	}

	s := ComputeFinalSplits(bill)

	assert.InDelta(t, 25.0, s.RawTotals["a"], 1e-9)
	assert.InDelta(t, 0.0, s.FinalTotals["a"], 1e-9)
	assert.InDelta(t, 40.0, s.FinalTotals["b"], 1e-9)
	assert.Equal(t, []string{"Covered by Bob"}, s.Notes["a"])
	assert.Equal(t, []string{"Covering Alice"}, s.Notes["b"])
	assert.True(t, s.IsCovered("a"))
	assert.True(t, s.IsCoveringOthers("b"))
	assert.InDelta(t, sum(s.RawTotals), sum(s.FinalTotals), 1e-9)
}

func TestComputeFinalSplitsGroupCoverage(t *testing.T) {
	bill := dinner(map[string]float64{"a": 10, "b": 20, "c": 30, "d": 40}, "a", "b", "c", "d")
	bill.CoverAssignments = []models.CoverAssignment{
		{CoveredID: "d", Payer: models.SplitAmongOthers()},
	}

	s := ComputeFinalSplits(bill)

	assert.InDelta(t, 0.0, s.FinalTotals["d"], 1e-9)
	assert.InDelta(t, 10+40.0/3, s.FinalTotals["a"], 1e-9)
	assert.InDelta(t, 20+40.0/3, s.FinalTotals["b"], 1e-9)
	assert.InDelta(t, 30+40.0/3, s.FinalTotals["c"], 1e-9)
	assert.Equal(t, []string{NoteCoveredByGroup}, s.Notes["d"])
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, []string{"Covering Diana (split)"}, s.Notes[id])
		assert.True(t, s.IsCoveringOthers(id))
	}
	assert.True(t, s.IsCovered("d"))
	assert.InDelta(t, 100.0, sum(s.FinalTotals), 1e-9)
}

func TestComputeFinalSplitsNoOpEntries(t *testing.T) {
	tests := []struct {
		name     string
		prices   map[string]float64
		people   []string
		coverage []models.CoverAssignment
	}{
		{
			name:     "unknown payer is ignored",
			prices:   map[string]float64{"a": 10, "b": 5},
			people:   []string{"a", "b"},
			coverage: []models.CoverAssignment{{CoveredID: "a", Payer: models.PaidBy("ghost")}},
		},
		{
			name:     "zero raw amount is not moved",
			prices:   map[string]float64{"a": 0, "b": 5},
			people:   []string{"a", "b"},
			coverage: []models.CoverAssignment{{CoveredID: "a", Payer: models.PaidBy("b")}},
		},
		{
			name:     "group split with nobody else",
			prices:   map[string]float64{"a": 10},
			people:   []string{"a"},
			coverage: []models.CoverAssignment{{CoveredID: "a", Payer: models.SplitAmongOthers()}},
		},
		{
			name:     "self-referential entry",
			prices:   map[string]float64{"a": 10, "b": 5},
			people:   []string{"a", "b"},
			coverage: []models.CoverAssignment{{CoveredID: "a", Payer: models.PaidBy("a")}},
		},
		{
			name:     "covered person not on the bill",
			prices:   map[string]float64{"a": 10, "b": 5},
			people:   []string{"a", "b"},
			coverage: []models.CoverAssignment{{CoveredID: "ghost", Payer: models.PaidBy("b")}},
		},
		{
			name:     "zero-value payer",
			prices:   map[string]float64{"a": 10, "b": 5},
			people:   []string{"a", "b"},
			coverage: []models.CoverAssignment{{CoveredID: "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := dinner(tt.prices, tt.people...)
			bill.CoverAssignments = tt.coverage

			s := ComputeFinalSplits(bill)

			assert.Equal(t, s.RawTotals, s.FinalTotals)
			assert.Empty(t, s.Notes)
		})
	}
}

func TestComputeFinalSplitsChainsDoNotCascade(t *testing.T) {
	// a is covered by b, b is covered by c. Only b's raw amount moves to c.
	bill := dinner(map[string]float64{"a": 10, "b": 20, "c": 30}, "a", "b", "c")
	bill.CoverAssignments = []models.CoverAssignment{
		{CoveredID: "a", Payer: models.PaidBy("b")},
		{CoveredID: "b", Payer: models.PaidBy("c")},
	}

	s := ComputeFinalSplits(bill)

	assert.InDelta(t, 0.0, s.FinalTotals["a"], 1e-9)
	assert.InDelta(t, 0.0, s.FinalTotals["b"], 1e-9)
	assert.InDelta(t, 50.0, s.FinalTotals["c"], 1e-9)
	assert.Equal(t, []string{"Covering Alice", "Covered by Charlie"}, s.Notes["b"])
	// b's final total is zeroed, including the 10 picked up for a.
	assert.InDelta(t, 50.0, sum(s.FinalTotals), 1e-9)

	// Reversed order: b's raw 20 still moves to c, and a's 10 lands on b after.
	bill.CoverAssignments = []models.CoverAssignment{
		{CoveredID: "b", Payer: models.PaidBy("c")},
		{CoveredID: "a", Payer: models.PaidBy("b")},
	}

	s = ComputeFinalSplits(bill)

	assert.InDelta(t, 0.0, s.FinalTotals["a"], 1e-9)
	assert.InDelta(t, 10.0, s.FinalTotals["b"], 1e-9)
	assert.InDelta(t, 50.0, s.FinalTotals["c"], 1e-9)
	assert.InDelta(t, 60.0, sum(s.FinalTotals), 1e-9)
}

func TestComputeFinalSplitsSingleEntryConservation(t *testing.T) {
	base := dinner(map[string]float64{"a": 12.34, "b": 56.78, "c": 9.1, "d": 0.99}, "a", "b", "c", "d")
	base.Tax = 6.5
	base.TipType = models.TipPercent
	base.TipPercentage = 22

	entries := []models.CoverAssignment{
		{CoveredID: "a", Payer: models.PaidBy("b")},
		{CoveredID: "b", Payer: models.SplitAmongOthers()},
		{CoveredID: "c", Payer: models.PaidBy("d")},
		{CoveredID: "d", Payer: models.SplitAmongOthers()},
	}
	for _, entry := range entries {
		t.Run(entry.CoveredID+" by "+entry.Payer.String(), func(t *testing.T) {
			bill := base.Clone()
			bill.CoverAssignments = []models.CoverAssignment{entry}

			s := ComputeFinalSplits(bill)

			assert.InDelta(t, sum(s.RawTotals), sum(s.FinalTotals), 1e-9)
			assert.True(t, s.IsCovered(entry.CoveredID))
		})
	}
}

func TestComputeFinalSplitsIsDeterministic(t *testing.T) {
	bill := dinner(map[string]float64{"a": 10.01, "b": 20.02, "c": 30.03, "d": 40.04}, "a", "b", "c", "d")
	bill.Tax = 7.77
	bill.TipType = models.TipPercent
	bill.TipPercentage = 17.5
	bill.CoverAssignments = []models.CoverAssignment{
		{CoveredID: "d", Payer: models.SplitAmongOthers()},
		{CoveredID: "a", Payer: models.PaidBy("c")},
	}
	snapshot := bill.Clone()

	first := ComputeFinalSplits(bill)
	second := ComputeFinalSplits(bill)

	require.Equal(t, first, second)
	assert.Equal(t, snapshot, bill, "settlement must not mutate its input")
}

func TestCoveredNameFallsBackToSomeone(t *testing.T) {
	bill := dinner(map[string]float64{"a": 10}, "a")

	assert.Equal(t, "Alice", nameOf(bill, "a"))
	assert.Equal(t, "Someone", nameOf(bill, "ghost"))

	bill.People[0].Name = ""
	bill.CoverAssignments = []models.CoverAssignment{{CoveredID: "a", Payer: models.SplitAmongOthers()}}
	bill.People = append(bill.People, models.Person{ID: "b", Name: "Bob"})
	s := ComputeFinalSplits(bill)
	assert.Equal(t, []string{"Covering Someone (split)"}, s.Notes["b"])
}
