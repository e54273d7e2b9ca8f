package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/storage/sqlite"
)

var fixedNow = time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

func setupManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewManager(store, opts...)
}

func billWith(price float64, names ...string) models.BillState {
	bill := models.BillState{
		Items:         []models.Item{{ID: "i1", Name: "Dinner", Price: price}},
		Tax:           2,
		TipType:       models.TipPercent,
		TipPercentage: 10,
	}
	for i, name := range names {
		bill.People = append(bill.People, models.Person{ID: fmt.Sprintf("p%d", i), Name: name})
	}
	return bill
}

func TestSaveCreatesDraft(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	record, err := m.Save(ctx, "owner", "", models.StatusDraft, billWith(20, "Alice", "Bob"))
	require.NoError(t, err)

	assert.Regexp(t, `^bill-[0-9a-f-]{36}$`, record.ID)
	assert.Equal(t, "Split with Alice, Bob", record.Title)
	assert.Equal(t, models.StatusDraft, record.Status)
	assert.True(t, fixedNow.Equal(record.Date))
	// 20 + 2 tax + 10% tip
	assert.InDelta(t, 24.0, record.Total, 1e-9)

	got, err := m.Get(ctx, "owner", record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Total, got.Total)
}

func TestSaveUpsertsInPlace(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	first, err := m.Save(ctx, "owner", "", models.StatusDraft, billWith(10, "A"))
	require.NoError(t, err)
	_, err = m.Save(ctx, "owner", "", models.StatusDraft, billWith(20, "B"))
	require.NoError(t, err)

	_, err = m.Save(ctx, "owner", first.ID, models.StatusDraft, billWith(15, "A"))
	require.NoError(t, err)

	records, err := m.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[1].ID, "re-saved draft keeps its position")
	assert.InDelta(t, 15.0, records[1].State.Subtotal(), 1e-9)
}

func TestSaveCapsHistory(t *testing.T) {
	m := setupManager(t, WithLimit(3))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		r, err := m.Save(ctx, "owner", "", models.StatusDraft, billWith(float64(i+1), "A"))
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	records, err := m.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{ids[4], ids[3], ids[2]}, []string{records[0].ID, records[1].ID, records[2].ID})
}

func TestFinalizedBillsAreFrozen(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	draft, err := m.Save(ctx, "owner", "", models.StatusDraft, billWith(10, "A"))
	require.NoError(t, err)
	_, err = m.Save(ctx, "owner", draft.ID, models.StatusFinalized, billWith(12, "A"))
	require.NoError(t, err)

	_, err = m.Save(ctx, "owner", draft.ID, models.StatusDraft, billWith(99, "A"))
	assert.ErrorIs(t, err, ErrFinalized)

	got, err := m.Get(ctx, "owner", draft.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFinalized())
	assert.InDelta(t, 12.0, got.State.Subtotal(), 1e-9)
}

func TestSaveRejectsBadInput(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	_, err := m.Save(ctx, "owner", "", models.StatusDraft, models.BillState{})
	assert.ErrorIs(t, err, ErrEmptyBill)

	_, err = m.Save(ctx, "owner", "", "archived", billWith(1, "A"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDelete(t *testing.T) {
	m := setupManager(t)
	ctx := context.Background()

	r, err := m.Save(ctx, "owner", "", models.StatusDraft, billWith(10, "A"))
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "owner", r.ID))
	_, err = m.Get(ctx, "owner", r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "owner", r.ID), ErrNotFound)
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "Bill - Oct 18, 2026"},
		{[]string{"Alice"}, "Split with Alice"},
		{[]string{"Alice", "Bob"}, "Split with Alice, Bob"},
		{[]string{"Alice", "Bob", "Charlie"}, "Split with Alice, Bob, Charlie"},
		{[]string{"Alice", "Bob", "Charlie", "Diana"}, "Split with Alice, Bob and 2 others"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var people []models.Person
			for _, n := range tt.names {
				people = append(people, models.Person{Name: n})
			}
			assert.Equal(t, tt.want, generateTitle(people, fixedNow))
		})
	}
}
