// Package history keeps each user's recent bills as BillRecord snapshots.
//
// Saving a draft again replaces it in place; a new bill goes to the top of the
// list and the oldest records fall off once the limit is reached. Finalized
// bills are frozen and cannot be saved again.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fairsplit/internal/calculator"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/storage"
)

// DefaultLimit is how many records a history keeps.
const DefaultLimit = 5

var (
	ErrNotFound      = errors.New("bill not found")
	ErrFinalized     = errors.New("bill is finalized")
	ErrEmptyBill     = errors.New("bill has no items")
	ErrInvalidStatus = errors.New("invalid bill status")
)

// Manager applies history rules on top of a storage.HistoryStore.
type Manager struct {
	store storage.HistoryStore
	limit int
	now   func() time.Time

	// mu serializes load-modify-save cycles.
	mu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit sets how many records are kept per owner.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithClock overrides the time source used to date records.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager backed by store.
func NewManager(store storage.HistoryStore, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List returns the owner's records, newest first.
func (m *Manager) List(ctx context.Context, ownerID string) ([]models.BillRecord, error) {
	return m.store.Load(ctx, ownerID)
}

// Get returns one record.
func (m *Manager) Get(ctx context.Context, ownerID, billID string) (*models.BillRecord, error) {
	records, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == billID {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, billID)
}

// Save snapshots state under billID with the given status and returns the
// stored record. An empty billID creates a new record.
func (m *Manager) Save(ctx context.Context, ownerID, billID string, status models.BillStatus, state models.BillState) (*models.BillRecord, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if len(state.Items) == 0 {
		return nil, ErrEmptyBill
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	existing := -1
	if billID != "" {
		for i, r := range records {
			if r.ID == billID {
				existing = i
				break
			}
		}
	}
	if existing >= 0 && records[existing].IsFinalized() {
		return nil, fmt.Errorf("%w: %s", ErrFinalized, billID)
	}
	if billID == "" {
		billID = "bill-" + uuid.New().String()
	}

	now := m.now()
	record := models.BillRecord{
		ID:     billID,
		Title:  generateTitle(state.People, now),
		Date:   now,
		Status: status,
		Total:  calculator.ComputeBillTotals(state).GrandTotal,
		State:  state.Clone(),
	}

	if existing >= 0 {
		records[existing] = record
	} else {
		records = append([]models.BillRecord{record}, records...)
		if len(records) > m.limit {
			records = records[:m.limit]
		}
	}

	if err := m.store.Save(ctx, ownerID, records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a record from the owner's history.
func (m *Manager) Delete(ctx context.Context, ownerID, billID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := make([]models.BillRecord, 0, len(records))
	for _, r := range records {
		if r.ID != billID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%w: %s", ErrNotFound, billID)
	}
	return m.store.Save(ctx, ownerID, kept)
}

// generateTitle creates an auto-generated title from the people on a bill.
func generateTitle(people []models.Person, now time.Time) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		if name := strings.TrimSpace(p.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Bill - %s", now.Format("Jan 2, 2006"))
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
