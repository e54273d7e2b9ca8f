// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/fairsplit/internal/models"
)

// ErrUserNotFound is returned by UserStore lookups that match nothing.
var ErrUserNotFound = errors.New("user not found")

// HistoryStore loads and saves a user's bill history as a whole.
// Records are kept in the order given to Save (newest first by convention).
// The settlement engine never reads or writes this store.
type HistoryStore interface {
	// Load returns the owner's records. An owner with no history gets an empty slice.
	Load(ctx context.Context, ownerID string) ([]models.BillRecord, error)

	// Save replaces the owner's records with the given sequence.
	Save(ctx context.Context, ownerID string, records []models.BillRecord) error
}

// UserStore defines user persistence for authentication.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns ErrUserNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns ErrUserNotFound when no user has the ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store combines all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	HistoryStore
	UserStore

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
