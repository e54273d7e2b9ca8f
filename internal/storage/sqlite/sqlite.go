// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Ping checks the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load retrieves an owner's bill history in saved order.
func (s *SQLiteStore) Load(ctx context.Context, ownerID string) ([]models.BillRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, saved_at, status, total, state
		 FROM bill_records WHERE owner_id = ? ORDER BY position`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill history: %w", err)
	}
	defer rows.Close()

	records := []models.BillRecord{}
	for rows.Next() {
		var (
			record  models.BillRecord
			savedAt string
			status  string
			state   string
		)
		if err := rows.Scan(&record.ID, &record.Title, &savedAt, &status, &record.Total, &state); err != nil {
			return nil, fmt.Errorf("failed to scan bill record: %w", err)
		}

		record.Status = models.BillStatus(status)
		record.Date, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date of bill %s: %w", record.ID, err)
		}
		if err := json.Unmarshal([]byte(state), &record.State); err != nil {
			return nil, fmt.Errorf("failed to decode state of bill %s: %w", record.ID, err)
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill records: %w", err)
	}

	return records, nil
}

// Save replaces an owner's bill history in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, ownerID string, records []models.BillRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bill_records WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("failed to clear bill history: %w", err)
	}

	for i, record := range records {
		state, err := json.Marshal(record.State)
		if err != nil {
			return fmt.Errorf("failed to encode state of bill %s: %w", record.ID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO bill_records (owner_id, id, position, title, saved_at, status, total, state)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ownerID, record.ID, i, record.Title, record.Date.UTC().Format(time.RFC3339Nano),
			string(record.Status), record.Total, string(state),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
