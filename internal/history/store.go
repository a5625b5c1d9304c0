// Package history keeps a local record of donations made from this machine,
// so the CLI can show past contributions without an API round-trip. It is a
// display cache only; the backend owns the authoritative records.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS donation_history (
	reference     TEXT PRIMARY KEY,
	donation_id   TEXT NOT NULL,
	campaign_slug TEXT NOT NULL,
	amount        INTEGER NOT NULL,
	method        TEXT NOT NULL,
	self_reported INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL
);
`

// Entry is one locally recorded donation.
type Entry struct {
	Reference    string    `db:"reference"`
	DonationID   string    `db:"donation_id"`
	CampaignSlug string    `db:"campaign_slug"`
	Amount       int64     `db:"amount"`
	Method       string    `db:"method"`
	SelfReported bool      `db:"self_reported"`
	CreatedAt    time.Time `db:"created_at"`
}

// Store is a SQLite-backed donation history.
type Store struct {
	db *sqlx.DB
}

// Open creates the database file (and parent directory) if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores a submitted donation.
func (s *Store) Record(e Entry) error {
	const q = `
		INSERT INTO donation_history (
			reference, donation_id, campaign_slug, amount, method, self_reported, created_at
		) VALUES (
			:reference, :donation_id, :campaign_slug, :amount, :method, :self_reported, :created_at
		)
		ON CONFLICT(reference) DO NOTHING
	`
	if _, err := s.db.NamedExec(q, e); err != nil {
		return fmt.Errorf("record donation: %w", err)
	}
	return nil
}

// MarkSelfReported flags an entry once the user asserted the transfer was
// made. Self-reported, not settled.
func (s *Store) MarkSelfReported(reference string) error {
	const q = `UPDATE donation_history SET self_reported = 1 WHERE reference = ?`
	if _, err := s.db.Exec(q, reference); err != nil {
		return fmt.Errorf("mark self reported: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	const q = `
		SELECT reference, donation_id, campaign_slug, amount, method, self_reported, created_at
		FROM donation_history
		ORDER BY created_at DESC
		LIMIT ?
	`
	var entries []Entry
	if err := s.db.Select(&entries, q, limit); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
