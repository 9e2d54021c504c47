// Package sqlite implements storage.EntryStore on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scrypster/inkwell/internal/storage"
	"github.com/scrypster/inkwell/pkg/types"
)

// schema creates the entries table. position preserves collection order
// (0 = most recent) across the whole-collection replace writes.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
	position            INTEGER PRIMARY KEY,
	id                  TEXT NOT NULL UNIQUE,
	text                TEXT NOT NULL,
	created_at          TEXT NOT NULL,
	sentiment           TEXT NOT NULL,
	themes              TEXT NOT NULL DEFAULT '[]',
	word_count          INTEGER NOT NULL DEFAULT 0,
	suggestions         TEXT NOT NULL DEFAULT '[]',
	insight_note        TEXT NOT NULL DEFAULT '',
	emotional_intensity INTEGER NOT NULL DEFAULT 0,
	key_topics          TEXT NOT NULL DEFAULT '[]',
	fallback_used       INTEGER NOT NULL DEFAULT 0
);
`

// EntryStore implements storage.EntryStore using SQLite.
type EntryStore struct {
	db *sql.DB
}

// NewEntryStore opens (or creates) the journal database at dsn and ensures
// the schema exists.
func NewEntryStore(dsn string) (*EntryStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors under concurrent load.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// WAL mode lets readers proceed without blocking the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &EntryStore{db: db}, nil
}

// LoadAll returns the full entry collection in stored order.
func (s *EntryStore) LoadAll(ctx context.Context) ([]types.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, created_at, sentiment, themes, word_count,
		       suggestions, insight_note, emotional_intensity, key_topics, fallback_used
		FROM entries
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []types.Entry{}
	for rows.Next() {
		var (
			entry        types.Entry
			createdAt    string
			themesJSON   string
			suggJSON     string
			topicsJSON   string
			fallbackUsed int
		)
		if err := rows.Scan(
			&entry.ID, &entry.Text, &createdAt, &entry.Sentiment, &themesJSON,
			&entry.WordCount, &suggJSON, &entry.InsightNote,
			&entry.EmotionalIntensity, &topicsJSON, &fallbackUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for entry %s: %w", entry.ID, err)
		}
		if err := decodeStrings(themesJSON, &entry.Themes); err != nil {
			return nil, fmt.Errorf("failed to decode themes for entry %s: %w", entry.ID, err)
		}
		if err := decodeStrings(suggJSON, &entry.Suggestions); err != nil {
			return nil, fmt.Errorf("failed to decode suggestions for entry %s: %w", entry.ID, err)
		}
		if err := decodeStrings(topicsJSON, &entry.KeyTopics); err != nil {
			return nil, fmt.Errorf("failed to decode key topics for entry %s: %w", entry.ID, err)
		}
		entry.FallbackUsed = fallbackUsed != 0

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// ReplaceAll atomically replaces the stored collection with entries.
func (s *EntryStore) ReplaceAll(ctx context.Context, entries []types.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (position, id, text, created_at, sentiment, themes,
		                     word_count, suggestions, insight_note,
		                     emotional_intensity, key_topics, fallback_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		fallbackUsed := 0
		if entry.FallbackUsed {
			fallbackUsed = 1
		}
		_, err := stmt.ExecContext(ctx,
			i, entry.ID, entry.Text, entry.CreatedAt.Format(time.RFC3339Nano),
			string(entry.Sentiment), encodeStrings(entry.Themes),
			entry.WordCount, encodeStrings(entry.Suggestions), entry.InsightNote,
			entry.EmotionalIntensity, encodeStrings(entry.KeyTopics), fallbackUsed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *EntryStore) Close() error {
	return s.db.Close()
}

// encodeStrings marshals a string slice to a JSON array, treating nil as empty.
func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeStrings unmarshals a JSON array column into dst.
func decodeStrings(raw string, dst *[]string) error {
	if raw == "" {
		*dst = nil
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return err
	}
	if len(values) == 0 {
		values = nil
	}
	*dst = values
	return nil
}

// Compile-time assertion that EntryStore satisfies storage.EntryStore.
var _ storage.EntryStore = (*EntryStore)(nil)
