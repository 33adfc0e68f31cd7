// Package history persists the session transcript: one row per dispatched
// command, so "what did I ask earlier" style debugging and the status API
// have something to read.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Interaction is one handled utterance and what the assistant said back
type Interaction struct {
	ID        string    `json:"id"`
	HeardAt   time.Time `json:"heardAt"`
	Utterance string    `json:"utterance"`
	Intent    string    `json:"intent"`
	Response  string    `json:"response"`
}

// Store wraps the SQLite connection holding the interaction log
type Store struct {
	db *sql.DB
}

// New opens (or creates) the history database at path
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// modernc sqlite is single-writer; keep the pool tiny
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		return nil, err
	}

	log.Printf("✅ History database ready at %s", path)
	return store, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS interactions (
			id TEXT PRIMARY KEY,
			heard_at TIMESTAMP NOT NULL,
			utterance TEXT NOT NULL,
			intent TEXT NOT NULL,
			response TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to create interactions table: %w", err)
	}
	return nil
}

// Append records one interaction
func (s *Store) Append(ctx context.Context, utterance, intent, response string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (id, heard_at, utterance, intent, response) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), time.Now().UTC(), utterance, intent, response)
	if err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// Recent returns up to limit interactions, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Interaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, heard_at, utterance, intent, response FROM interactions ORDER BY heard_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var it Interaction
		if err := rows.Scan(&it.ID, &it.HeardAt, &it.Utterance, &it.Intent, &it.Response); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes interactions recorded before the cutoff and returns
// how many rows went away. Used by the retention job.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM interactions WHERE heard_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune interactions: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
