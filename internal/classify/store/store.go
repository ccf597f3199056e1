package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/spendtrack/internal/classify"
)

// Store reads the reference table from Postgres. Position preserves the
// table order the classifier's tie-break depends on.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListEntries(ctx context.Context) ([]classify.Entry, error) {
	query := `
		SELECT description, category
		FROM reference_entries
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reference entries: %w", err)
	}
	defer rows.Close()

	var entries []classify.Entry

	for rows.Next() {
		var e classify.Entry
		if err := rows.Scan(&e.Description, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning reference entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing reference entries: %w", err)
	}

	return entries, nil
}

// CreateEntry appends an entry at the end of the table.
func (s *Store) CreateEntry(ctx context.Context, e classify.Entry) error {
	query := `
		INSERT INTO reference_entries (description, category, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM reference_entries))
	`

	if _, err := s.db.ExecContext(ctx, query, e.Description, e.Category); err != nil {
		return fmt.Errorf("creating reference entry: %w", err)
	}

	return nil
}
