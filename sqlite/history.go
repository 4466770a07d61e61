package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/marketway"
)

// Compile-time interface verification.
var _ marketway.HistoryService = (*HistoryService)(nil)

// HistoryService implements marketway.HistoryService using SQLite.
// The market has a single history document.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// FindHistory returns the stored history, or an empty string if none.
func (s *HistoryService) FindHistory(ctx context.Context) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, "SELECT content FROM history WHERE id = 1").Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// SetHistory replaces the stored history.
func (s *HistoryService) SetHistory(ctx context.Context, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, content, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`, text, time.Now().UTC().Format(time.RFC3339))
	return err
}
