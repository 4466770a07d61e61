package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ marketway.LineService = (*LineService)(nil)

// LineService implements marketway.LineService using SQLite.
type LineService struct {
	db *DB
}

// NewLineService creates a new LineService.
func NewLineService(db *DB) *LineService {
	return &LineService{db: db}
}

// CreateLine stores a new line with its items.
func (s *LineService) CreateLine(ctx context.Context, line *marketway.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var taken string
	err = tx.QueryRowContext(ctx, `
		SELECT name FROM lines WHERE name_key = ? OR (side = ? AND position = ?)
	`, nameKey(line.Name), string(line.Layout.Column), line.Layout.Order).Scan(&taken)
	switch {
	case err == nil:
		if nameKey(taken) == nameKey(line.Name) {
			return marketway.Errorf(marketway.ECONFLICT, "line %q already exists", line.Name)
		}
		return marketway.Errorf(marketway.ECONFLICT, "%s column position %d is taken by %q",
			line.Layout.Column, line.Layout.Order, taken)
	case err != sql.ErrNoRows:
		return err
	}

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO lines (id, name, name_key, side, position)
		VALUES (?, ?, ?, ?, ?)
	`, id, strings.TrimSpace(line.Name), nameKey(line.Name), string(line.Layout.Column), line.Layout.Order); err != nil {
		return err
	}

	for i, item := range line.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (line_id, position, name) VALUES (?, ?, ?)
		`, id, i, item); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindLineByName retrieves a line by case-insensitive name.
func (s *LineService) FindLineByName(ctx context.Context, name string) (*marketway.Line, error) {
	lines, err := s.FindLines(ctx, marketway.LineFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, marketway.Errorf(marketway.ENOTFOUND, "line %q not found", name)
	}
	return lines[0], nil
}

// FindLines retrieves lines matching the filter, ordered by column and order.
func (s *LineService) FindLines(ctx context.Context, filter marketway.LineFilter) ([]*marketway.Line, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, side, position FROM lines WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name_key = ?")
		args = append(args, nameKey(*filter.Name))
	}
	if filter.Column != nil {
		query.WriteString(" AND side = ?")
		args = append(args, string(*filter.Column))
	}

	query.WriteString(" ORDER BY side ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	byID := make(map[string]*marketway.Line)
	lines := []*marketway.Line{}
	for rows.Next() {
		var id, side string
		line := &marketway.Line{Items: []string{}}
		if err := rows.Scan(&id, &line.Name, &side, &line.Layout.Order); err != nil {
			return nil, err
		}
		line.Layout.Column = marketway.Column(side)
		ids = append(ids, id)
		byID[id] = line
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, ids, byID); err != nil {
		return nil, err
	}
	return lines, nil
}

// attachItems loads items for the given line IDs in stored order.
func (s *LineService) attachItems(ctx context.Context, ids []string, byID map[string]*marketway.Line) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT line_id, name FROM items WHERE line_id IN (%s) ORDER BY line_id, position
	`, placeholders), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, item string
		if err := rows.Scan(&id, &item); err != nil {
			return err
		}
		byID[id].Items = append(byID[id].Items, item)
	}
	return rows.Err()
}

// DeleteLine permanently removes a line and its items.
func (s *LineService) DeleteLine(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM lines WHERE name_key = ?", nameKey(name))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return marketway.Errorf(marketway.ENOTFOUND, "line %q not found", name)
	}

	return nil
}
