package marketway

import (
	"context"
	"strings"
)

// Column identifies which side of the entrance axis a line stands on.
type Column string

// Column constants for Layout.
const (
	ColumnLeft  Column = "left"
	ColumnRight Column = "right"
)

// Valid reports whether c is a known column.
func (c Column) Valid() bool {
	return c == ColumnLeft || c == ColumnRight
}

// Layout locates a line relative to the market entrance.
type Layout struct {
	Column Column `json:"column" yaml:"column"`
	Order  int    `json:"order" yaml:"order"` // 1-based, unique within a column
}

// Line represents one sales location in the market.
type Line struct {
	Name   string   `json:"name" yaml:"name"`
	Items  []string `json:"items" yaml:"items"`
	Layout Layout   `json:"layout" yaml:"layout"`
}

// Validate returns an error if the line contains invalid fields.
func (l *Line) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return Errorf(EINVALID, "line name required")
	}
	if !l.Layout.Column.Valid() {
		return Errorf(EINVALID, "line %q has unknown column %q", l.Name, l.Layout.Column)
	}
	if l.Layout.Order < 1 {
		return Errorf(EINVALID, "line %q order must be positive", l.Name)
	}
	return nil
}

// Clone returns a deep copy of the line.
func (l *Line) Clone() *Line {
	other := *l
	other.Items = append([]string(nil), l.Items...)
	return &other
}

// LineService represents a service for managing stored lines.
type LineService interface {
	// CreateLine stores a new line.
	// Returns ECONFLICT if the name or column position is already taken.
	CreateLine(ctx context.Context, line *Line) error

	// FindLineByName retrieves a line by case-insensitive name.
	// Returns ENOTFOUND if the line does not exist.
	FindLineByName(ctx context.Context, name string) (*Line, error)

	// FindLines retrieves lines matching the filter, ordered by column and order.
	FindLines(ctx context.Context, filter LineFilter) ([]*Line, error)

	// DeleteLine permanently removes a line and its items.
	// Returns ENOTFOUND if the line does not exist.
	DeleteLine(ctx context.Context, name string) error
}

// LineFilter represents a filter for FindLines.
type LineFilter struct {
	Name   *string `json:"name"`
	Column *Column `json:"column"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// HistoryService stores the market history text.
type HistoryService interface {
	// FindHistory returns the stored history, or an empty string if none.
	FindHistory(ctx context.Context) (string, error)

	// SetHistory replaces the stored history.
	SetHistory(ctx context.Context, text string) error
}
