package marketway

import (
	"context"
	"strconv"
	"strings"
)

// Position identifies where the asker currently stands. Entrance is the
// default; any other value names the line the asker is standing at.
type Position string

// Entrance is the market entrance, the anchor for all directions.
const Entrance Position = "entrance"

// IsEntrance reports whether p denotes the entrance. The zero value does.
func (p Position) IsEntrance() bool {
	s := strings.TrimSpace(string(p))
	return s == "" || strings.EqualFold(s, string(Entrance))
}

// Route describes how to walk from a position to a line.
type Route struct {
	Line       string   `json:"line_name"`
	From       Position `json:"from"`
	Layout     Layout   `json:"layout"`
	Distance   float64  `json:"distance"`
	Steps      []string `json:"steps"`
	Directions string   `json:"directions"`
}

// DistanceModel computes a walking distance between two lines.
// A nil from means the market entrance.
type DistanceModel interface {
	Distance(from, to *Line) float64
}

// Navigator computes routes to lines in the current catalog.
type Navigator interface {
	// Navigate returns the route from current to the named line.
	// Returns ENOTFOUND if the line does not exist.
	Navigate(ctx context.Context, current Position, lineName string) (*Route, error)
}

// Ordinal renders a 1-based position the way directions speak it:
// FIRST, SECOND, THIRD, then "4th", "5th", ...
func Ordinal(n int) string {
	switch n {
	case 1:
		return "FIRST"
	case 2:
		return "SECOND"
	case 3:
		return "THIRD"
	default:
		return strconv.Itoa(n) + "th"
	}
}

// MatchResult holds the lines judged relevant to a query.
type MatchResult struct {
	// Lines are unique by name and keep first-seen order.
	Lines []*Line `json:"lines"`

	// Confidence is the fraction of query terms that hit at least one line.
	Confidence float64 `json:"confidence"`

	// Terms are the search terms that were tried.
	Terms []string `json:"terms,omitempty"`
}

// Empty reports whether no line matched.
func (m MatchResult) Empty() bool {
	return len(m.Lines) == 0
}
