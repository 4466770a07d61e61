package resolve

import (
	"fmt"
	"math"
	"strings"

	"github.com/fwojciec/marketway"
)

// Planner computes a route to a line within a catalog snapshot.
// Implementations must be pure: the same inputs give the same route.
type Planner interface {
	Plan(cat *marketway.Catalog, current marketway.Position, target string) (*marketway.Route, error)
}

var _ marketway.DistanceModel = OrdinalDistance{}

// OrdinalDistance counts lines passed along the entrance-anchored columns.
// It is a coarse placeholder, not a geometric distance. From the entrance it
// is the target's order. Within a column it is the order difference, walked
// directly. Across columns the walk goes back past the entrance.
type OrdinalDistance struct{}

// Distance implements marketway.DistanceModel.
func (OrdinalDistance) Distance(from, to *marketway.Line) float64 {
	if to == nil {
		return 0
	}
	if from == nil {
		return float64(to.Layout.Order)
	}
	if from.Layout.Column == to.Layout.Column {
		return math.Abs(float64(to.Layout.Order - from.Layout.Order))
	}
	return float64(from.Layout.Order + to.Layout.Order)
}

var _ Planner = (*LayoutPlanner)(nil)

// LayoutPlanner gives directions from the column and order of a line.
type LayoutPlanner struct {
	distance marketway.DistanceModel
}

// NewLayoutPlanner returns a LayoutPlanner using d, or OrdinalDistance if d is nil.
func NewLayoutPlanner(d marketway.DistanceModel) *LayoutPlanner {
	if d == nil {
		d = OrdinalDistance{}
	}
	return &LayoutPlanner{distance: d}
}

// Plan returns the route from current to the target line.
// Returns ENOTFOUND if target is not in cat and EINVALID if current names an
// unknown line.
func (p *LayoutPlanner) Plan(cat *marketway.Catalog, current marketway.Position, target string) (*marketway.Route, error) {
	if cat == nil {
		return nil, marketway.Errorf(marketway.ENOTFOUND, "line %q not found", target)
	}
	line, ok := cat.LineByName(target)
	if !ok {
		return nil, marketway.Errorf(marketway.ENOTFOUND, "line %q not found", target)
	}

	var from *marketway.Line
	if !current.IsEntrance() {
		from, ok = cat.LineByName(string(current))
		if !ok {
			return nil, marketway.Errorf(marketway.EINVALID, "unknown position %q", current)
		}
	}

	route := &marketway.Route{
		Line:     line.Name,
		From:     marketway.Entrance,
		Layout:   line.Layout,
		Distance: p.distance.Distance(from, line),
		Steps:    steps(from, line),
	}
	if from != nil {
		route.From = marketway.Position(from.Name)
	}
	route.Directions = fmt.Sprintf("To get to %s: %s", line.Name, strings.Join(route.Steps, " "))

	return route, nil
}

func steps(from, to *marketway.Line) []string {
	if from != nil && from.Name == to.Name {
		return []string{fmt.Sprintf("You are already at %s.", to.Name)}
	}

	column := to.Layout.Column
	if !column.Valid() {
		return []string{"The location is not clearly mapped."}
	}

	if from != nil && from.Layout.Column == column {
		n := to.Layout.Order - from.Layout.Order
		direction := "further in"
		if n < 0 {
			n, direction = -n, "back toward the entrance"
		}
		return []string{
			fmt.Sprintf("Walk %s along the %s column, passing %s.", direction, column, pluralLines(n)),
			fmt.Sprintf("It is the %s line on your %s.", marketway.Ordinal(to.Layout.Order), column),
		}
	}

	var out []string
	if from != nil {
		out = append(out, "Walk back to the market entrance.")
	}

	return append(out,
		fmt.Sprintf("Enter the market and turn %s.", strings.ToUpper(string(column))),
		fmt.Sprintf("It is the %s line on your %s.", marketway.Ordinal(to.Layout.Order), column),
	)
}

func pluralLines(n int) string {
	if n == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", n)
}
