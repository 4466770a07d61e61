package resolve_test

import (
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/stretchr/testify/require"
)

// testCatalog returns a small market with lines in both columns.
func testCatalog(t *testing.T) *marketway.Catalog {
	t.Helper()
	cat, err := marketway.NewCatalog("Bamenda Main Market", []*marketway.Line{
		{Name: "Mothers Line", Items: []string{"medicine", "baby food", "diapers", "soap", "lotion", "powder"}, Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 1}},
		{Name: "Blessed Line", Items: []string{"shoes", "sandals", "bags"}, Layout: marketway.Layout{Column: marketway.ColumnRight, Order: 1}},
		{Name: "Food Line", Items: []string{"rice", "palm oil", "beans", "plantain"}, Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 2}},
		{Name: "Cobbler Line", Items: []string{"shoe", "shoe polish", "laces"}, Layout: marketway.Layout{Column: marketway.ColumnRight, Order: 2}},
		{Name: "Fabric Line", Items: []string{"wax print", "toghu", "thread"}, Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 3}},
		{Name: "Tailor Line", Items: []string{"uniforms", "alterations"}, Layout: marketway.Layout{Column: marketway.ColumnRight, Order: 7}},
	}, "The market was built in the early years of the town and has grown ever since.")
	require.NoError(t, err)
	return cat
}

func names(lines []*marketway.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out
}
