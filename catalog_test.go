package marketway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines() []*marketway.Line {
	return []*marketway.Line{
		{Name: "Mothers Line", Items: []string{"medicine", "baby food", "diapers"}, Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 1}},
		{Name: "Blessed Line", Items: []string{"shoes", "sandals", "bags"}, Layout: marketway.Layout{Column: marketway.ColumnRight, Order: 1}},
		{Name: "Food Line", Items: []string{"rice", "palm oil", "beans"}, Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 2}},
	}
}

func lineNames(lines []*marketway.Line) []string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return names
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("builds snapshot preserving load order", func(t *testing.T) {
		t.Parallel()

		cat, err := marketway.NewCatalog("Test Market", testLines(), "Founded long ago.")
		require.NoError(t, err)

		assert.Equal(t, "Test Market", cat.Name())
		assert.Equal(t, "Founded long ago.", cat.History())
		assert.Equal(t, 3, cat.Len())
		assert.Equal(t, []string{"Mothers Line", "Blessed Line", "Food Line"}, lineNames(cat.Lines()))
	})

	t.Run("defaults market name", func(t *testing.T) {
		t.Parallel()

		cat, err := marketway.NewCatalog("", nil, "")
		require.NoError(t, err)

		assert.Equal(t, marketway.DefaultMarketName, cat.Name())
		assert.Zero(t, cat.Len())
	})

	t.Run("rejects duplicate names case-insensitively", func(t *testing.T) {
		t.Parallel()

		lines := testLines()
		lines = append(lines, &marketway.Line{Name: "mothers line", Layout: marketway.Layout{Column: marketway.ColumnRight, Order: 9}})

		_, err := marketway.NewCatalog("", lines, "")
		require.Error(t, err)
		assert.Equal(t, marketway.ECONFLICT, marketway.ErrorCode(err))
	})

	t.Run("rejects shared column position", func(t *testing.T) {
		t.Parallel()

		lines := testLines()
		lines = append(lines, &marketway.Line{Name: "Other Line", Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 1}})

		_, err := marketway.NewCatalog("", lines, "")
		require.Error(t, err)
		assert.Equal(t, marketway.ECONFLICT, marketway.ErrorCode(err))
		assert.Contains(t, marketway.ErrorMessage(err), "Mothers Line")
	})

	t.Run("rejects invalid line", func(t *testing.T) {
		t.Parallel()

		_, err := marketway.NewCatalog("", []*marketway.Line{{Name: "Bad"}}, "")
		require.Error(t, err)
		assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
	})

	t.Run("is isolated from caller mutation", func(t *testing.T) {
		t.Parallel()

		lines := testLines()
		cat, err := marketway.NewCatalog("", lines, "")
		require.NoError(t, err)

		lines[0].Items[0] = "hammers"

		assert.Empty(t, cat.Search("hammers"))
		assert.Equal(t, []string{"Mothers Line"}, lineNames(cat.Search("medicine")))
	})
}

func TestCatalog_LineByName(t *testing.T) {
	t.Parallel()

	cat, err := marketway.NewCatalog("", testLines(), "")
	require.NoError(t, err)

	line, ok := cat.LineByName("  BLESSED line ")
	require.True(t, ok)
	assert.Equal(t, "Blessed Line", line.Name)

	_, ok = cat.LineByName("Nowhere Line")
	assert.False(t, ok)
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	cat, err := marketway.NewCatalog("", testLines(), "")
	require.NoError(t, err)

	t.Run("matches items by substring", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"Blessed Line"}, lineNames(cat.Search("shoe")))
	})

	t.Run("matches line names", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"Food Line"}, lineNames(cat.Search("food line")))
	})

	t.Run("is case-insensitive and trims whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"Food Line"}, lineNames(cat.Search("  PALM Oil ")))
	})

	t.Run("returns every matching line once in load order", func(t *testing.T) {
		t.Parallel()

		// "line" is in every name; "food" is both a name and an item.
		assert.Equal(t, []string{"Mothers Line", "Blessed Line", "Food Line"}, lineNames(cat.Search("line")))
		assert.Equal(t, []string{"Mothers Line", "Food Line"}, lineNames(cat.Search("food")))
	})

	t.Run("empty term matches nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, cat.Search("   "))
	})

	t.Run("finds every line by each of its items", func(t *testing.T) {
		t.Parallel()

		for _, line := range cat.Lines() {
			for _, item := range line.Items {
				assert.Contains(t, lineNames(cat.Search(item)), line.Name, "item %q", item)
			}
		}
	})
}

func TestCatalog_SearchItems(t *testing.T) {
	t.Parallel()

	cat, err := marketway.NewCatalog("", testLines(), "")
	require.NoError(t, err)

	assert.Empty(t, cat.SearchItems("blessed"))
	assert.Equal(t, []string{"Mothers Line"}, lineNames(cat.SearchItems("baby")))
}

func TestCatalogHolder_Swap(t *testing.T) {
	t.Parallel()

	first, err := marketway.NewCatalog("First", nil, "")
	require.NoError(t, err)
	second, err := marketway.NewCatalog("Second", testLines(), "")
	require.NoError(t, err)

	holder := marketway.NewCatalogHolder(first)
	snapshot := holder.Catalog()

	old := holder.Swap(second)

	assert.Same(t, first, old)
	assert.Same(t, second, holder.Catalog())
	assert.Equal(t, "First", snapshot.Name(), "existing snapshot is unaffected by swap")
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("builds snapshot from stored lines and history", func(t *testing.T) {
		t.Parallel()

		lines := &mock.LineService{
			FindLinesFn: func(_ context.Context, filter marketway.LineFilter) ([]*marketway.Line, error) {
				assert.Zero(t, filter.Limit)
				return testLines(), nil
			},
		}
		history := &mock.HistoryService{
			FindHistoryFn: func(context.Context) (string, error) { return "Founded long ago.", nil },
		}

		cat, err := marketway.LoadCatalog(context.Background(), "", lines, history)
		require.NoError(t, err)

		assert.Equal(t, marketway.DefaultMarketName, cat.Name())
		assert.Equal(t, 3, cat.Len())
		assert.Equal(t, "Founded long ago.", cat.History())
	})

	t.Run("wraps storage errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("disk gone")
		lines := &mock.LineService{
			FindLinesFn: func(context.Context, marketway.LineFilter) ([]*marketway.Line, error) {
				return nil, boom
			},
		}

		_, err := marketway.LoadCatalog(context.Background(), "Test Market", lines, &mock.HistoryService{})
		require.ErrorIs(t, err, boom)
	})
}
