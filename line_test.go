package marketway_test

import (
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete line", func(t *testing.T) {
		t.Parallel()

		line := &marketway.Line{
			Name:   "Mothers Line",
			Items:  []string{"medicine"},
			Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 1},
		}

		assert.NoError(t, line.Validate())
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		line := &marketway.Line{Layout: marketway.Layout{Column: marketway.ColumnLeft, Order: 1}}

		err := line.Validate()
		require.Error(t, err)
		assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
		assert.Contains(t, marketway.ErrorMessage(err), "name required")
	})

	t.Run("rejects unknown column", func(t *testing.T) {
		t.Parallel()

		line := &marketway.Line{Name: "X", Layout: marketway.Layout{Column: "middle", Order: 1}}

		err := line.Validate()
		require.Error(t, err)
		assert.Contains(t, marketway.ErrorMessage(err), "unknown column")
	})

	t.Run("rejects non-positive order", func(t *testing.T) {
		t.Parallel()

		line := &marketway.Line{Name: "X", Layout: marketway.Layout{Column: marketway.ColumnRight}}

		err := line.Validate()
		require.Error(t, err)
		assert.Contains(t, marketway.ErrorMessage(err), "order must be positive")
	})
}

func TestLine_Clone(t *testing.T) {
	t.Parallel()

	line := &marketway.Line{Name: "Blessed Line", Items: []string{"shoes", "bags"}}

	clone := line.Clone()
	clone.Items[0] = "hats"

	assert.Equal(t, "shoes", line.Items[0])
	assert.Equal(t, "Blessed Line", clone.Name)
}
