package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Run("Append preserves insertion order", func(t *testing.T) {
		tbl := New()
		tbl.Append(Row{Text: "A", Role: "X"}, Row{Text: "B", Role: "Y"})
		tbl.Append(Row{Text: "C", Role: "Z"})

		assert.Equal(t, []Row{
			{Text: "A", Role: "X"},
			{Text: "B", Role: "Y"},
			{Text: "C", Role: "Z"},
		}, tbl.Rows())
	})

	t.Run("Append trims and drops blank texts", func(t *testing.T) {
		tbl := New(Row{Text: "  John Smith ", Role: " Witness 1 "}, Row{Text: "   ", Role: "X"})

		require.Equal(t, 1, tbl.Len())
		row, ok := tbl.Get(0)
		require.True(t, ok)
		assert.Equal(t, Row{Text: "John Smith", Role: "Witness 1"}, row)
	})

	t.Run("Set replaces in place", func(t *testing.T) {
		tbl := New(Row{Text: "A", Role: "X"})

		ok := tbl.Set(0, Row{Text: "B", Role: "Y"})

		require.True(t, ok)
		row, _ := tbl.Get(0)
		assert.Equal(t, Row{Text: "B", Role: "Y"}, row)
	})

	t.Run("Delete keeps remaining order", func(t *testing.T) {
		tbl := New(Row{Text: "A", Role: "X"}, Row{Text: "B", Role: "Y"}, Row{Text: "C", Role: "Z"})

		require.True(t, tbl.Delete(1))

		assert.Equal(t, []Row{{Text: "A", Role: "X"}, {Text: "C", Role: "Z"}}, tbl.Rows())
	})

	t.Run("Out-of-range access is rejected", func(t *testing.T) {
		tbl := New(Row{Text: "A", Role: "X"})

		_, ok := tbl.Get(1)
		assert.False(t, ok)
		assert.False(t, tbl.Set(-1, Row{}))
		assert.False(t, tbl.Delete(5))
	})

	t.Run("Rows returns a copy", func(t *testing.T) {
		tbl := New(Row{Text: "A", Role: "X"})

		rows := tbl.Rows()
		rows[0].Text = "mutated"

		row, _ := tbl.Get(0)
		assert.Equal(t, "A", row.Text)
	})
}
