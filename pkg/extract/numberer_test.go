package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
)

func TestAssignOrdinals(t *testing.T) {
	t.Run("Ordinals run per base role in table order", func(t *testing.T) {
		rows := []table.Row{
			{Text: "A", Role: "X"},
			{Text: "B", Role: "X"},
			{Text: "C", Role: "Y"},
		}

		out := AssignOrdinals(rows)

		require.Len(t, out, 3)
		assert.Equal(t, "X 1", out[0].Role)
		assert.Equal(t, "X 2", out[1].Role)
		assert.Equal(t, "Y 1", out[2].Role)
	})

	t.Run("Reordering input changes ordinals", func(t *testing.T) {
		rows := []table.Row{
			{Text: "B", Role: "X"},
			{Text: "A", Role: "X"},
		}

		out := AssignOrdinals(rows)

		assert.Equal(t, "X 1", out[0].Role)
		assert.Equal(t, "B", out[0].Text)
		assert.Equal(t, "X 2", out[1].Role)
		assert.Equal(t, "A", out[1].Text)
	})

	t.Run("Entity text untouched", func(t *testing.T) {
		out := AssignOrdinals([]table.Row{{Text: "John Smith", Role: "Witness"}})

		require.Len(t, out, 1)
		assert.Equal(t, "John Smith", out[0].Text)
		assert.Equal(t, "Witness 1", out[0].Role)
	})

	t.Run("No commas introduced into roles", func(t *testing.T) {
		out := AssignOrdinals([]table.Row{
			{Text: "A", Role: "Witness"},
			{Text: "B", Role: "Location"},
		})

		for _, r := range out {
			assert.False(t, strings.Contains(r.Role, ","), "role %q must stay a single CSV field", r.Role)
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Empty(t, AssignOrdinals(nil))
	})
}
