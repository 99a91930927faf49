package extract

import (
	"fmt"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
)

// AssignOrdinals rewrites every role to "<role> <n>" where n is a 1-based
// running count per distinct base role, so repeated roles become
// distinguishable table entries. Ordinals are assigned in input order; the
// function is a pure function of that order. The rewritten role never gains a
// comma, keeping it a single CSV field downstream.
func AssignOrdinals(rows []table.Row) []table.Row {
	counts := make(map[string]int, len(rows))
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		counts[r.Role]++
		out[i] = table.Row{Text: r.Text, Role: fmt.Sprintf("%s %d", r.Role, counts[r.Role])}
	}
	return out
}
