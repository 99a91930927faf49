package table

import "strings"

// Row maps a literal entity string, exactly as it should be matched in the
// narrative, to its assigned role label.
type Row struct {
	Text string `json:"text"`
	Role string `json:"role"`
}

// Table is an ordered sequence of entity rows. Insertion order is
// significant: pipeline stages append and never reorder, so ordinals assigned
// during numbering stay stable across later stages. Editors go through the
// accessor methods rather than reaching into internal storage.
type Table struct {
	rows []Row
}

// New creates a table seeded with the given rows.
func New(rows ...Row) *Table {
	t := &Table{rows: make([]Row, 0, len(rows))}
	t.Append(rows...)
	return t
}

// Len reports the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Get returns the row at index i.
func (t *Table) Get(i int) (Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[i], true
}

// Set replaces the row at index i.
func (t *Table) Set(i int, r Row) bool {
	if i < 0 || i >= len(t.rows) {
		return false
	}
	t.rows[i] = trim(r)
	return true
}

// Append adds rows at the end of the table, trimming surrounding whitespace.
// Blank texts are dropped.
func (t *Table) Append(rows ...Row) {
	for _, r := range rows {
		r = trim(r)
		if r.Text == "" {
			continue
		}
		t.rows = append(t.rows, r)
	}
}

// Delete removes the row at index i, preserving the order of the rest.
func (t *Table) Delete(i int) bool {
	if i < 0 || i >= len(t.rows) {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

// Rows returns a copy of the table contents in order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

func trim(r Row) Row {
	r.Text = strings.TrimSpace(r.Text)
	r.Role = strings.TrimSpace(r.Role)
	return r
}
