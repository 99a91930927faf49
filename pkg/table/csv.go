package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Persisted tables are two-column UTF-8 CSV with this header. Field quoting
// follows encoding/csv, so commas inside entity text survive a round trip.
var csvHeader = []string{"Info", "Role"}

// LoadCSV reads an entity table from path. A missing or unreadable file is a
// failure the caller must report; reconciliation and redaction never proceed
// on partially-read data.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entity table: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV decodes an entity table. The header row is skipped when present.
// Rows with fewer than two fields are skipped with a warning rather than
// treated as fatal.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	t := New()
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read entity table: %w", err)
		}
		line++
		if line == 1 && isHeader(record) {
			continue
		}
		if len(record) < 2 {
			log.Warn("skipping short entity row", "line", line, "fields", len(record))
			continue
		}
		t.Append(Row{Text: record[0], Role: record[1]})
	}
	return t, nil
}

// SaveCSV writes the table to path, overwriting any previous contents.
func SaveCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create entity table: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, t)
}

// WriteCSV encodes the table with its header row.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write entity table header: %w", err)
	}
	for _, r := range t.Rows() {
		if err := cw.Write([]string{r.Text, r.Role}); err != nil {
			return fmt.Errorf("write entity row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func isHeader(record []string) bool {
	return len(record) >= 2 &&
		strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0]) &&
		strings.EqualFold(strings.TrimSpace(record[1]), csvHeader[1])
}
