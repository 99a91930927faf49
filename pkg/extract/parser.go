package extract

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
)

// ParseResponse turns one oracle response into entity rows, one intended
// entity per line. The oracle is not guaranteed to use a single consistent
// delimiter, so parsing is a two-pass strategy with significant ordering:
// a comma-only split is attempted first, and only lines it cannot resolve are
// re-split on any ';' or ','. Lines that still do not resolve to one or two
// fields are dropped and logged, never fatal.
//
// An empty defaultRole means "Unknown".
func ParseResponse(response, defaultRole string) []table.Row {
	if defaultRole == "" {
		defaultRole = "Unknown"
	}

	var rows []table.Row
	for i, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := cleanParts(strings.Split(line, ","))
		switch len(parts) {
		case 2:
			rows = append(rows, table.Row{Text: parts[0], Role: parts[1]})
			continue
		case 1:
			rows = append(rows, table.Row{Text: parts[0], Role: defaultRole})
			continue
		}

		// Fallback: mixed-delimiter split on ';' or ','.
		parts = cleanParts(strings.FieldsFunc(line, func(r rune) bool {
			return r == ';' || r == ','
		}))
		if len(parts) == 2 {
			rows = append(rows, table.Row{Text: parts[0], Role: parts[1]})
			continue
		}

		log.Warn("dropping malformed oracle line", "line", i+1, "text", strings.TrimSpace(line))
	}
	return rows
}

// cleanParts trims whitespace and surrounding quote characters from each part
// and drops empty ones.
func cleanParts(in []string) []string {
	out := in[:0]
	for _, p := range in {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"'`)
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
