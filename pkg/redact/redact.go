// Package redact replaces entity mentions in a narrative with bracketed role
// tags.
package redact

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
)

// Redact replaces every literal occurrence of each entity text with "[role]".
// Substitution runs longest-entity-first so a shorter name that is a
// substring of a longer one ("Lee" inside "Lee Harvey") cannot be substituted
// before the longer name is matched; within equal lengths the order rows were
// encountered is kept. Matching is case-insensitive and literal: entity text
// is regexp-quoted so metacharacters carry no meaning. When two rows share
// identical entity text, the later row's role wins.
func Redact(narrative string, rows []table.Row) string {
	tags := make(map[string]string, len(rows))
	order := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Text == "" {
			continue
		}
		if _, ok := tags[r.Text]; !ok {
			order = append(order, r.Text)
		}
		tags[r.Text] = "[" + r.Role + "]"
	}

	sort.SliceStable(order, func(i, j int) bool {
		return utf8.RuneCountInString(order[i]) > utf8.RuneCountInString(order[j])
	})

	out := narrative
	for _, text := range order {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(text))
		out = pattern.ReplaceAllLiteralString(out, tags[text])
	}
	return out
}
