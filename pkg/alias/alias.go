// Package alias discovers spelling variants of entities already present in an
// entity table by querying the oracle pairwise. The cost is
// O(existing_rows × candidate_names) strictly sequential oracle calls; no
// batching or caching is performed and repeated candidate names are compared
// again each time they appear in the pool.
package alias

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/oracle"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
)

// Event reports one pairwise verdict to an optional progress observer.
type Event struct {
	Name      string `json:"name"`
	Candidate string `json:"candidate"`
	Alias     bool   `json:"alias"`
}

// Reconciler appends confirmed aliases of existing entities to a table.
type Reconciler struct {
	Oracle oracle.Oracle

	// Progress, when set, receives one event per pairwise oracle verdict.
	Progress func(Event)
}

func NewReconciler(o oracle.Oracle) *Reconciler {
	return &Reconciler{Oracle: o}
}

// Reconcile extracts every person name mentioned in the narrative and, for
// each row already in the table, asks the oracle whether each candidate is an
// alias of it. Confirmed aliases are appended with the original row's role.
// Original rows are preserved verbatim and in position; a (text, role) pair
// is never appended twice, even when the oracle confirms the same alias from
// two different original rows.
func (r *Reconciler) Reconcile(ctx context.Context, tbl *table.Table, narrative string) *table.Table {
	rows := tbl.Rows()
	out := table.New(rows...)

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		seen[pairKey(row)] = struct{}{}
	}

	pool := r.candidates(ctx, narrative)
	if len(pool) == 0 {
		log.Warn("no person names returned for alias reconciliation")
		return out
	}
	log.Info("reconciling aliases", "rows", len(rows), "candidates", len(pool), "max_oracle_calls", len(rows)*len(pool))

	for _, row := range rows {
		for _, candidate := range pool {
			if strings.EqualFold(candidate, row.Text) {
				continue
			}

			confirmed := r.samePerson(ctx, row.Text, candidate)
			if r.Progress != nil {
				r.Progress(Event{Name: row.Text, Candidate: candidate, Alias: confirmed})
			}
			if !confirmed {
				continue
			}

			appended := table.Row{Text: candidate, Role: row.Role}
			if _, ok := seen[pairKey(appended)]; ok {
				continue
			}
			seen[pairKey(appended)] = struct{}{}
			out.Append(appended)
			log.Info("confirmed alias", "name", row.Text, "alias", candidate, "role", row.Role)
		}
	}
	return out
}

// candidates lists every person name mentioned in the narrative, one per
// line, order preserved and duplicates kept.
func (r *Reconciler) candidates(ctx context.Context, narrative string) []string {
	response, err := r.Oracle.Generate(ctx, nil, personsPrompt, narrative)
	if err != nil {
		log.Warn("candidate name listing failed", "error", err)
		return nil
	}

	var pool []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, `"'`)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pool = append(pool, line)
	}
	return pool
}

// samePerson asks the oracle whether two strings denote the same person.
// Only a response of exactly "yes" (case-insensitive) confirms; any failure
// counts as "no" and never aborts the run.
func (r *Reconciler) samePerson(ctx context.Context, name, candidate string) bool {
	prompt := fmt.Sprintf("Name 1: %s\nName 2: %s", name, candidate)
	response, err := r.Oracle.Generate(ctx, nil, samePersonPrompt, prompt)
	if err != nil {
		log.Warn("pairwise alias query failed", "name", name, "candidate", candidate, "error", err)
		return false
	}
	return strings.EqualFold(strings.TrimSpace(response), "yes")
}

func pairKey(r table.Row) string {
	return r.Text + "\x00" + r.Role
}
