package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/oracle"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/schema"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/utils"
)

// ErrNoData reports that the oracle ran but produced no usable entities.
// Callers must surface this as a reportable failure, distinct from an
// empty-but-successful table.
var ErrNoData = errors.New("no entities extracted")

// Pipeline builds the initial entity table from a narrative through two
// oracle calls: one for person names with roles, one for bare locations.
type Pipeline struct {
	Oracle oracle.Oracle

	// Structured requests strict JSON output when the backend honors
	// response formats. The line parser stays as the fallback either way.
	Structured bool
}

func NewPipeline(o oracle.Oracle) *Pipeline {
	return &Pipeline{Oracle: o}
}

// Extract runs the extraction pipeline over the narrative and returns the
// numbered entity table, or ErrNoData when nothing was extracted.
func (p *Pipeline) Extract(ctx context.Context, narrative string) (*table.Table, error) {
	narrative = TrimToLastPeriod(narrative)

	rows := p.rowsFrom(p.generate(ctx, namesRolesPrompt, narrative), "Unknown")
	rows = append(rows, p.rowsFrom(p.generate(ctx, locationsPrompt, narrative), "Location")...)

	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return table.New(AssignOrdinals(rows)...), nil
}

// TrimToLastPeriod cuts the narrative at its last period. Incomplete trailing
// sentence fragments are assumed to be truncation noise and excluded; a
// narrative with no period at all trims to nothing.
func TrimToLastPeriod(narrative string) string {
	return narrative[:strings.LastIndex(narrative, ".")+1]
}

// generate issues one oracle call. Failures are recovered locally: the error
// is logged and the response treated as "no information extracted".
func (p *Pipeline) generate(ctx context.Context, system, user string) string {
	if user == "" {
		return ""
	}

	if count, err := utils.NumTokensFromMessages(system + user); err == nil {
		log.Debug("extraction oracle call", "chars", len(user), "tokens", count)
	}

	var params *openai.ChatCompletionNewParams
	if p.Structured {
		params = &openai.ChatCompletionNewParams{
			ResponseFormat: schema.StructuredOutputsResponseFormat(),
		}
	}

	out, err := p.Oracle.Generate(ctx, params, system, user)
	if err != nil {
		log.Warn("extraction oracle call failed", "error", err)
		return ""
	}
	return out
}

// rowsFrom decodes one oracle response. In structured mode a JSON payload is
// tried first; anything else goes through the line parser.
func (p *Pipeline) rowsFrom(response, defaultRole string) []table.Row {
	if p.Structured {
		if rows, ok := decodeStructured(response, defaultRole); ok {
			return rows
		}
	}
	return ParseResponse(response, defaultRole)
}

func decodeStructured(response, defaultRole string) ([]table.Row, bool) {
	cleaned := utils.CleanJSON(response)
	if !strings.HasPrefix(cleaned, "{") {
		return nil, false
	}
	var parsed schema.Extraction
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		log.Warn("structured extraction parse error, falling back to line parser", "error", err)
		return nil, false
	}
	rows := make([]table.Row, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		role := strings.TrimSpace(e.Role)
		if role == "" {
			role = defaultRole
		}
		rows = append(rows, table.Row{Text: text, Role: role})
	}
	return rows, true
}
