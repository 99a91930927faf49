package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
)

// scriptedOracle returns canned responses keyed by system instruction and
// records every prompt it receives.
type scriptedOracle struct {
	bySystem map[string]string
	err      error
	prompts  []string
}

func (o *scriptedOracle) Generate(_ context.Context, _ *openai.ChatCompletionNewParams, system, user string) (string, error) {
	o.prompts = append(o.prompts, user)
	if o.err != nil {
		return "", o.err
	}
	return o.bySystem[system], nil
}

func TestPipelineExtract(t *testing.T) {
	t.Run("Names then locations, numbered in order", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: "John Smith, Witness\nJane Doe, Officer",
			locationsPrompt:  "Main Street",
		}}
		narrative := "John Smith, a witness, was seen near Main Street. He spoke with Officer Jane Doe."

		tbl, err := NewPipeline(orc).Extract(context.Background(), narrative)

		require.NoError(t, err)
		assert.Equal(t, []table.Row{
			{Text: "John Smith", Role: "Witness 1"},
			{Text: "Jane Doe", Role: "Officer 1"},
			{Text: "Main Street", Role: "Location 1"},
		}, tbl.Rows())
	})

	t.Run("Trailing sentence fragment excluded from prompts", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: "John Smith, Witness",
		}}

		_, err := NewPipeline(orc).Extract(context.Background(), "First sentence. Truncated frag")

		require.NoError(t, err)
		require.Len(t, orc.prompts, 2)
		assert.Equal(t, "First sentence.", orc.prompts[0])
		assert.Equal(t, "First sentence.", orc.prompts[1])
	})

	t.Run("Empty extraction is ErrNoData, not an empty table", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{}}

		tbl, err := NewPipeline(orc).Extract(context.Background(), "Nothing of note happened.")

		assert.Nil(t, tbl)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("Oracle failure treated as no information", func(t *testing.T) {
		orc := &scriptedOracle{err: errors.New("model unavailable")}

		_, err := NewPipeline(orc).Extract(context.Background(), "Something happened.")

		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("Narrative without a period trims to nothing", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: "John Smith, Witness",
		}}

		_, err := NewPipeline(orc).Extract(context.Background(), "no terminating period here")

		assert.ErrorIs(t, err, ErrNoData)
		assert.Empty(t, orc.prompts, "no oracle call should be made for an empty trimmed narrative")
	})

	t.Run("Duplicate roles get distinct ordinals", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: "A, Witness\nB, Witness",
			locationsPrompt:  "Main Street\nElm Street",
		}}

		tbl, err := NewPipeline(orc).Extract(context.Background(), "A and B near Main Street and Elm Street.")

		require.NoError(t, err)
		assert.Equal(t, []table.Row{
			{Text: "A", Role: "Witness 1"},
			{Text: "B", Role: "Witness 2"},
			{Text: "Main Street", Role: "Location 1"},
			{Text: "Elm Street", Role: "Location 2"},
		}, tbl.Rows())
	})
}

func TestPipelineExtractStructured(t *testing.T) {
	t.Run("JSON payload decoded when structured", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: `{"entities":[{"text":"John Smith","role":"Witness"},{"text":"Jane Doe"}]}`,
			locationsPrompt:  `{"entities":[{"text":"Main Street"}]}`,
		}}
		p := NewPipeline(orc)
		p.Structured = true

		tbl, err := p.Extract(context.Background(), "John Smith met Jane Doe on Main Street.")

		require.NoError(t, err)
		assert.Equal(t, []table.Row{
			{Text: "John Smith", Role: "Witness 1"},
			{Text: "Jane Doe", Role: "Unknown 1"},
			{Text: "Main Street", Role: "Location 1"},
		}, tbl.Rows())
	})

	t.Run("Markdown-fenced JSON accepted", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: "```json\n{\"entities\":[{\"text\":\"John Smith\",\"role\":\"Witness\"}]}\n```",
		}}
		p := NewPipeline(orc)
		p.Structured = true

		tbl, err := p.Extract(context.Background(), "John Smith was there.")

		require.NoError(t, err)
		assert.Equal(t, []table.Row{{Text: "John Smith", Role: "Witness 1"}}, tbl.Rows())
	})

	t.Run("Non-JSON output falls back to line parser", func(t *testing.T) {
		orc := &scriptedOracle{bySystem: map[string]string{
			namesRolesPrompt: "John Smith, Witness",
		}}
		p := NewPipeline(orc)
		p.Structured = true

		tbl, err := p.Extract(context.Background(), "John Smith was there.")

		require.NoError(t, err)
		assert.Equal(t, []table.Row{{Text: "John Smith", Role: "Witness 1"}}, tbl.Rows())
	})
}

func TestTrimToLastPeriod(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Fragment dropped", "One. Two. trailing frag", "One. Two."},
		{"Exact period kept", "One. Two.", "One. Two."},
		{"No period trims to nothing", "no period", ""},
		{"Empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrimToLastPeriod(tc.in))
		})
	}
}
