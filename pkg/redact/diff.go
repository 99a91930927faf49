package redact

import (
	"unicode"

	"github.com/aryann/difflib"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// WordDelta is one word-level change between the original and redacted
// narrative, suitable for highlighting what a redaction removed.
type WordDelta struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Diff returns the word-level deltas between the original narrative and its
// redacted form.
func Diff(original, redacted string) []WordDelta {
	at := tokenizeWords(original)
	bt := tokenizeWords(redacted)
	recs := difflib.Diff(at, bt)
	out := make([]WordDelta, 0, len(recs))
	for _, r := range recs {
		switch r.Delta {
		case difflib.Common:
			out = append(out, WordDelta{Op: Equal, Text: r.Payload})
		case difflib.LeftOnly:
			out = append(out, WordDelta{Op: Delete, Text: r.Payload})
		case difflib.RightOnly:
			out = append(out, WordDelta{Op: Insert, Text: r.Payload})
		}
	}
	return out
}

func tokenizeWords(s string) []string {
	var out []string
	var cur []rune
	kind := -1 // 0=space,1=word,2=punct
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}
	for _, r := range s {
		k := 2
		switch {
		case unicode.IsSpace(r):
			k = 0
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == '\'':
			k = 1
		}
		if kind == -1 {
			kind = k
		}
		if k != kind {
			flush()
			kind = k
		}
		cur = append(cur, r)
	}
	flush()
	return out
}
