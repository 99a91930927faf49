package oracle

import (
	"context"

	"github.com/openai/openai-go/v3"
)

// Oracle defines the single call contract to the text-generation service.
// Implementations build one chat message per present role ("system" then
// "user") when the backend supports conversational templating, and return the
// generated continuation trimmed of surrounding whitespace. Every call is
// independent; no conversation memory is carried between calls.
type Oracle interface {
	Generate(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}
