package oracle

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
)

// LocalOracle implements Oracle against a bare local generation endpoint
// (Ollama-style POST /api/generate) that exposes no chat template. Prompts
// fall back to plain "role: content" concatenation terminated by "assistant:"
// so the model continues the conversation from there.
type LocalOracle struct {
	url    string
	model  string
	client *http.Client
}

// NewLocalOracle creates an oracle against endpoint, e.g. "http://localhost:11434".
func NewLocalOracle(endpoint, model string) *LocalOracle {
	return &LocalOracle{
		url:    strings.TrimRight(endpoint, "/") + "/api/generate",
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (o *LocalOracle) SetModel(model string) {
	o.model = model
}

type localRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type localResponse struct {
	Response string `json:"response"`
}

// PlainPrompt builds the untemplated prompt: one "role: content" line per
// present role, terminated by "assistant:" for the model to complete.
func PlainPrompt(system, user string) string {
	var b strings.Builder
	if system != "" {
		b.WriteString("system: " + system + "\n")
	}
	b.WriteString("user: " + user + "\n")
	b.WriteString("assistant:")
	return b.String()
}

// Generate posts the plain prompt and returns the trimmed response text.
func (o *LocalOracle) Generate(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	model := o.model
	if params != nil {
		model = cmp.Or(params.Model, model)
	}
	body, err := json.Marshal(localRequest{
		Model:  model,
		Prompt: PlainPrompt(system, user),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("local generation error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local generation status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}

	var decoded localResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("generation response parse error: %w", err)
	}
	if decoded.Response == "" {
		return "", errors.New("empty completion content")
	}

	return strings.TrimSpace(decoded.Response), nil
}
