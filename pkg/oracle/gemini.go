package oracle

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// GeminiOracle implements Oracle using Google's genai SDK.
type GeminiOracle struct {
	client *genai.Client
	apiKey string
	model  string
}

// NewGeminiOracle creates a new oracle instance using the Gemini client.
func NewGeminiOracle(apiKey string, model string) (*GeminiOracle, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiOracle{
		client: client,
		apiKey: apiKey,
		model:  model,
	}, nil
}

func (o *GeminiOracle) ChangeConfig(config *genai.ClientConfig) {
	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return
	}
	o.client = client
}

// Generate sends the prompt to the Gemini generation endpoint and returns the
// trimmed output. The system instruction is attached only when present.
func (o *GeminiOracle) Generate(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleModel)
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return strings.TrimSpace(result.Text()), nil
}
