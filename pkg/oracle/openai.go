package oracle

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// OpenAIOracle implements Oracle using OpenAI's official Go SDK. It also
// serves any OpenAI-compatible endpoint via ChangeBaseURL.
type OpenAIOracle struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenAIOracle creates a new oracle instance using the OpenAI client.
func NewOpenAIOracle(apiKey string, model string) *OpenAIOracle {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIOracle{
		client: &client,
		apiKey: apiKey,
		model:  model,
	}
}

func (o *OpenAIOracle) ChangeBaseURL(baseURL string) {
	client := openai.NewClient(
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(baseURL),
	)
	o.client = &client
}

func (o *OpenAIOracle) SetModel(model string) {
	o.model = model
}

// Generate sends the prompt to the chat completion endpoint and returns the
// trimmed output. The system message is omitted when no system instruction is
// given.
func (o *OpenAIOracle) Generate(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		cp := *params
		params = &cp
	}
	params.Model = cmp.Or(params.Model, o.model)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Role: "system",
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.Opt[string]{Value: system},
				},
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Role: "user",
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: param.Opt[string]{Value: user},
			},
		},
	})
	params.Messages = messages

	params.MaxCompletionTokens = openai.Int(cmp.Or(params.MaxCompletionTokens.Value, 4096))
	params.Temperature = openai.Float(cmp.Or(params.Temperature.Value, 0.3))
	params.TopP = openai.Float(cmp.Or(params.TopP.Value, 1.0))

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", fmt.Errorf("openai generation error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion content")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
