package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	otelx "github.com/timvw/ticket-eval/internal/otel"
)

// OpenAIClient evaluates ticket replies using the OpenAI Chat Completions
// API with native JSON mode.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	metrics     *otelx.Metrics
}

// NewOpenAIClient creates an OpenAI client with a fixed model and temperature.
func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		metrics:     cfg.Metrics,
	}
}

// Provider returns "openai".
func (c *OpenAIClient) Provider() string { return "openai" }

// Model returns the model name.
func (c *OpenAIClient) Model() string { return c.model }

// Evaluate scores one ticket/reply pair and returns the raw JSON payload.
func (c *OpenAIClient) Evaluate(ctx context.Context, ticket, reply string) (string, error) {
	userPrompt := BuildUserPrompt(ticket, reply)

	var params openai.ChatCompletionNewParams
	if isReasoningModel(c.model) {
		// o-series models reject system messages, non-default temperature
		// and JSON mode, and burn completion budget on reasoning tokens.
		params = openai.ChatCompletionNewParams{
			Model: shared.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(SystemPrompt + "\n\n" + userPrompt),
			},
			MaxCompletionTokens: openai.Int(reasoningMaxTokens),
		}
	} else {
		params = openai.ChatCompletionNewParams{
			Model: shared.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(SystemPrompt),
				openai.UserMessage(userPrompt),
			},
			Temperature: openai.Float(c.temperature),
			MaxTokens:   openai.Int(defaultMaxTokens),
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			},
		}
	}
	return completeChat(ctx, c.client, c.Provider(), c.model, params, c.metrics)
}

// isReasoningModel reports whether the model is an o-series reasoning model.
func isReasoningModel(model string) bool {
	return strings.HasPrefix(model, "o1")
}
