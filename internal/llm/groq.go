package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	otelx "github.com/timvw/ticket-eval/internal/otel"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient evaluates ticket replies using Groq's OpenAI-compatible Chat
// Completions API. Groq supports native JSON mode, so the response text is
// the structured payload itself.
type GroqClient struct {
	client      openai.Client
	model       string
	temperature float64
	metrics     *otelx.Metrics
}

// NewGroqClient creates a Groq client with a fixed model and temperature.
func NewGroqClient(cfg ClientConfig) *GroqClient {
	return &GroqClient{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(groqBaseURL),
		),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		metrics:     cfg.Metrics,
	}
}

// Provider returns "groq".
func (c *GroqClient) Provider() string { return "groq" }

// Model returns the model name.
func (c *GroqClient) Model() string { return c.model }

// Evaluate scores one ticket/reply pair and returns the raw JSON payload.
func (c *GroqClient) Evaluate(ctx context.Context, ticket, reply string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(BuildUserPrompt(ticket, reply)),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	return completeChat(ctx, c.client, c.Provider(), c.model, params, c.metrics)
}
