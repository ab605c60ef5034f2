package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	otelx "github.com/timvw/ticket-eval/internal/otel"
)

const grokBaseURL = "https://api.x.ai/v1"

// GrokClient evaluates ticket replies using the xAI API.
//
// Grok exposes no JSON mode: the prompt asks for a JSON body but nothing
// enforces it, so responses from this client are the main consumers of the
// parser's fallback path.
type GrokClient struct {
	client      openai.Client
	model       string
	temperature float64
	metrics     *otelx.Metrics
}

// NewGrokClient creates a Grok (xAI) client with a fixed model and temperature.
func NewGrokClient(cfg ClientConfig) *GrokClient {
	return &GrokClient{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(grokBaseURL),
		),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		metrics:     cfg.Metrics,
	}
}

// Provider returns "grok".
func (c *GrokClient) Provider() string { return "grok" }

// Model returns the model name.
func (c *GrokClient) Model() string { return c.model }

// Evaluate scores one ticket/reply pair and returns the free-text response.
func (c *GrokClient) Evaluate(ctx context.Context, ticket, reply string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(BuildUserPrompt(ticket, reply)),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
	}
	return completeChat(ctx, c.client, c.Provider(), c.model, params, c.metrics)
}
