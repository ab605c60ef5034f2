package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	otelx "github.com/timvw/ticket-eval/internal/otel"
)

// AnthropicClient evaluates ticket replies using the Anthropic Messages API.
// Anthropic has no JSON mode either; like Grok it relies on the prompt's
// JSON instruction, though Claude models follow it reliably in practice.
type AnthropicClient struct {
	client      anthropic.Client
	model       string
	temperature float64
	metrics     *otelx.Metrics
}

// NewAnthropicClient creates an Anthropic client with a fixed model and
// temperature.
func NewAnthropicClient(cfg ClientConfig) *AnthropicClient {
	return &AnthropicClient{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		metrics:     cfg.Metrics,
	}
}

// Provider returns "anthropic".
func (c *AnthropicClient) Provider() string { return "anthropic" }

// Model returns the model name.
func (c *AnthropicClient) Model() string { return c.model }

// Evaluate scores one ticket/reply pair and returns the response text.
func (c *AnthropicClient) Evaluate(ctx context.Context, ticket, reply string) (string, error) {
	ctx, span := evalTracer.Start(ctx, "chat "+c.model,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.operation.name", "chat"),
			attribute.String("gen_ai.provider.name", "anthropic"),
			attribute.String("gen_ai.request.model", c.model),
		),
	)
	defer span.End()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   defaultMaxTokens,
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(BuildUserPrompt(ticket, reply)),
			),
		},
	})
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "api_error"))
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	if len(resp.Content) == 0 {
		span.SetAttributes(attribute.String("error.type", "empty_response"))
		return "", fmt.Errorf("anthropic API returned empty response")
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.model", c.model),
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.InputTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.OutputTokens),
	)
	if string(resp.StopReason) != "" {
		span.SetAttributes(attribute.StringSlice("gen_ai.response.finish_reasons", []string{string(resp.StopReason)}))
	}
	c.metrics.RecordTokens(ctx, c.Provider(), c.model, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return resp.Content[0].Text, nil
}
