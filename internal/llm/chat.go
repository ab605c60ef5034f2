package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	otelx "github.com/timvw/ticket-eval/internal/otel"
)

var evalTracer = otel.Tracer("ticket-eval/llm")

// defaultMaxTokens bounds the completion; the requested JSON payload is
// short. Reasoning models need headroom for internal reasoning tokens.
const (
	defaultMaxTokens   = 500
	reasoningMaxTokens = 2000
)

// completeChat issues one Chat Completions request against an
// OpenAI-compatible endpoint and returns the raw response text.
// Shared by the Groq, Grok and OpenAI clients; each variant shapes its
// own params (JSON mode, temperature, token budget) before calling.
func completeChat(ctx context.Context, client openai.Client, provider, model string, params openai.ChatCompletionNewParams, metrics *otelx.Metrics) (string, error) {
	// GenAI generation span following OTel GenAI semantic conventions.
	// Span name: "{operation} {model}".
	ctx, span := evalTracer.Start(ctx, "chat "+model,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.operation.name", "chat"),
			attribute.String("gen_ai.provider.name", provider),
			attribute.String("gen_ai.request.model", model),
		),
	)
	defer span.End()

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "api_error"))
		return "", fmt.Errorf("%s API call failed: %w", provider, err)
	}

	if len(resp.Choices) == 0 {
		span.SetAttributes(attribute.String("error.type", "empty_response"))
		return "", fmt.Errorf("%s API returned empty response", provider)
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		span.SetAttributes(attribute.String("error.type", "empty_response"))
		return "", fmt.Errorf("%s API returned empty message content", provider)
	}

	span.SetAttributes(
		attribute.String("gen_ai.response.model", resp.Model),
		attribute.String("gen_ai.response.id", resp.ID),
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
	)
	if resp.Choices[0].FinishReason != "" {
		span.SetAttributes(attribute.StringSlice("gen_ai.response.finish_reasons", []string{string(resp.Choices[0].FinishReason)}))
	}
	metrics.RecordTokens(ctx, provider, model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return text, nil
}
