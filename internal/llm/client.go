// Package llm provides the provider clients that score ticket/reply pairs.
//
// Every client implements the same contract: build the scoring prompt for
// one pair, issue a single request, return the raw response text. Response
// interpretation belongs to the parser package; this package never looks
// inside the model's answer.
package llm

import (
	"context"

	otelx "github.com/timvw/ticket-eval/internal/otel"
)

// Client sends one ticket/reply pair to an LLM and returns the raw
// response text. Model name and temperature are fixed at construction;
// clients hold no per-call state and are safe to reuse across rows.
type Client interface {
	// Evaluate scores one ticket/reply pair and returns the provider's
	// raw response text.
	Evaluate(ctx context.Context, ticket, reply string) (string, error)

	// Provider returns the provider name (e.g., "groq", "openai").
	Provider() string

	// Model returns the model name used for evaluation.
	Model() string
}

// ClientConfig holds the construction parameters shared by all clients.
type ClientConfig struct {
	// APIKey is the provider credential. Required.
	APIKey string
	// Model is the model name (e.g., "llama-3.3-70b-versatile").
	Model string
	// Temperature is the sampling temperature, fixed for the client's lifetime.
	Temperature float64
	// Metrics receives token usage counters. May be nil.
	Metrics *otelx.Metrics
}
