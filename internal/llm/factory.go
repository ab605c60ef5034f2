package llm

import (
	"errors"
	"fmt"
	"os"

	"github.com/timvw/ticket-eval/internal/config"
	otelx "github.com/timvw/ticket-eval/internal/otel"
)

// ErrMissingCredential reports that the environment variable holding the
// selected provider's API key is not set.
var ErrMissingCredential = errors.New("missing credential")

// credentialEnvVars maps each provider to the environment variable that
// supplies its API key.
var credentialEnvVars = map[config.Provider]string{
	config.ProviderGroq:      "GROQ_API_KEY",
	config.ProviderGrok:      "XAI_API_KEY",
	config.ProviderOpenAI:    "OPENAI_API_KEY",
	config.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// NewClient builds the provider client for a named mode. This is the
// single point of provider selection: it resolves the mode in the static
// table, checks the provider's credential and constructs the matching
// variant. No network traffic happens here; an unknown mode or a missing
// credential fails before any request could be made.
func NewClient(mode string, metrics *otelx.Metrics) (Client, error) {
	mc, err := config.Lookup(mode)
	if err != nil {
		return nil, err
	}

	envVar, ok := credentialEnvVars[mc.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q for mode %q", mc.Provider, mode)
	}
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s environment variable not set", ErrMissingCredential, envVar)
	}

	cfg := ClientConfig{
		APIKey:      apiKey,
		Model:       mc.Model,
		Temperature: mc.Temperature,
		Metrics:     metrics,
	}

	switch mc.Provider {
	case config.ProviderGroq:
		return NewGroqClient(cfg), nil
	case config.ProviderGrok:
		return NewGrokClient(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q for mode %q", mc.Provider, mode)
	}
}
