package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Provider identifies an LLM provider.
type Provider string

const (
	ProviderGroq      Provider = "groq"
	ProviderGrok      Provider = "grok"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// ModelConfig binds one named mode to a provider, model and temperature.
// The table is fixed at startup and never mutated.
type ModelConfig struct {
	Provider    Provider
	Model       string
	Temperature float64
}

// DefaultMode is the mode used when none is configured.
const DefaultMode = "groq-balanced"

// ErrUnknownMode reports a mode name absent from the mode table.
var ErrUnknownMode = errors.New("unknown mode")

// modelConfigs is the static mode table. Lookup is the only access path.
var modelConfigs = map[string]ModelConfig{
	// Groq models (fastest)
	"groq-fast":     {Provider: ProviderGroq, Model: "llama-3.3-70b-versatile", Temperature: 0.1},
	"groq-balanced": {Provider: ProviderGroq, Model: "llama-3.3-70b-versatile", Temperature: 0.3},

	// Grok models (xAI)
	"grok-deep": {Provider: ProviderGrok, Model: "grok-3", Temperature: 0.2},

	// OpenAI models
	"openai-fast":     {Provider: ProviderOpenAI, Model: "gpt-4o-mini", Temperature: 0.1},
	"openai-balanced": {Provider: ProviderOpenAI, Model: "gpt-4o", Temperature: 0.2},
	// o1 requires temperature=1
	"openai-deep": {Provider: ProviderOpenAI, Model: "o1", Temperature: 1.0},

	// Anthropic models
	"claude-balanced": {Provider: ProviderAnthropic, Model: "claude-sonnet-4-5", Temperature: 0.2},
	"claude-fast":     {Provider: ProviderAnthropic, Model: "claude-haiku-4-5", Temperature: 0.1},
}

// Lookup resolves a mode name to its model configuration.
func Lookup(mode string) (ModelConfig, error) {
	mc, ok := modelConfigs[mode]
	if !ok {
		return ModelConfig{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownMode, mode, strings.Join(Modes(), ", "))
	}
	return mc, nil
}

// Modes returns all mode names, sorted.
func Modes() []string {
	modes := make([]string, 0, len(modelConfigs))
	for name := range modelConfigs {
		modes = append(modes, name)
	}
	sort.Strings(modes)
	return modes
}
