package config

import (
	"errors"
	"sort"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Mode != DefaultMode {
		t.Errorf("Mode: got %q, want %q", cfg.Mode, DefaultMode)
	}
	if cfg.Output != "tickets_evaluated.csv" {
		t.Errorf("Output: got %q, want %q", cfg.Output, "tickets_evaluated.csv")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		mode         string
		wantProvider Provider
		wantModel    string
	}{
		{mode: "groq-fast", wantProvider: ProviderGroq, wantModel: "llama-3.3-70b-versatile"},
		{mode: "groq-balanced", wantProvider: ProviderGroq, wantModel: "llama-3.3-70b-versatile"},
		{mode: "grok-deep", wantProvider: ProviderGrok, wantModel: "grok-3"},
		{mode: "openai-fast", wantProvider: ProviderOpenAI, wantModel: "gpt-4o-mini"},
		{mode: "openai-balanced", wantProvider: ProviderOpenAI, wantModel: "gpt-4o"},
		{mode: "openai-deep", wantProvider: ProviderOpenAI, wantModel: "o1"},
		{mode: "claude-balanced", wantProvider: ProviderAnthropic, wantModel: "claude-sonnet-4-5"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			mc, err := Lookup(tt.mode)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.mode, err)
			}
			if mc.Provider != tt.wantProvider {
				t.Errorf("Provider: got %q, want %q", mc.Provider, tt.wantProvider)
			}
			if mc.Model != tt.wantModel {
				t.Errorf("Model: got %q, want %q", mc.Model, tt.wantModel)
			}
		})
	}
}

func TestLookupUnknownMode(t *testing.T) {
	_, err := Lookup("foo-mode")
	if err == nil {
		t.Fatal("Lookup(foo-mode) expected error")
	}
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestOpenAIDeepUsesTemperatureOne(t *testing.T) {
	// o1 rejects any temperature other than 1.
	mc, err := Lookup("openai-deep")
	if err != nil {
		t.Fatal(err)
	}
	if mc.Temperature != 1.0 {
		t.Errorf("Temperature: got %v, want 1.0", mc.Temperature)
	}
}

func TestModesSorted(t *testing.T) {
	modes := Modes()

	if len(modes) == 0 {
		t.Fatal("Modes() returned nothing")
	}
	if !sort.StringsAreSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}
	for _, mode := range modes {
		if _, err := Lookup(mode); err != nil {
			t.Errorf("Lookup(%q) failed for listed mode: %v", mode, err)
		}
	}
}

func TestMergeFile(t *testing.T) {
	cfg := Defaults()
	mergeFile(cfg, &Config{Mode: "openai-fast", OTELEndpoint: "http://localhost:4318"})

	if cfg.Mode != "openai-fast" {
		t.Errorf("Mode: got %q, want %q", cfg.Mode, "openai-fast")
	}
	if cfg.Output != "tickets_evaluated.csv" {
		t.Errorf("Output should keep default, got %q", cfg.Output)
	}
	if cfg.OTELEndpoint != "http://localhost:4318" {
		t.Errorf("OTELEndpoint: got %q", cfg.OTELEndpoint)
	}
}

func TestMergeEnvOverrides(t *testing.T) {
	t.Setenv("TICKET_EVAL_MODE", "grok-deep")
	t.Setenv("TICKET_EVAL_OUTPUT", "out.csv")

	cfg := Defaults()
	mergeEnv(cfg)

	if cfg.Mode != "grok-deep" {
		t.Errorf("Mode: got %q, want %q", cfg.Mode, "grok-deep")
	}
	if cfg.Output != "out.csv" {
		t.Errorf("Output: got %q, want %q", cfg.Output, "out.csv")
	}
}

func TestLoadRejectsUnknownModeFromEnv(t *testing.T) {
	t.Setenv("TICKET_EVAL_MODE", "foo-mode")

	_, err := Load()
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Load() error = %v, want ErrUnknownMode", err)
	}
}
