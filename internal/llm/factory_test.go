package llm

import (
	"errors"
	"testing"

	"github.com/timvw/ticket-eval/internal/config"
)

func TestNewClientUnknownMode(t *testing.T) {
	// Fails on the mode table lookup, before any credential or network use.
	_, err := NewClient("foo-mode", nil)
	if err == nil {
		t.Fatal("NewClient(foo-mode) expected error")
	}
	if !errors.Is(err, config.ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestNewClientMissingCredential(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := NewClient("groq-balanced", nil)
	if err == nil {
		t.Fatal("NewClient expected error with unset GROQ_API_KEY")
	}
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
}

func TestNewClientSelectsProviderVariant(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("XAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	tests := []struct {
		mode         string
		wantProvider string
		wantModel    string
	}{
		{mode: "groq-fast", wantProvider: "groq", wantModel: "llama-3.3-70b-versatile"},
		{mode: "grok-deep", wantProvider: "grok", wantModel: "grok-3"},
		{mode: "openai-balanced", wantProvider: "openai", wantModel: "gpt-4o"},
		{mode: "claude-balanced", wantProvider: "anthropic", wantModel: "claude-sonnet-4-5"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			client, err := NewClient(tt.mode, nil)
			if err != nil {
				t.Fatalf("NewClient(%q) error: %v", tt.mode, err)
			}
			if client.Provider() != tt.wantProvider {
				t.Errorf("Provider() = %q, want %q", client.Provider(), tt.wantProvider)
			}
			if client.Model() != tt.wantModel {
				t.Errorf("Model() = %q, want %q", client.Model(), tt.wantModel)
			}
		})
	}
}

func TestNewClientDeterministic(t *testing.T) {
	// Same mode + same credential presence must give the same outcome.
	t.Setenv("OPENAI_API_KEY", "test-key")

	for i := 0; i < 2; i++ {
		client, err := NewClient("openai-fast", nil)
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if client.Provider() != "openai" || client.Model() != "gpt-4o-mini" {
			t.Errorf("attempt %d: got %s/%s", i, client.Provider(), client.Model())
		}
	}
}
