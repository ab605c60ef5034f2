package llm

import (
	"strings"
	"testing"
)

func TestPromptsLoaded(t *testing.T) {
	// Verify that embedded prompts are non-empty
	if SystemPrompt == "" {
		t.Error("SystemPrompt is empty — embed directive may have failed")
	}
	if userPromptTemplate == "" {
		t.Error("userPromptTemplate is empty — embed directive may have failed")
	}
	if !strings.Contains(SystemPrompt, "SCORING RUBRIC") {
		t.Error("SystemPrompt should contain the scoring rubric")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("My order is late", "Sorry, it will arrive tomorrow.")

	if !strings.Contains(got, "My order is late") {
		t.Error("prompt should contain the ticket text")
	}
	if !strings.Contains(got, "Sorry, it will arrive tomorrow.") {
		t.Error("prompt should contain the reply text")
	}
	if strings.Contains(got, "{{TICKET}}") || strings.Contains(got, "{{REPLY}}") {
		t.Errorf("unreplaced placeholder in prompt:\n%s", got)
	}
	if !strings.Contains(got, "content_score") {
		t.Error("prompt should spell out the expected JSON structure")
	}
}

func TestBuildUserPromptEmptyFields(t *testing.T) {
	// Half-empty rows are still evaluated; the prompt just carries an
	// empty section.
	got := BuildUserPrompt("Where is my refund?", "")

	if !strings.Contains(got, "Where is my refund?") {
		t.Error("prompt should contain the ticket text")
	}
	if strings.Contains(got, "{{REPLY}}") {
		t.Error("unreplaced reply placeholder")
	}
}
