package llm

import (
	_ "embed"
	"strings"
)

// SystemPrompt is the fixed scoring rubric sent with every evaluation.
// Loaded from prompts/system.md at compile time.
//
//go:embed prompts/system.md
var SystemPrompt string

// userPromptTemplate is the per-pair prompt body with {{TICKET}} and
// {{REPLY}} placeholders. Loaded from prompts/user.md at compile time.
//
//go:embed prompts/user.md
var userPromptTemplate string

// BuildUserPrompt renders the evaluation prompt for one ticket/reply pair.
func BuildUserPrompt(ticket, reply string) string {
	return strings.NewReplacer(
		"{{TICKET}}", ticket,
		"{{REPLY}}", reply,
	).Replace(userPromptTemplate)
}
