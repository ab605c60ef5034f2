package model

import "strings"

// Score bounds for both evaluation dimensions.
const (
	// MinScore is the lowest score the rubric allows.
	MinScore = 1
	// MaxScore is the highest score the rubric allows.
	MaxScore = 5
	// NeutralScore is the midpoint used when a score cannot be recovered
	// or when a row receives degraded default scoring.
	NeutralScore = 3
)

// TicketInput is one ticket/reply pair read from the input CSV.
type TicketInput struct {
	// Ticket is the customer's message. May be empty (missing cell).
	Ticket string `json:"ticket"`
	// Reply is the AI-generated response under evaluation. May be empty.
	Reply string `json:"reply"`
}

// IsEmpty reports whether both fields are empty after trimming whitespace.
// Fully-empty rows are skipped, not evaluated.
func (t TicketInput) IsEmpty() bool {
	return strings.TrimSpace(t.Ticket) == "" && strings.TrimSpace(t.Reply) == ""
}

// EvaluationResult is the parsed, validated outcome of one LLM call.
// Scores are always within [MinScore, MaxScore].
type EvaluationResult struct {
	// ContentScore rates relevance, correctness and completeness.
	ContentScore int `json:"content_score"`
	// ContentExplanation is the model's justification for ContentScore.
	ContentExplanation string `json:"content_explanation"`
	// FormatScore rates clarity, structure, grammar and spelling.
	FormatScore int `json:"format_score"`
	// FormatExplanation is the model's justification for FormatScore.
	FormatExplanation string `json:"format_explanation"`
}

// TicketEvaluated is one output row: the input pair plus its evaluation.
type TicketEvaluated struct {
	Ticket             string `json:"ticket"`
	Reply              string `json:"reply"`
	ContentScore       int    `json:"content_score"`
	ContentExplanation string `json:"content_explanation"`
	FormatScore        int    `json:"format_score"`
	FormatExplanation  string `json:"format_explanation"`

	// Degraded marks rows that received default scoring because the
	// provider call or response parsing failed. Not written to the CSV;
	// used for the run summary.
	Degraded bool `json:"degraded,omitempty"`
}

// Evaluated combines an input pair with its evaluation result.
func Evaluated(in TicketInput, res EvaluationResult) TicketEvaluated {
	return TicketEvaluated{
		Ticket:             in.Ticket,
		Reply:              in.Reply,
		ContentScore:       res.ContentScore,
		ContentExplanation: res.ContentExplanation,
		FormatScore:        res.FormatScore,
		FormatExplanation:  res.FormatExplanation,
	}
}

// DegradedResult returns the default evaluation applied when a row cannot
// be evaluated normally: neutral scores and a diagnostic explanation.
// The row is kept so input and output stay in one-to-one correspondence.
func DegradedResult(reason string) EvaluationResult {
	explanation := "Evaluation failed: " + reason
	return EvaluationResult{
		ContentScore:       NeutralScore,
		ContentExplanation: explanation,
		FormatScore:        NeutralScore,
		FormatExplanation:  explanation,
	}
}

// TokenUsage tracks LLM token consumption for a single evaluation call.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}
