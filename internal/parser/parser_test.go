package parser

import (
	"errors"
	"testing"

	"github.com/timvw/ticket-eval/internal/model"
)

func TestParseValidJSON(t *testing.T) {
	raw := `{"content_score": 4, "content_explanation": "Addresses the delay directly.", "format_score": 5, "format_explanation": "Clear and polite."}`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := model.EvaluationResult{
		ContentScore:       4,
		ContentExplanation: "Addresses the delay directly.",
		FormatScore:        5,
		FormatExplanation:  "Clear and polite.",
	}
	if got != want {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseJSONVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.EvaluationResult
	}{
		{
			name: "markdown fenced",
			raw:  "```json\n{\"content_score\": 3, \"content_explanation\": \"ok\", \"format_score\": 2, \"format_explanation\": \"typos\"}\n```",
			want: model.EvaluationResult{ContentScore: 3, ContentExplanation: "ok", FormatScore: 2, FormatExplanation: "typos"},
		},
		{
			name: "surrounding prose",
			raw:  `Here is my evaluation: {"content_score": 5, "content_explanation": "complete", "format_score": 4, "format_explanation": "minor issues"} Hope this helps!`,
			want: model.EvaluationResult{ContentScore: 5, ContentExplanation: "complete", FormatScore: 4, FormatExplanation: "minor issues"},
		},
		{
			name: "scores as strings",
			raw:  `{"content_score": "4", "content_explanation": "good", "format_score": "5", "format_explanation": "clean"}`,
			want: model.EvaluationResult{ContentScore: 4, ContentExplanation: "good", FormatScore: 5, FormatExplanation: "clean"},
		},
		{
			name: "scores as floats",
			raw:  `{"content_score": 4.0, "content_explanation": "good", "format_score": 3.7, "format_explanation": "fine"}`,
			want: model.EvaluationResult{ContentScore: 4, ContentExplanation: "good", FormatScore: 3, FormatExplanation: "fine"},
		},
		{
			name: "braces inside explanations",
			raw:  `{"content_score": 2, "content_explanation": "mentions {order_id} literally", "format_score": 3, "format_explanation": "ok"}`,
			want: model.EvaluationResult{ContentScore: 2, ContentExplanation: "mentions {order_id} literally", FormatScore: 3, FormatExplanation: "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseClamping(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantContent int
		wantFormat  int
	}{
		{
			name:        "above range clamps to max",
			raw:         `{"content_score": 7, "content_explanation": "a", "format_score": 9, "format_explanation": "b"}`,
			wantContent: 5,
			wantFormat:  5,
		},
		{
			name:        "below range clamps to min",
			raw:         `{"content_score": 0, "content_explanation": "a", "format_score": -2, "format_explanation": "b"}`,
			wantContent: 1,
			wantFormat:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got.ContentScore != tt.wantContent || got.FormatScore != tt.wantFormat {
				t.Errorf("scores: got %d/%d, want %d/%d",
					got.ContentScore, got.FormatScore, tt.wantContent, tt.wantFormat)
			}
		})
	}
}

func TestParseNonNumericScoreDefaultsToNeutral(t *testing.T) {
	// A non-numeric score fails the strict tier; the fallback recovers the
	// explanations and defaults the score to the neutral midpoint.
	raw := `{"content_score": "high", "content_explanation": "covers everything", "format_score": 4, "format_explanation": "tidy"}`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.ContentScore != model.NeutralScore {
		t.Errorf("ContentScore: got %d, want %d", got.ContentScore, model.NeutralScore)
	}
	if got.FormatScore != 4 {
		t.Errorf("FormatScore: got %d, want 4", got.FormatScore)
	}
	if got.ContentExplanation != "covers everything" {
		t.Errorf("ContentExplanation: got %q", got.ContentExplanation)
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.EvaluationResult
	}{
		{
			name: "missing key falls back to labeled extraction",
			raw:  `{"content_score": 4, "content_explanation": "solid", "format_score": 2}`,
			want: model.EvaluationResult{
				ContentScore:       4,
				ContentExplanation: "solid",
				FormatScore:        2,
				FormatExplanation:  "Unable to parse explanation",
			},
		},
		{
			name: "malformed JSON with labeled fields",
			raw:  `content_score: 5, content_explanation: "great", format_score: 3, format_explanation: "fine"`,
			want: model.EvaluationResult{
				ContentScore:       5,
				ContentExplanation: "great",
				FormatScore:        3,
				FormatExplanation:  "fine",
			},
		},
		{
			name: "free text with dimension keywords",
			raw:  "Score: content 6/5, format unclear",
			want: model.EvaluationResult{
				ContentScore:       5, // 6 clamped
				ContentExplanation: "Unable to parse explanation",
				FormatScore:        3, // no numeric score found
				FormatExplanation:  "unclear",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseUnrecoverable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty response", raw: ""},
		{name: "unrelated prose", raw: "I cannot evaluate this interaction."},
		{name: "empty object", raw: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse() error = %T, want *ParseError", err)
			}
			if parseErr.Raw != tt.raw {
				t.Errorf("ParseError.Raw = %q, want %q", parseErr.Raw, tt.raw)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	raw := `Result: {"content_score": 4, "content_explanation": "ok", "format_score": 2, "format_explanation": "rough"}`

	first, err1 := Parse(raw)
	second, err2 := Parse(raw)

	if err1 != nil || err2 != nil {
		t.Fatalf("Parse() errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Parse() not idempotent: %+v vs %+v", first, second)
	}
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"content_score": 4}`,
			want:  `{"content_score": 4}`,
		},
		{
			name:  "fenced json block",
			input: "```json\n{\"content_score\": 4}\n```",
			want:  `{"content_score": 4}`,
		},
		{
			name:  "fenced without language",
			input: "```\n{\"content_score\": 4}\n```",
			want:  `{"content_score": 4}`,
		},
		{
			name:  "fenced with whitespace",
			input: "  ```json\n{\"key\": \"value\"}\n```  ",
			want:  `{"key": "value"}`,
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only fences no content",
			input: "```json\n```",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripMarkdownFences(tt.input)
			if got != tt.want {
				t.Errorf("stripMarkdownFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "bare object",
			input:  `{"a": 1}`,
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "object with prose around it",
			input:  `sure! {"a": 1} done`,
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "nested objects balanced",
			input:  `{"a": {"b": 2}}`,
			want:   `{"a": {"b": 2}}`,
			wantOK: true,
		},
		{
			name:   "brace inside string ignored",
			input:  `{"a": "closing } brace"} trailing`,
			want:   `{"a": "closing } brace"}`,
			wantOK: true,
		},
		{
			name:   "unterminated object",
			input:  `{"a": 1`,
			wantOK: false,
		},
		{
			name:   "no object",
			input:  "plain text",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractObject(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("extractObject(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("extractObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
