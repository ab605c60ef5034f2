// Package parser converts raw LLM response text into a validated
// evaluation result.
//
// Parsing is two-tiered: a strict JSON decode of the first balanced object
// in the response, then a regex fallback keyed on the dimension keywords.
// Providers without a JSON mode routinely wrap or mangle the requested
// structure, so the fallback salvages whatever scores and explanations are
// still present instead of discarding the evaluation.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/timvw/ticket-eval/internal/model"
)

// fallbackExplanation is used when a dimension's explanation cannot be
// recovered from the response text.
const fallbackExplanation = "Unable to parse explanation"

// ParseError reports a response from which no score or explanation could
// be recovered by either parsing strategy. Raw carries the full response
// text for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no recoverable evaluation in response: %q", truncate(e.Raw, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Strategy identifies which parsing tier produced a result.
type Strategy string

const (
	// StrategyJSON means the strict JSON tier succeeded.
	StrategyJSON Strategy = "json"
	// StrategyFallback means the regex salvage tier was needed.
	StrategyFallback Strategy = "fallback"
)

// Parse converts raw LLM response text into an EvaluationResult.
//
// It first attempts a strict JSON decode (tolerating markdown fences and
// surrounding prose), then falls back to pattern extraction. Scores are
// clamped into [MinScore, MaxScore]; unrecoverable scores default to
// NeutralScore. Parse fails with *ParseError only when both dimensions
// yield neither a score nor an explanation under both strategies.
//
// Parse is a pure function: the same input always yields the same result.
func Parse(raw string) (model.EvaluationResult, error) {
	res, _, err := ParseDetailed(raw)
	return res, err
}

// ParseDetailed is Parse plus the strategy that produced the result, so
// callers can report when a provider ignored the structured-output
// instruction.
func ParseDetailed(raw string) (model.EvaluationResult, Strategy, error) {
	if res, ok := parseJSON(raw); ok {
		return res, StrategyJSON, nil
	}
	if res, ok := parseFallback(raw); ok {
		return res, StrategyFallback, nil
	}
	return model.EvaluationResult{}, StrategyFallback, &ParseError{Raw: raw}
}

// jsonKeys are the four fields the prompt instructs the model to return.
var jsonKeys = []string{
	"content_score",
	"content_explanation",
	"format_score",
	"format_explanation",
}

// parseJSON is the strict tier: decode the first balanced JSON object in
// the text and require all four expected keys with numeric scores.
func parseJSON(raw string) (model.EvaluationResult, bool) {
	text := stripMarkdownFences(raw)
	obj, ok := extractObject(text)
	if !ok {
		return model.EvaluationResult{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return model.EvaluationResult{}, false
	}
	for _, key := range jsonKeys {
		if _, present := fields[key]; !present {
			return model.EvaluationResult{}, false
		}
	}

	contentScore, ok := asInt(fields["content_score"])
	if !ok {
		return model.EvaluationResult{}, false
	}
	formatScore, ok := asInt(fields["format_score"])
	if !ok {
		return model.EvaluationResult{}, false
	}

	return model.EvaluationResult{
		ContentScore:       clampScore(contentScore),
		ContentExplanation: asString(fields["content_explanation"]),
		FormatScore:        clampScore(formatScore),
		FormatExplanation:  asString(fields["format_explanation"]),
	}, true
}

// Fallback patterns, tried in order per dimension: a labeled key
// ("content_score": 4) first, then the dimension keyword followed closely
// by a number ("content 6/5").
var (
	contentScoreRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"?content_score"?\s*[:=]\s*"?(-?\d+)`),
		regexp.MustCompile(`(?i)\bcontent\b[^\d\n]{0,40}?(-?\d+)`),
	}
	formatScoreRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"?format_score"?\s*[:=]\s*"?(-?\d+)`),
		regexp.MustCompile(`(?i)\bformat\b[^\d\n]{0,40}?(-?\d+)`),
	}
	contentExpRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"?content_explanation"?\s*[:=]\s*"([^"]*)"`),
		regexp.MustCompile(`(?i)\bcontent\b[^\w\n]*([^\n,.;]+)`),
	}
	formatExpRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"?format_explanation"?\s*[:=]\s*"([^"]*)"`),
		regexp.MustCompile(`(?i)\bformat\b[^\w\n]*([^\n,.;]+)`),
	}
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
)

// parseFallback is the salvage tier: extract per-dimension scores and
// explanations directly from free text. Missing scores default to
// NeutralScore and missing explanations to a placeholder, but the tier
// fails entirely when nothing at all is recoverable.
func parseFallback(raw string) (model.EvaluationResult, bool) {
	contentScore, contentScoreOK := findScore(raw, contentScoreRes)
	formatScore, formatScoreOK := findScore(raw, formatScoreRes)
	contentExp, contentExpOK := findExplanation(raw, contentExpRes)
	formatExp, formatExpOK := findExplanation(raw, formatExpRes)

	if !contentScoreOK && !formatScoreOK && !contentExpOK && !formatExpOK {
		return model.EvaluationResult{}, false
	}

	return model.EvaluationResult{
		ContentScore:       clampScore(contentScore),
		ContentExplanation: contentExp,
		FormatScore:        clampScore(formatScore),
		FormatExplanation:  formatExp,
	}, true
}

func findScore(raw string, patterns []*regexp.Regexp) (int, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return model.NeutralScore, false
}

func findExplanation(raw string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		// A bare number ("6/5") is a score remnant, not an explanation.
		if text == "" || !hasLetter.MatchString(text) {
			continue
		}
		return text, true
	}
	return fallbackExplanation, false
}

// clampScore forces a score into the valid range.
func clampScore(score int) int {
	if score < model.MinScore {
		return model.MinScore
	}
	if score > model.MaxScore {
		return model.MaxScore
	}
	return score
}

// asInt coerces a JSON value to an integer. Accepts integers, floats
// (truncated) and strings holding an integer.
func asInt(raw json.RawMessage) (int, bool) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// asString coerces a JSON value to a string. Non-string values keep their
// JSON encoding so no explanation content is silently dropped.
func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// stripMarkdownFences removes a surrounding ```json ... ``` code fence.
// Models frequently wrap the requested JSON in fences despite instructions.
func stripMarkdownFences(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// extractObject returns the first balanced {...} substring, tracking
// strings and escapes so braces inside explanation text don't miscount.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
