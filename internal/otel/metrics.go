package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "ticket-eval"

// Row evaluation outcomes recorded on the evaluations counter.
const (
	OutcomeOK               = "ok"
	OutcomeDegradedProvider = "degraded_provider"
	OutcomeDegradedParse    = "degraded_parse"
	OutcomeSkipped          = "skipped"
)

// Metrics holds all OTEL metric instruments for ticket-eval.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// LLM token counters (partitioned by provider + model via attributes)
	InputTokens  metric.Int64Counter
	OutputTokens metric.Int64Counter

	// Row counters
	Evaluations     metric.Int64Counter
	ParserFallbacks metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.InputTokens, err = meter.Int64Counter("llm.tokens.input",
		metric.WithDescription("Total LLM input tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	m.OutputTokens, err = meter.Int64Counter("llm.tokens.output",
		metric.WithDescription("Total LLM output tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	m.Evaluations, err = meter.Int64Counter("evaluations.total",
		metric.WithDescription("Total rows processed, partitioned by outcome (ok, degraded_provider, degraded_parse, skipped)"))
	if err != nil {
		return nil, err
	}

	m.ParserFallbacks, err = meter.Int64Counter("parser.fallbacks",
		metric.WithDescription("Number of responses that needed the regex fallback parser"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordTokens records LLM token usage on the metric counters.
func (m *Metrics) RecordTokens(ctx context.Context, provider, model string, input, output int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", model),
	)
	m.InputTokens.Add(ctx, input, attrs)
	m.OutputTokens.Add(ctx, output, attrs)
}

// RecordEvaluation records one processed row with the given outcome.
func (m *Metrics) RecordEvaluation(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("evaluation.outcome", outcome),
	))
}

// RecordParserFallback records a response that failed strict JSON decoding.
func (m *Metrics) RecordParserFallback(ctx context.Context) {
	if m == nil {
		return
	}
	m.ParserFallbacks.Add(ctx, 1)
}
