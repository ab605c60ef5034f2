// Package judge drives ticket/reply pairs through evaluation: prompt,
// provider call with retry, response parsing, and per-row error isolation.
//
// One bad row must never abort the batch. Provider failures (after
// retries) and unparseable responses produce a degraded row with neutral
// scores and a diagnostic explanation, so every non-empty input row yields
// exactly one output row.
package judge

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/timvw/ticket-eval/internal/llm"
	"github.com/timvw/ticket-eval/internal/model"
	otelx "github.com/timvw/ticket-eval/internal/otel"
	"github.com/timvw/ticket-eval/internal/parser"
)

// maxAttempts bounds the provider call retries per row.
const maxAttempts = 3

// Summary reports how a batch went, so output integrity is observable
// without inspecting the CSV row by row.
type Summary struct {
	// Clean counts rows evaluated and parsed normally.
	Clean int
	// Degraded counts rows that received default scoring after a provider
	// or parse failure.
	Degraded int
	// Skipped counts fully-empty input rows omitted from the output.
	Skipped int
}

// Judge evaluates batches of ticket/reply pairs with a single provider
// client. Rows are processed one at a time, in input order.
type Judge struct {
	client  llm.Client
	metrics *otelx.Metrics
	out     io.Writer

	// newBackOff builds the retry schedule for one row. Replaced in tests
	// to avoid sleeping.
	newBackOff func() backoff.BackOff
}

// New creates a Judge. Progress and warnings are written to out.
func New(client llm.Client, metrics *otelx.Metrics, out io.Writer) *Judge {
	return &Judge{
		client:     client,
		metrics:    metrics,
		out:        out,
		newBackOff: defaultBackOff,
	}
}

// defaultBackOff waits 2s, 4s, 8s... capped at 10s between attempts.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.Multiplier = 2
	b.MaxInterval = 10 * time.Second
	return b
}

// EvaluateAll evaluates all tickets sequentially and returns one output
// row per non-empty input row, preserving input order.
func (j *Judge) EvaluateAll(ctx context.Context, tickets []model.TicketInput) ([]model.TicketEvaluated, Summary) {
	var summary Summary
	results := make([]model.TicketEvaluated, 0, len(tickets))

	total := len(tickets)
	for i, in := range tickets {
		fmt.Fprintf(j.out, "evaluating row %d/%d... ", i+1, total)

		if in.IsEmpty() {
			fmt.Fprintln(j.out, "skipped (empty row)")
			j.metrics.RecordEvaluation(ctx, otelx.OutcomeSkipped)
			summary.Skipped++
			continue
		}

		row := j.EvaluateRow(ctx, in)
		if row.Degraded {
			summary.Degraded++
		} else {
			summary.Clean++
			fmt.Fprintf(j.out, "done (content: %d, format: %d)\n", row.ContentScore, row.FormatScore)
		}
		results = append(results, row)
	}

	return results, summary
}

// EvaluateRow evaluates a single non-empty ticket/reply pair. It always
// returns a row: on provider or parse failure the row carries neutral
// default scores and a diagnostic explanation.
func (j *Judge) EvaluateRow(ctx context.Context, in model.TicketInput) model.TicketEvaluated {
	raw, err := j.callWithRetry(ctx, in)
	if err != nil {
		fmt.Fprintf(j.out, "degraded (provider: %v)\n", err)
		j.metrics.RecordEvaluation(ctx, otelx.OutcomeDegradedProvider)
		return degradedRow(in, err)
	}

	res, strategy, err := parser.ParseDetailed(raw)
	if err != nil {
		fmt.Fprintf(j.out, "degraded (parse: %v)\n", err)
		j.metrics.RecordEvaluation(ctx, otelx.OutcomeDegradedParse)
		return degradedRow(in, err)
	}
	if strategy == parser.StrategyFallback {
		fmt.Fprint(j.out, "[json parse failed, used regex fallback] ")
		j.metrics.RecordParserFallback(ctx)
	}

	j.metrics.RecordEvaluation(ctx, otelx.OutcomeOK)
	return model.Evaluated(in, res)
}

// callWithRetry issues the provider call with exponential backoff.
// Parsing is not retried: a malformed response was still delivered, so it
// goes to the fallback parser instead of burning another request.
func (j *Judge) callWithRetry(ctx context.Context, in model.TicketInput) (string, error) {
	return backoff.Retry(ctx, func() (string, error) {
		return j.client.Evaluate(ctx, in.Ticket, in.Reply)
	}, backoff.WithBackOff(j.newBackOff()), backoff.WithMaxTries(maxAttempts))
}

func degradedRow(in model.TicketInput, cause error) model.TicketEvaluated {
	row := model.Evaluated(in, model.DegradedResult(cause.Error()))
	row.Degraded = true
	return row
}
