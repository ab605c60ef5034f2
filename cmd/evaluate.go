package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/ticket-eval/internal/config"
	"github.com/timvw/ticket-eval/internal/csvio"
	"github.com/timvw/ticket-eval/internal/judge"
	"github.com/timvw/ticket-eval/internal/llm"
	otelx "github.com/timvw/ticket-eval/internal/otel"
)

var (
	flagMode   string
	flagOutput string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <input.csv>",
	Short: "Score ticket/reply pairs from a CSV file",
	Long: `Evaluate every ticket/reply pair in the input CSV with an LLM.

The input must have a header row with "ticket" and "reply" columns.
The output CSV adds content_score, content_explanation, format_score and
format_explanation columns, preserving input order. Fully-empty rows are
skipped; all other rows always produce an output row.

Use the modes command to list available evaluation modes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		inputPath := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if flagMode != "" {
			cfg.Mode = flagMode
		}
		if flagOutput != "" {
			cfg.Output = flagOutput
		}

		mc, err := config.Lookup(cfg.Mode)
		if err != nil {
			return err
		}

		otelx.Version = Version
		tel, err := otelx.Init(ctx, otelx.OTELConfig{
			Endpoint: cfg.OTELEndpoint,
			Headers:  cfg.OTELHeaders,
		})
		if err != nil {
			return err
		}
		defer tel.Shutdown(ctx)

		// Configuration errors (unknown mode, missing credential) abort
		// here, before any row is read or any request is made.
		client, err := llm.NewClient(cfg.Mode, tel.Metrics)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "mode: %s (provider %s, model %s)\n", cfg.Mode, mc.Provider, mc.Model)
		fmt.Fprintf(os.Stderr, "input: %s\noutput: %s\n", inputPath, cfg.Output)

		tickets, err := csvio.ReadTickets(inputPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "found %d rows\n", len(tickets))

		j := judge.New(client, tel.Metrics, os.Stderr)
		results, summary := j.EvaluateAll(ctx, tickets)

		if err := csvio.WriteResults(cfg.Output, results); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "wrote %d rows to %s (%d clean, %d degraded, %d skipped)\n",
			len(results), cfg.Output, summary.Clean, summary.Degraded, summary.Skipped)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&flagMode, "mode", "m", "", "evaluation mode (default: "+config.DefaultMode+"; see the modes command)")
	evaluateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output CSV path (default: tickets_evaluated.csv)")
	rootCmd.AddCommand(evaluateCmd)
}
