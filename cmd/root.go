package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ticket-eval",
	Short: "LLM-based evaluation of customer support ticket replies",
	Long: `ticket-eval scores AI-generated replies to customer support tickets.

It reads ticket/reply pairs from a CSV file, sends each pair to an LLM
with a fixed scoring rubric, and writes an augmented CSV with content and
format scores (1-5) plus the model's explanations.

Rows that cannot be evaluated (provider failure after retries, or a
response no parser can salvage) receive neutral default scores instead of
being dropped, so output rows stay in one-to-one correspondence with the
input.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
