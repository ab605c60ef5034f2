package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/ticket-eval/internal/config"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List available evaluation modes",
	Long: `List all evaluation modes with their provider, model and temperature.

Pass a mode name to evaluate via --mode. Each provider reads its API key
from its own environment variable (GROQ_API_KEY, XAI_API_KEY,
OPENAI_API_KEY, ANTHROPIC_API_KEY).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range config.Modes() {
			mc, err := config.Lookup(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == config.DefaultMode {
				marker = "*"
			}
			fmt.Printf("%s %-16s %-10s %-26s temperature=%.1f\n",
				marker, name, mc.Provider, mc.Model, mc.Temperature)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
