package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "speedminds",
	Short: "Document summaries, key topics and Q&A backed by a hosted LLM",
	Long: `SpeedMinds analyzes uploaded PDF, DOCX and TXT documents with a hosted
language model, answers questions about them and renders PDF reports.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional YAML config file")
	rootCmd.AddCommand(serveCmd, renderCmd)
}
