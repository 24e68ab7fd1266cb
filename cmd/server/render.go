package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/services"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a report PDF from a JSON file",
	Long: `Render reads a report request ({documentName, summary, topics, qaHistory})
from a JSON file and writes the same PDF the download endpoint produces.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("input", "i", "", "report JSON file (required)")
	renderCmd.Flags().StringP("output", "o", "", "output PDF path (default <document>-analysis-report.pdf)")
	renderCmd.MarkFlagRequired("input")
}

func runRender(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read report input: %w", err)
	}

	var req models.ReportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse report input: %w", err)
	}

	svc := services.NewService(nil, nil, utils.NewNopLogger())
	report, err := svc.RenderReport(cmd.Context(), &req)
	if err != nil {
		return err
	}

	if output == "" {
		output = report.Filename
	}
	if err := os.WriteFile(output, report.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
	return nil
}
