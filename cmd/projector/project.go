package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/output"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		inputFile    string
		outputFormat string
		outputFile   string
		outputDir    string
		timeline     bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project every scenario of a plan file and compare them",
		Example: `  projector project -i plan.yaml
  projector project -i plan.yaml -f timeline-csv -o timeline.csv
  projector project -i plan.yaml -f all --out-dir reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}

			engine := a.engine()
			engine.IncludeTimeline = timeline || strings.Contains(output.NormalizeFormatName(outputFormat), "timeline")
			results, err := engine.RunScenarios(cmd.Context(), plan)
			if err != nil {
				return fmt.Errorf("projection failed: %w", err)
			}

			if outputDir != "" || output.NormalizeFormatName(outputFormat) == "all" {
				files, err := output.SaveReport(results, outputFormat, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), "Report written to", f)
				}
				return nil
			}

			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := output.GenerateReport(f, results, outputFormat); err != nil {
					return err
				}
				a.logger.Info("report written", "file", outputFile, "format", outputFormat)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), results, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Plan file (YAML)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+", all")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&outputDir, "out-dir", "", "Write timestamped report files into this directory")
	cmd.Flags().BoolVar(&timeline, "timeline", false, "Include year-by-year balances")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newExampleCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print or write an example plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			example := config.NewInputParser().CreateExampleConfiguration()
			if outputFile == "" {
				return output.WriteConfiguration(cmd.OutOrStdout(), example)
			}
			if err := output.SaveConfiguration(example, outputFile); err != nil {
				return fmt.Errorf("failed to write example: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Example plan written to", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the example to this file")
	return cmd
}
