package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/output"
	"github.com/rpgo/savings-projector/pkg/decimal"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the risk profiles and their return and inflation assumptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-14s %10s %10s  %s\n", "PROFILE", "RETURN", "INFLATION", "DESCRIPTION")
			for _, p := range domain.RiskProfiles() {
				fmt.Fprintf(w, "%-14s %10s %10s  %s\n", p.Name,
					decimal.Percent(p.NominalAnnualReturnPct, 1), decimal.Percent(p.AnnualInflationPct, 1), p.Description)
			}
			return nil
		},
	}
}

func newSensitivityCmd(a *app) *cobra.Command {
	var (
		inputFile    string
		scenarioName string
		paramName    string
		outputFormat string
		minValue     float64
		maxValue     float64
		steps        int
	)

	names := make([]string, 0, len(domain.GetCommonParameters()))
	for _, p := range domain.GetCommonParameters() {
		names = append(names, p.Name)
	}

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep one plan input and show how the real passive income responds",
		Example: `  projector sensitivity -i plan.yaml --param nominal_return
  projector sensitivity -i plan.yaml -s "Retire at 70" --param monthly_contribution --min 1000 --max 9000 --steps 9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}
			scenario, err := findScenario(plan, scenarioName)
			if err != nil {
				return err
			}

			param, err := domain.LookupSensitivityParameter(paramName)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min") {
				param.MinValue = minValue
			}
			if cmd.Flags().Changed("max") {
				param.MaxValue = maxValue
			}
			if cmd.Flags().Changed("steps") {
				param.Steps = steps
			}
			if param.MaxValue < param.MinValue {
				return fmt.Errorf("--max %.2f is below --min %.2f", param.MaxValue, param.MinValue)
			}
			if param.Steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}

			analysis := a.engine().SensitivitySweep(scenario, param)
			data, err := output.FormatSensitivity(analysis, outputFormat)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Plan file (YAML)")
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario to sweep (default: the first one)")
	cmd.Flags().StringVar(&paramName, "param", domain.ParamNominalReturn, "Parameter to sweep: "+strings.Join(names, ", "))
	cmd.Flags().Float64Var(&minValue, "min", 0, "Lowest swept value (default depends on --param)")
	cmd.Flags().Float64Var(&maxValue, "max", 0, "Highest swept value (default depends on --param)")
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of sweep points, endpoints included")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "Output format: console, csv, json")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func findScenario(plan *domain.Configuration, name string) (*domain.Scenario, error) {
	if name == "" {
		return &plan.Scenarios[0], nil
	}
	for i := range plan.Scenarios {
		if strings.EqualFold(plan.Scenarios[i].Name, name) {
			return &plan.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found in plan", name)
}
