package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/cli"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/output"
)

func newScenarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Save, list and project scenarios in the configured store",
		Long: `Works against the scenario store selected by PROJECTOR_STORE
(sqlite, memory or remote). The remote store is read-only.`,
	}
	cmd.AddCommand(newScenarioSaveCmd(a), newScenarioListCmd(a), newScenarioProjectCmd(a))
	return cmd
}

// openStore opens the store named by the environment configuration.
func (a *app) openStore() (cli.Repository, error) {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	return cli.OpenRepository(cfg, a.logger)
}

func newScenarioSaveCmd(a *app) *cobra.Command {
	var (
		inputFile    string
		scenarioName string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the scenarios of a plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}
			scenarios := plan.Scenarios
			if scenarioName != "" {
				sc, err := findScenario(plan, scenarioName)
				if err != nil {
					return err
				}
				scenarios = []domain.Scenario{*sc}
			}

			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			for i := range scenarios {
				id, err := repo.Save(cmd.Context(), &scenarios[i])
				if err != nil {
					return fmt.Errorf("failed to save %q: %w", scenarios[i].Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, scenarios[i].Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Plan file (YAML)")
	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Save only this scenario")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newScenarioListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenarios, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			refs, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scenarios stored")
				return nil
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ref.ID, ref.UpdatedAt.Local().Format(time.DateTime), ref.Name)
			}
			return nil
		},
	}
}

func newScenarioProjectCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "project <id>...",
		Short: "Project stored scenarios by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			plan := &domain.Configuration{}
			for _, id := range args {
				sc, err := repo.Load(cmd.Context(), id)
				if err != nil {
					return err
				}
				plan.Scenarios = append(plan.Scenarios, *sc)
			}

			results, err := a.engine().RunScenarios(cmd.Context(), plan)
			if err != nil {
				return err
			}
			return output.GenerateReport(cmd.OutOrStdout(), results, outputFormat)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "console-lite", "Output format")
	return cmd
}
