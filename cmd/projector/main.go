package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/cli"
	"github.com/rpgo/savings-projector/internal/config"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	logLevel string
	debug    bool
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "projector",
		Short: "Retirement savings projector",
		Long: `Projects retirement savings month by month in nominal and inflation-adjusted terms,
including recurring extraordinary contributions such as bonuses or a 13th salary,
and estimates the passive income the final balance can sustain.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.LoadEnvFile()
			level := a.logLevel
			if level == "" {
				level = config.LoadAppConfig().LogLevel
			}
			if a.debug {
				level = "debug"
			}
			a.logger = cli.SetupLogger(cmd.ErrOrStderr(), level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log per-scenario figures")

	rootCmd.AddCommand(
		newProjectCmd(a),
		newExampleCmd(),
		newPresetsCmd(),
		newSensitivityCmd(a),
		newScenarioCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) engine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	engine.Debug = a.debug
	engine.SetLogger(calculation.NewSlogLogger(a.logger))
	return engine
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
