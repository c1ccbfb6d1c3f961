package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spboyer/vitta/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitta",
		Short: "Vitta - Hindi savings-goal advisor",
		Long: `Vitta sizes a savings goal with a SIP calculation and asks three
model-backed agents (advisor, risk analyst, planner) for a plan in Hindi.

Plans are saved as JSON transcripts that can be listed, rendered, served
over HTTP and archived.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newCalcCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newSessionsCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newArchiveCommand())

	return cmd
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}

// loadProjectConfig reads .vitta.yaml from the working directory or one of
// its parents, falling back to defaults.
func loadProjectConfig() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return projectconfig.Load(wd)
}

// firstNonEmpty returns the first argument that is not empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
