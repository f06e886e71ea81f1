package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/harrow/internal/config"
	"github.com/jbweber/harrow/internal/reconcile"
)

var (
	runConfigFile string
	runEndpoint   string
	runInterval   int
	runDryRun     bool
	runPlanFile   string
	runLogDir     string
)

func init() {
	runCmd.Flags().StringVar(&runConfigFile, "config", "", "Path to a settings file (flags override file values)")
	runCmd.Flags().StringVar(&runEndpoint, "endpoint", "", "host:port of the libvirt daemon (required)")
	runCmd.Flags().IntVar(&runInterval, "interval", config.DefaultIntervalSeconds, "Seconds to wait at the top of every cycle")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Log intended reconfigurations without issuing them")
	runCmd.Flags().StringVar(&runPlanFile, "plan-file", config.DefaultPlanFile, "Path to the desired-state YAML document")
	runCmd.Flags().StringVar(&runLogDir, "log-dir", config.DefaultLogDir, "Directory for per-cycle log files")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reconciliation agent",
	Long: `Run the reconciliation loop until a cycle records an error.

Every cycle: sleep for the interval, open a fresh Output-/Error- log
pair, prune old logs, connect to the daemon, load the desired-state
document, and reconcile each record against the matching powered-off
VM. The first cycle that ends with any error stops the agent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		cfg := reconcile.Config{
			PlanPath: settings.PlanFile,
			LogDir:   settings.LogDir,
			Interval: settings.Interval(),
			DryRun:   settings.DryRun,
		}

		fmt.Printf("Starting reconciliation against %s (interval %s)\n", settings.Endpoint, settings.Interval())
		if settings.DryRun {
			fmt.Println("Test mode: reconfiguration calls will not be issued")
		}

		return reconcile.Run(context.Background(), settings.Endpoint, cfg)
	},
}

// loadSettings merges the optional settings file with the command-line
// flags. Flags the user actually set win over file values.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings := &config.Settings{}
	if runConfigFile != "" {
		loaded, err := config.LoadFromFile(runConfigFile)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if cmd.Flags().Changed("endpoint") || settings.Endpoint == "" {
		settings.Endpoint = runEndpoint
	}
	if cmd.Flags().Changed("interval") || settings.IntervalSeconds == 0 {
		settings.IntervalSeconds = runInterval
	}
	if cmd.Flags().Changed("dry-run") {
		settings.DryRun = runDryRun
	}
	if cmd.Flags().Changed("plan-file") || settings.PlanFile == "" {
		settings.PlanFile = runPlanFile
	}
	if cmd.Flags().Changed("log-dir") || settings.LogDir == "" {
		settings.LogDir = runLogDir
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}
