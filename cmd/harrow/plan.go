package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbweber/harrow/internal/cyclelog"
	"github.com/jbweber/harrow/internal/output"
	"github.com/jbweber/harrow/internal/reconcile"
)

var (
	planEndpoint  string
	planFile      string
	planFormat    string
	planNoHeaders bool
	planVerbose   bool
)

func init() {
	planCmd.Flags().StringVar(&planEndpoint, "endpoint", "", "host:port of the libvirt daemon (required)")
	planCmd.Flags().StringVar(&planFile, "plan-file", "desired-state.yaml", "Path to the desired-state YAML document")
	planCmd.Flags().StringVarP(&planFormat, "output", "o", "table", "Output format (table, yaml, json)")
	planCmd.Flags().BoolVar(&planNoHeaders, "no-headers", false, "Omit headers in table output")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Narrate the pass to stderr")
	_ = planCmd.MarkFlagRequired("endpoint")
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the changes a reconciliation cycle would apply",
	Long: `Run a single reconciliation pass without mutating anything and
print the changes a live cycle would apply.

Unlike a dry-run cycle, a plan also suppresses power-on, so it is safe
to run against a production daemon.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.ValidateFormat(planFormat); err != nil {
			return err
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(planFormat),
			NoHeaders: planNoHeaders,
		})
		if err != nil {
			return err
		}

		narration := io.Discard
		if planVerbose {
			narration = os.Stderr
		}
		log := cyclelog.New(narration, os.Stderr)

		cfg := reconcile.Config{PlanPath: planFile}
		changes, err := reconcile.Preview(context.Background(), planEndpoint, cfg, log)
		if err != nil {
			return fmt.Errorf("plan failed: %w", err)
		}

		formatted, err := formatter.FormatChanges(changes)
		if err != nil {
			return err
		}

		fmt.Print(formatted)
		return nil
	},
}
