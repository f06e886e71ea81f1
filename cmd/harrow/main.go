package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "harrow",
	Short: "Harrow - Libvirt VM reconciliation agent",
	Long: `Harrow continuously reconciles powered-off libvirt VMs against a
declarative desired-state document.

Each cycle it loads the desired-state YAML, compares every record
against the matching powered-off VM, applies CPU and memory changes in
a single reconfiguration, and optionally powers the VM back on.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(testConnCmd)
}
