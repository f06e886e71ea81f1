package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jbweber/harrow/internal/libvirt"
)

var testConnEndpoint string

func init() {
	testConnCmd.Flags().StringVar(&testConnEndpoint, "endpoint", "", "host:port of the libvirt daemon (required)")
	_ = testConnCmd.MarkFlagRequired("endpoint")
}

var testConnCmd = &cobra.Command{
	Use:   "test-conn",
	Short: "Test the libvirt connection",
	Long:  `Test connectivity to the remote libvirt daemon and display version information.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := libvirt.NewClient(testConnEndpoint, 5*time.Second)
		fmt.Printf("Testing connection to %s...\n", client.Endpoint())

		if err := client.Connect(context.Background()); err != nil {
			return fmt.Errorf("failed to connect to libvirt: %w", err)
		}
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close libvirt connection: %v\n", closeErr)
			}
		}()

		fmt.Println("✓ Connected to libvirt daemon")

		if err := client.Ping(); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}

		// Get libvirt version
		version, err := client.Libvirt().ConnectGetLibVersion()
		if err != nil {
			return fmt.Errorf("failed to get libvirt version: %w", err)
		}

		// Format version (libvirt returns version as an integer like 8006000 for 8.6.0)
		major := version / 1000000
		minor := (version % 1000000) / 1000
		patch := version % 1000

		fmt.Printf("✓ Libvirt version: %d.%d.%d\n", major, minor, patch)

		// Get hostname
		hostname, err := client.Libvirt().ConnectGetHostname()
		if err != nil {
			return fmt.Errorf("failed to get hostname: %w", err)
		}

		fmt.Printf("✓ Hypervisor hostname: %s\n", hostname)

		fmt.Println("\nConnection test successful!")
		return nil
	},
}
