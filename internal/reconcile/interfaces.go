package reconcile

import (
	"context"

	harrowlibvirt "github.com/jbweber/harrow/internal/libvirt"
)

// hypervisor defines the remote-daemon operations the reconciliation
// loop needs.
//
// In production, this is satisfied by *internal/libvirt.Client.
// In tests, this is satisfied by mock implementations.
type hypervisor interface {
	// Connect establishes the connection, reusing an open one that
	// still answers a ping.
	Connect(ctx context.Context) error

	// FindShutoffByName queries for shut-off VMs with the given name.
	FindShutoffByName(name string) ([]harrowlibvirt.VMInfo, error)

	// Reconfigure applies a coalesced CPU/memory change in one call.
	Reconfigure(name string, change harrowlibvirt.ChangeSet) error

	// PowerOn dispatches a power-on request without awaiting the
	// start task's outcome.
	PowerOn(name string) error
}
