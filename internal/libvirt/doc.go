// Package libvirt provides a client wrapper for the remote libvirt daemon.
//
// This package wraps github.com/digitalocean/go-libvirt to provide:
//   - Remote connection management (connect, reuse, ping, disconnect)
//   - Inventory queries for shut-off domains by name
//   - Coalesced CPU/memory reconfiguration via domain XML rewrite
//   - Fire-and-forget domain power-on
//
// Connection Management:
//
// The package dials the remote daemon over TCP ("host" or "host:port",
// port 16509 by default). Connect may be called every cycle; an open
// connection that still answers a ping is reused instead of redialed:
//
//	client := libvirt.NewClient("hv01.example.com", 0)
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Reconfiguration:
//
// CPU and memory changes are combined into a single ChangeSet and
// applied in one define call against the inactive domain definition:
//
//	cpus := 4
//	mem := uint64(8192)
//	err := client.Reconfigure("web01", libvirt.ChangeSet{
//	    NumCPU:    &cpus,
//	    MemoryMiB: &mem,
//	})
//
// Consumer-Side Interfaces:
//
// Consumers (internal/reconcile) define their own interface specifying
// only the operations they need; *Client satisfies it implicitly,
// enabling clean dependency injection in tests.
package libvirt
