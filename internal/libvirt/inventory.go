package libvirt

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"
)

// VMInfo is the live state of a virtual machine as reported by the
// remote daemon at query time. It becomes stale immediately after being
// read; a later reconfiguration operates on a potentially-changed
// domain, which the reconciliation design accepts.
type VMInfo struct {
	Name      string
	State     string
	NumCPU    int
	MemoryMiB uint64
}

// inventoryClient defines the libvirt operations needed for inventory
// queries. Satisfied by *libvirt.Libvirt in production and by mocks in
// tests.
type inventoryClient interface {
	ConnectListAllDomains(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error)
	DomainGetInfo(dom libvirt.Domain) (state uint8, maxMem uint64, memory uint64, nrVirtCPU uint16, cpuTime uint64, err error)
}

// FindShutoffByName queries the remote daemon for shut-off domains whose
// name matches. The daemon is asked fresh on every call; results are
// never cached.
//
// The returned slice may contain more than one entry if the daemon
// reports several matching domains; callers are expected to re-verify
// name equality rather than trust the filter.
func (c *Client) FindShutoffByName(name string) ([]VMInfo, error) {
	if c.libvirt == nil {
		return nil, fmt.Errorf("client not connected")
	}
	return findShutoffByName(c.libvirt, name)
}

func findShutoffByName(lv inventoryClient, name string) ([]VMInfo, error) {
	// NeedResults: 1 means populate the domains slice.
	domains, _, err := lv.ConnectListAllDomains(1, libvirt.ConnectListDomainsShutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list shut-off domains: %w", err)
	}

	var vms []VMInfo
	for _, domain := range domains {
		if domain.Name != name {
			continue
		}

		state, _, memory, nrVirtCPU, _, err := lv.DomainGetInfo(domain)
		if err != nil {
			return nil, fmt.Errorf("failed to get info for domain %s: %w", domain.Name, err)
		}

		vms = append(vms, VMInfo{
			Name:  domain.Name,
			State: stateToString(int32(state)),
			// DomainGetInfo reports memory in KiB.
			MemoryMiB: memory / 1024,
			NumCPU:    int(nrVirtCPU),
		})
	}

	return vms, nil
}

// stateToString converts libvirt domain state to human-readable string.
func stateToString(state int32) string {
	switch state {
	case 0:
		return "no state"
	case 1:
		return "running"
	case 2:
		return "blocked"
	case 3:
		return "paused"
	case 4:
		return "shutdown"
	case 5:
		return "shutoff"
	case 6:
		return "crashed"
	case 7:
		return "pmsuspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}
