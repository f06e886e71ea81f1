package libvirt

import (
	"fmt"

	"github.com/digitalocean/go-libvirt"
	"libvirt.org/go/libvirtxml"
)

// ChangeSet describes a coalesced reconfiguration request. A nil field
// means that dimension is left untouched. CPU and memory changes are
// always applied together in a single define, never as two calls.
type ChangeSet struct {
	NumCPU    *int
	MemoryMiB *uint64
}

// Empty reports whether the change set requests no changes at all.
func (cs ChangeSet) Empty() bool {
	return cs.NumCPU == nil && cs.MemoryMiB == nil
}

// String renders the change set for log narration.
func (cs ChangeSet) String() string {
	switch {
	case cs.NumCPU != nil && cs.MemoryMiB != nil:
		return fmt.Sprintf("vcpus=%d memory=%dMiB", *cs.NumCPU, *cs.MemoryMiB)
	case cs.NumCPU != nil:
		return fmt.Sprintf("vcpus=%d", *cs.NumCPU)
	case cs.MemoryMiB != nil:
		return fmt.Sprintf("memory=%dMiB", *cs.MemoryMiB)
	default:
		return "no changes"
	}
}

// reconfigureClient defines the libvirt operations needed to apply a
// ChangeSet and to power domains on.
type reconfigureClient interface {
	DomainLookupByName(name string) (libvirt.Domain, error)
	DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error)
	DomainDefineXML(xml string) (libvirt.Domain, error)
	DomainCreate(dom libvirt.Domain) error
}

// Reconfigure applies the change set to a shut-off domain by rewriting
// its persistent definition: the inactive domain XML is fetched, the
// vcpu/memory elements are edited, and the result is defined again in
// one call.
func (c *Client) Reconfigure(name string, change ChangeSet) error {
	if c.libvirt == nil {
		return fmt.Errorf("client not connected")
	}
	return reconfigure(c.libvirt, name, change)
}

func reconfigure(lv reconfigureClient, name string, change ChangeSet) error {
	if change.Empty() {
		return nil
	}

	dom, err := lv.DomainLookupByName(name)
	if err != nil {
		return fmt.Errorf("domain %s not found: %w", name, err)
	}

	xmlDesc, err := lv.DomainGetXMLDesc(dom, libvirt.DomainXMLInactive)
	if err != nil {
		return fmt.Errorf("failed to fetch XML for domain %s: %w", name, err)
	}

	updated, err := applyChangeSet(xmlDesc, change)
	if err != nil {
		return fmt.Errorf("failed to edit XML for domain %s: %w", name, err)
	}

	if _, err := lv.DomainDefineXML(updated); err != nil {
		return fmt.Errorf("failed to redefine domain %s (%s): %w", name, change, err)
	}

	return nil
}

// applyChangeSet edits a domain XML document, replacing the vcpu count
// and/or memory size. Memory and currentMemory are kept in sync so the
// domain boots with the full allocation.
func applyChangeSet(xmlDesc string, change ChangeSet) (string, error) {
	domain := &libvirtxml.Domain{}
	if err := domain.Unmarshal(xmlDesc); err != nil {
		return "", fmt.Errorf("failed to parse domain XML: %w", err)
	}

	if change.MemoryMiB != nil {
		domain.Memory = &libvirtxml.DomainMemory{
			Value: uint(*change.MemoryMiB),
			Unit:  "MiB",
		}
		domain.CurrentMemory = &libvirtxml.DomainCurrentMemory{
			Value: uint(*change.MemoryMiB),
			Unit:  "MiB",
		}
	}

	if change.NumCPU != nil {
		if domain.VCPU == nil {
			domain.VCPU = &libvirtxml.DomainVCPU{}
		}
		domain.VCPU.Value = uint(*change.NumCPU)
		// Drop any stale "current" attribute so the new count is not
		// capped by the old online-vcpu value.
		domain.VCPU.Current = 0
	}

	updated, err := domain.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to serialize domain XML: %w", err)
	}

	return updated, nil
}

// PowerOn submits a power-on request for the named domain and returns
// once the request is dispatched. The start task's outcome is
// intentionally unobserved: nothing in the reconciliation cycle depends
// on whether the domain actually comes up. Only a failed lookup is
// reported, since that happens before dispatch.
func (c *Client) PowerOn(name string) error {
	if c.libvirt == nil {
		return fmt.Errorf("client not connected")
	}
	return powerOn(c.libvirt, name)
}

func powerOn(lv reconfigureClient, name string) error {
	dom, err := lv.DomainLookupByName(name)
	if err != nil {
		return fmt.Errorf("domain %s not found: %w", name, err)
	}

	go func() {
		// Fire and forget.
		_ = lv.DomainCreate(dom)
	}()

	return nil
}
