package libvirt

import (
	"fmt"
	"sync"

	"github.com/digitalocean/go-libvirt"
)

// mockLibvirt is a mock implementation of the inventoryClient and
// reconfigureClient interfaces for testing.
type mockLibvirt struct {
	mu sync.Mutex

	// Configurable behavior
	connectListAllDomainsFunc func(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error)
	domainGetInfoFunc         func(dom libvirt.Domain) (uint8, uint64, uint64, uint16, uint64, error)
	domainLookupByNameFunc    func(name string) (libvirt.Domain, error)
	domainGetXMLDescFunc      func(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error)
	domainDefineXMLFunc       func(xml string) (libvirt.Domain, error)

	// Call tracking
	domainDefineXMLCalls []string
	domainCreateCalls    chan libvirt.Domain
}

func newMockLibvirt() *mockLibvirt {
	m := &mockLibvirt{
		domainCreateCalls: make(chan libvirt.Domain, 8),
	}

	m.connectListAllDomainsFunc = func(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
		return nil, 0, nil
	}
	m.domainGetInfoFunc = func(dom libvirt.Domain) (uint8, uint64, uint64, uint16, uint64, error) {
		// shutoff, 2 GiB max, 2 GiB current (KiB), 2 vcpus
		return 5, 2097152, 2097152, 2, 0, nil
	}
	m.domainLookupByNameFunc = func(name string) (libvirt.Domain, error) {
		return libvirt.Domain{Name: name}, nil
	}
	m.domainGetXMLDescFunc = func(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error) {
		return fmt.Sprintf(`<domain type="kvm"><name>%s</name><memory unit="KiB">2097152</memory><vcpu>2</vcpu><os><type>hvm</type></os></domain>`, dom.Name), nil
	}
	m.domainDefineXMLFunc = func(xml string) (libvirt.Domain, error) {
		return libvirt.Domain{}, nil
	}

	return m
}

func (m *mockLibvirt) ConnectListAllDomains(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectListAllDomainsFunc(needResults, flags)
}

func (m *mockLibvirt) DomainGetInfo(dom libvirt.Domain) (uint8, uint64, uint64, uint16, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainGetInfoFunc(dom)
}

func (m *mockLibvirt) DomainLookupByName(name string) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainLookupByNameFunc(name)
}

func (m *mockLibvirt) DomainGetXMLDesc(dom libvirt.Domain, flags libvirt.DomainXMLFlags) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainGetXMLDescFunc(dom, flags)
}

func (m *mockLibvirt) DomainDefineXML(xml string) (libvirt.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.domainDefineXMLCalls = append(m.domainDefineXMLCalls, xml)
	return m.domainDefineXMLFunc(xml)
}

func (m *mockLibvirt) DomainCreate(dom libvirt.Domain) error {
	m.domainCreateCalls <- dom
	return nil
}
