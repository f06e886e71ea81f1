package reconcile

import (
	"bytes"
	"context"

	"github.com/jbweber/harrow/internal/cyclelog"
	harrowlibvirt "github.com/jbweber/harrow/internal/libvirt"
)

// reconfigureCall captures the arguments of one Reconfigure invocation.
type reconfigureCall struct {
	name   string
	change harrowlibvirt.ChangeSet
}

// mockHypervisor is a mock implementation of the hypervisor interface
// for testing.
type mockHypervisor struct {
	// Configurable behavior
	connectFunc     func(ctx context.Context) error
	findFunc        func(name string) ([]harrowlibvirt.VMInfo, error)
	reconfigureFunc func(name string, change harrowlibvirt.ChangeSet) error
	powerOnFunc     func(name string) error

	// Call tracking
	connectCalls     int
	findCalls        []string
	reconfigureCalls []reconfigureCall
	powerOnCalls     []string
}

// newMockHypervisor creates a mock with default behavior: connection
// succeeds, inventory is empty, mutations succeed.
func newMockHypervisor() *mockHypervisor {
	return &mockHypervisor{
		connectFunc: func(ctx context.Context) error { return nil },
		findFunc: func(name string) ([]harrowlibvirt.VMInfo, error) {
			return nil, nil
		},
		reconfigureFunc: func(name string, change harrowlibvirt.ChangeSet) error { return nil },
		powerOnFunc:     func(name string) error { return nil },
	}
}

func (m *mockHypervisor) Connect(ctx context.Context) error {
	m.connectCalls++
	return m.connectFunc(ctx)
}

func (m *mockHypervisor) FindShutoffByName(name string) ([]harrowlibvirt.VMInfo, error) {
	m.findCalls = append(m.findCalls, name)
	return m.findFunc(name)
}

func (m *mockHypervisor) Reconfigure(name string, change harrowlibvirt.ChangeSet) error {
	m.reconfigureCalls = append(m.reconfigureCalls, reconfigureCall{name: name, change: change})
	return m.reconfigureFunc(name, change)
}

func (m *mockHypervisor) PowerOn(name string) error {
	m.powerOnCalls = append(m.powerOnCalls, name)
	return m.powerOnFunc(name)
}

// newTestCycle builds a cycle whose narration lands in buffers the test
// can inspect.
func newTestCycle() (*cycle, *bytes.Buffer, *bytes.Buffer) {
	var out, errw bytes.Buffer
	return newCycle(cyclelog.New(&out, &errw)), &out, &errw
}

// shutoffVM is a convenience constructor for inventory entries.
func shutoffVM(name string, cpus int, memoryMiB uint64) harrowlibvirt.VMInfo {
	return harrowlibvirt.VMInfo{
		Name:      name,
		State:     "shutoff",
		NumCPU:    cpus,
		MemoryMiB: memoryMiB,
	}
}
