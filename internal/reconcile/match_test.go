package reconcile

import (
	"errors"
	"strings"
	"testing"

	"github.com/jbweber/harrow/api/v1alpha1"
	harrowlibvirt "github.com/jbweber/harrow/internal/libvirt"
)

func TestReconcileRecord_ZeroMatchesIsNotAnError(t *testing.T) {
	cy, out, _ := newTestCycle()
	hv := newMockHypervisor()

	reconcileRecord(cy, Config{}, hv, v1alpha1.Record{Name: "ghost", CPU: "2"})

	if cy.errors != 0 {
		t.Errorf("Expected zero matches to not count as error, got %d", cy.errors)
	}
	if !strings.Contains(out.String(), `no powered-off VM named "ghost" found`) {
		t.Errorf("Expected skip narration, got %q", out.String())
	}
	if len(hv.reconfigureCalls) != 0 || len(hv.powerOnCalls) != 0 {
		t.Error("Expected no mutations for an unmatched record")
	}
}

func TestReconcileRecord_QueryFailureIsCountedError(t *testing.T) {
	cy, _, _ := newTestCycle()
	hv := newMockHypervisor()
	hv.findFunc = func(name string) ([]harrowlibvirt.VMInfo, error) {
		return nil, errors.New("connection reset")
	}

	reconcileRecord(cy, Config{}, hv, v1alpha1.Record{Name: "web01"})

	if cy.errors != 1 {
		t.Errorf("Expected 1 error for failed query, got %d", cy.errors)
	}
}

func TestReconcileRecord_NonExactMatchesSkippedWithWarning(t *testing.T) {
	// The query result is re-verified for exact name equality; the
	// remote filter is not trusted to return exact matches only.
	cy, out, _ := newTestCycle()
	hv := newMockHypervisor()
	hv.findFunc = func(name string) ([]harrowlibvirt.VMInfo, error) {
		return []harrowlibvirt.VMInfo{
			shutoffVM("web01-clone", 1, 1024),
			shutoffVM("web01", 1, 1024),
		}, nil
	}

	reconcileRecord(cy, Config{}, hv, v1alpha1.Record{Name: "web01", CPU: "2"})

	if !strings.Contains(out.String(), `VM "web01-clone" not uniquely identified`) {
		t.Errorf("Expected 'not uniquely identified' warning, got %q", out.String())
	}
	if cy.errors != 0 {
		t.Errorf("Expected ambiguous match to be a warning, not an error; got %d errors", cy.errors)
	}
	// Only the exact match proceeds.
	if len(hv.reconfigureCalls) != 1 || hv.reconfigureCalls[0].name != "web01" {
		t.Errorf("Expected exactly one reconfigure for web01, got %+v", hv.reconfigureCalls)
	}
}

// End-to-end: record {Name:"test", RAM:"", CPU:"+1", Start:"no"} against
// a powered-off VM with one vcpu. "+1" parses to 1, equal to actual, so
// nothing is reconfigured and nothing is powered on.
func TestReconcileRecord_ScenarioA_NoDifference(t *testing.T) {
	cy, _, _ := newTestCycle()
	hv := newMockHypervisor()
	hv.findFunc = func(name string) ([]harrowlibvirt.VMInfo, error) {
		return []harrowlibvirt.VMInfo{shutoffVM("test", 1, 1024)}, nil
	}

	reconcileRecord(cy, Config{}, hv, v1alpha1.Record{Name: "test", CPU: "+1", Start: "no"})

	if len(hv.reconfigureCalls) != 0 {
		t.Errorf("Expected no reconfigure when cpu already matches, got %d calls", len(hv.reconfigureCalls))
	}
	if len(hv.powerOnCalls) != 0 {
		t.Errorf("Expected no power-on, got %d calls", len(hv.powerOnCalls))
	}
	if cy.errors != 0 {
		t.Errorf("Expected no errors, got %d", cy.errors)
	}
}

func TestReconcileRecord_ScenarioA_WithDifference(t *testing.T) {
	cy, out, _ := newTestCycle()
	hv := newMockHypervisor()
	hv.findFunc = func(name string) ([]harrowlibvirt.VMInfo, error) {
		return []harrowlibvirt.VMInfo{shutoffVM("test", 2, 1024)}, nil
	}

	reconcileRecord(cy, Config{}, hv, v1alpha1.Record{Name: "test", CPU: "+1", Start: "no"})

	if len(hv.reconfigureCalls) != 1 {
		t.Fatalf("Expected 1 reconfigure call, got %d", len(hv.reconfigureCalls))
	}
	change := hv.reconfigureCalls[0].change
	if change.NumCPU == nil || *change.NumCPU != 1 {
		t.Errorf("Expected cpu target 1 (from '+1'), got %+v", change.NumCPU)
	}
	if len(hv.powerOnCalls) != 0 {
		t.Error("Expected no power-on with start 'no'")
	}
	if !strings.Contains(out.String(), "left powered off as requested") {
		t.Errorf("Expected explicit no-op narration, got %q", out.String())
	}
}

// End-to-end: record {Name:"test2", RAM:"+1", CPU:"", Start:"yes"} against
// a powered-off VM with 512 MiB. floor(512/1024)=0 GiB differs from 1, so
// memory is reconfigured to 1024 MiB and a power-on is issued.
func TestReconcileRecord_ScenarioB(t *testing.T) {
	cy, _, _ := newTestCycle()
	hv := newMockHypervisor()
	hv.findFunc = func(name string) ([]harrowlibvirt.VMInfo, error) {
		return []harrowlibvirt.VMInfo{shutoffVM("test2", 1, 512)}, nil
	}

	reconcileRecord(cy, Config{}, hv, v1alpha1.Record{Name: "test2", RAM: "+1", Start: "yes"})

	if len(hv.reconfigureCalls) != 1 {
		t.Fatalf("Expected 1 reconfigure call, got %d", len(hv.reconfigureCalls))
	}
	change := hv.reconfigureCalls[0].change
	if change.MemoryMiB == nil || *change.MemoryMiB != 1024 {
		t.Errorf("Expected memory target 1024 MiB, got %+v", change.MemoryMiB)
	}
	if change.NumCPU != nil {
		t.Errorf("Expected no cpu change, got %+v", change.NumCPU)
	}

	if len(hv.powerOnCalls) != 1 || hv.powerOnCalls[0] != "test2" {
		t.Errorf("Expected power-on for test2, got %+v", hv.powerOnCalls)
	}
	if cy.errors != 0 {
		t.Errorf("Expected no errors, got %d", cy.errors)
	}
}
