package reconcile

import (
	"fmt"

	"github.com/jbweber/harrow/api/v1alpha1"
	harrowlibvirt "github.com/jbweber/harrow/internal/libvirt"
)

// applyRecord diffs the matched VM against its record and applies the
// needed changes in a single reconfiguration call. It returns whether
// the VM required a change this cycle; the power intent step is gated
// on that, not on desired state alone.
//
// In dry-run mode the narration is identical up to the point where the
// call would be issued; only the call itself is replaced by a test-mode
// message. The VM still counts as changed.
func applyRecord(cy *cycle, cfg Config, hv hypervisor, rec v1alpha1.Record, vm harrowlibvirt.VMInfo) bool {
	var (
		change  harrowlibvirt.ChangeSet
		pending []Change
	)

	if ram, set, err := rec.RAMGiB(); err != nil {
		cy.errorf("record %q: %v", rec.Name, err)
	} else if set {
		// Integer division: 2047 MiB is 1 GiB for comparison purposes.
		actualGiB := int(vm.MemoryMiB / 1024)
		if actualGiB != ram {
			cy.infof("VM %q memory is %d GiB, desired %d GiB", vm.Name, actualGiB, ram)
			mib := uint64(ram) * 1024
			change.MemoryMiB = &mib
			pending = append(pending, Change{
				VM:      vm.Name,
				Field:   "memory",
				Current: fmt.Sprintf("%d GiB", actualGiB),
				Desired: fmt.Sprintf("%d GiB", ram),
			})
		} else {
			cy.infof("VM %q memory already fine (%d GiB)", vm.Name, actualGiB)
		}
	}

	if cpu, set, err := rec.CPUValue(); err != nil {
		cy.errorf("record %q: %v", rec.Name, err)
	} else if set {
		if vm.NumCPU != cpu {
			cy.infof("VM %q has %d vcpus, desired %d", vm.Name, vm.NumCPU, cpu)
			cpuVal := cpu
			change.NumCPU = &cpuVal
			pending = append(pending, Change{
				VM:      vm.Name,
				Field:   "vcpus",
				Current: fmt.Sprintf("%d", vm.NumCPU),
				Desired: fmt.Sprintf("%d", cpu),
			})
		} else {
			cy.infof("VM %q vcpus already fine (%d)", vm.Name, vm.NumCPU)
		}
	}

	if change.Empty() {
		return false
	}

	applied := false
	if cfg.DryRun {
		cy.infof("VM %q NOT changed, Test Mode requested (%s)", vm.Name, change)
	} else {
		if err := hv.Reconfigure(vm.Name, change); err != nil {
			cy.errorf("reconfigure of %q (%s) failed: %v", vm.Name, change, err)
			for _, ch := range pending {
				cy.addChange(ch)
			}
			return false
		}
		cy.infof("VM %q reconfigured (%s)", vm.Name, change)
		applied = true
	}

	for _, ch := range pending {
		ch.Applied = applied
		cy.addChange(ch)
	}
	cy.markChanged(vm.Name)

	return true
}
