package reconcile

import (
	"github.com/jbweber/harrow/api/v1alpha1"
)

// reconcileRecord runs one desired-state record through the pipeline:
// inventory match, diff and apply, then power intent.
func reconcileRecord(cy *cycle, cfg Config, hv hypervisor, rec v1alpha1.Record) {
	cy.infof("processing record %q", rec.Name)

	vms, err := hv.FindShutoffByName(rec.Name)
	if err != nil {
		cy.errorf("inventory query for %q failed: %v", rec.Name, err)
		return
	}

	if len(vms) == 0 {
		cy.infof("no powered-off VM named %q found, skipping", rec.Name)
		return
	}

	for _, vm := range vms {
		// Re-verify name equality even though the query filtered on it.
		// The remote query contract is not trusted to return exact
		// matches only.
		if vm.Name != rec.Name {
			cy.warningf("VM %q not uniquely identified by record %q, skipping", vm.Name, rec.Name)
			continue
		}

		changed := applyRecord(cy, cfg, hv, rec, vm)
		applyPowerIntent(cy, cfg, hv, rec, vm.Name, changed)
	}
}
