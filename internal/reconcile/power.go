package reconcile

import (
	"github.com/jbweber/harrow/api/v1alpha1"
)

// applyPowerIntent applies the record's declared power intent. It runs
// only when the VM was actually changed this cycle: a VM that needed no
// reconfiguration is never powered on, even when the record says yes.
//
// Dry-run mode does NOT gate power-on: test mode suppresses the
// reconfiguration call but not the start request. Previews that must
// not mutate anything set SkipPowerOn instead.
func applyPowerIntent(cy *cycle, cfg Config, hv hypervisor, rec v1alpha1.Record, vmName string, changed bool) {
	if !changed {
		return
	}

	switch rec.PowerIntentValue() {
	case v1alpha1.PowerIntentYes:
		if cfg.SkipPowerOn {
			cy.infof("VM %q power-on suppressed (preview)", vmName)
			return
		}
		if err := hv.PowerOn(vmName); err != nil {
			cy.errorf("power-on of %q failed: %v", vmName, err)
			return
		}
		cy.infof("VM %q power-on requested (task outcome not awaited)", vmName)
	case v1alpha1.PowerIntentNo:
		cy.infof("VM %q left powered off as requested", vmName)
	default:
		cy.warningf("VM %q has an invalid start configuration (%q), not powering on", vmName, rec.Start)
	}
}
