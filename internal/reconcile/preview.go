package reconcile

import (
	"context"
	"fmt"

	"github.com/jbweber/harrow/internal/cyclelog"
	harrowlibvirt "github.com/jbweber/harrow/internal/libvirt"
	"github.com/jbweber/harrow/internal/loader"
)

// Preview runs a single reconciliation pass without mutating anything
// and returns the changes that a live cycle would apply. Narration goes
// to the supplied logger instead of rotating cycle files.
//
// Unlike the agent loop, a preview treats an unreachable daemon or an
// unreadable plan as a hard error: there is nothing useful to report
// without them.
func Preview(ctx context.Context, endpoint string, cfg Config, log *cyclelog.Logger) ([]Change, error) {
	client := harrowlibvirt.NewClient(endpoint, 0)
	defer func() {
		_ = client.Close()
	}()

	return previewWithDeps(ctx, cfg, client, log)
}

// previewWithDeps runs the preview with injected dependencies.
func previewWithDeps(ctx context.Context, cfg Config, hv hypervisor, log *cyclelog.Logger) ([]Change, error) {
	// Previews never mutate: no reconfiguration, no power-on.
	cfg.DryRun = true
	cfg.SkipPowerOn = true

	if err := hv.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	plan, err := loader.LoadFromFile(cfg.PlanPath)
	if err != nil {
		return nil, err
	}

	cy := newCycle(log)
	for _, rec := range plan.Records {
		reconcileRecord(cy, cfg, hv, rec)
	}

	if cy.errors > 0 {
		return cy.changes, fmt.Errorf("preview finished with %d error(s)", cy.errors)
	}

	return cy.changes, nil
}
