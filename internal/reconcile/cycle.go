package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jbweber/harrow/internal/cyclelog"
	harrowlibvirt "github.com/jbweber/harrow/internal/libvirt"
	"github.com/jbweber/harrow/internal/loader"
)

// Config holds the per-process reconciliation settings.
type Config struct {
	// PlanPath is where the ReconcilePlan document is read from at the
	// start of every cycle.
	PlanPath string

	// LogDir receives the per-cycle Output-/Error- file pairs.
	LogDir string

	// Interval is the blocking delay at the top of every cycle.
	Interval time.Duration

	// DryRun suppresses reconfiguration calls while keeping the full
	// log narration. It does NOT suppress power-on; see power.go.
	DryRun bool

	// SkipPowerOn suppresses power-on dispatch entirely. Set by the
	// plan command so previews never mutate anything.
	SkipPowerOn bool
}

// cycle is the per-cycle context: a fresh one is constructed for every
// pass and discarded at its end, so no reconciliation state survives
// from one cycle into the next.
type cycle struct {
	id      string
	log     *cyclelog.Logger
	errors  int
	changed map[string]struct{}
	changes []Change
}

func newCycle(log *cyclelog.Logger) *cycle {
	return &cycle{
		id:      uuid.NewString(),
		log:     log,
		changed: make(map[string]struct{}),
	}
}

func (cy *cycle) infof(format string, args ...interface{}) {
	cy.log.Infof(format, args...)
}

func (cy *cycle) warningf(format string, args ...interface{}) {
	cy.log.Warningf(format, args...)
}

// errorf narrates a failure and counts it toward the terminal check at
// the end of the cycle.
func (cy *cycle) errorf(format string, args ...interface{}) {
	cy.errors++
	cy.log.Errorf(format, args...)
}

func (cy *cycle) markChanged(name string) {
	cy.changed[name] = struct{}{}
}

func (cy *cycle) addChange(ch Change) {
	cy.changes = append(cy.changes, ch)
}

// Run drives the reconciliation loop against the remote daemon at
// endpoint until a cycle records an error. It only returns on failure;
// a healthy agent loops forever.
func Run(ctx context.Context, endpoint string, cfg Config) error {
	client := harrowlibvirt.NewClient(endpoint, 0)
	defer func() {
		_ = client.Close()
	}()

	return runWithDeps(ctx, cfg, client)
}

// runWithDeps runs the loop with injected dependencies.
// This allows for testing by accepting interfaces instead of concrete types.
func runWithDeps(ctx context.Context, cfg Config, hv hypervisor) error {
	// The controller has two states: running and halted. Every pass
	// ends with an explicit error-count check; the first cycle that
	// recorded any error halts the loop permanently.
	for {
		cy, err := runCycle(ctx, cfg, hv)
		if err != nil {
			// The cycle log itself could not be set up; there is
			// nowhere to narrate, so the loop halts.
			return err
		}

		if cy.errors > 0 {
			cy.log.Errorf("cycle %s finished with %d error(s); stopping reconciliation", cy.id, cy.errors)
			_ = cy.log.Close()
			return fmt.Errorf("reconciliation stopped after %d error(s)", cy.errors)
		}

		_ = cy.log.Close()
	}
}

// runCycle executes one full pass: sleep, fresh logs, prune, connect,
// load, reconcile every record.
func runCycle(ctx context.Context, cfg Config, hv hypervisor) (*cycle, error) {
	// The delay comes first, before the log paths for the cycle are
	// derived, so the file timestamps reflect when work actually began.
	time.Sleep(cfg.Interval)

	log, err := cyclelog.Open(cfg.LogDir, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to open cycle logs: %w", err)
	}

	cy := newCycle(log)
	cy.infof("starting reconciliation cycle %s", cy.id)
	if cfg.DryRun {
		cy.infof("test mode: reconfiguration calls will not be issued")
	}

	if err := cyclelog.Prune(cfg.LogDir, cyclelog.DefaultKeep); err != nil {
		cy.errorf("pruning rotated logs failed: %v", err)
	}

	if err := hv.Connect(ctx); err != nil {
		// Not yet fatal: the pass still runs, and the terminal check at
		// the end of the cycle decides whether the loop continues.
		cy.errorf("connection failed: %v", err)
	}

	runPass(cy, cfg, hv)

	cy.infof("cycle %s complete: %d VM(s) changed, %d error(s)", cy.id, len(cy.changed), cy.errors)
	return cy, nil
}

// runPass loads the plan and reconciles each record in order.
func runPass(cy *cycle, cfg Config, hv hypervisor) {
	plan, err := loader.LoadFromFile(cfg.PlanPath)
	if err != nil {
		cy.warningf("desired state not loaded, skipping pass: %v", err)
		return
	}

	cy.infof("loaded plan with %d record(s)", len(plan.Records))
	for _, rec := range plan.Records {
		reconcileRecord(cy, cfg, hv, rec)
	}
}
