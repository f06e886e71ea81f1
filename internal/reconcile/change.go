package reconcile

// Change records one dimension of one VM that differed from its desired
// state during a pass. The run log ends each cycle with a summary of
// them, and the plan command formats the collected set for preview.
type Change struct {
	// VM is the inventory name of the affected machine.
	VM string `json:"vm" yaml:"vm"`

	// Field is the changed dimension: "vcpus" or "memory".
	Field string `json:"field" yaml:"field"`

	// Current is the observed value at query time.
	Current string `json:"current" yaml:"current"`

	// Desired is the value the plan requested.
	Desired string `json:"desired" yaml:"desired"`

	// Applied reports whether the reconfiguration was actually issued;
	// false in dry-run mode or when the apply call failed.
	Applied bool `json:"applied" yaml:"applied"`
}
