package v1alpha1

// ReconcilePlan declares the desired CPU, memory, and power configuration
// for a set of virtual machines.
//
// A plan is read fresh at the start of every reconciliation cycle and
// discarded when the cycle ends. Records are processed in document order.
type ReconcilePlan struct {
	// TypeMeta contains the API version and kind.
	TypeMeta `json:",inline" yaml:",inline"`

	// ObjectMeta contains metadata like name, labels, annotations.
	// +optional
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Records is the ordered list of per-VM desired-state records.
	Records []Record `json:"records" yaml:"records"`
}

// Record is the desired state for a single virtual machine.
//
// CPU, RAM, and Start are kept as raw strings: an empty value means
// "no change requested" for that dimension, and only the typed accessors
// in helpers.go interpret the contents. The loader performs structural
// validation only; a malformed numeric value surfaces when the record
// is reconciled, not when the plan is loaded.
type Record struct {
	// Name is the VM identity key, matched by exact equality against
	// the inventory name. Required.
	Name string `json:"name" yaml:"name"`

	// CPU is the target vCPU count as a numeric string.
	// Empty means the CPU count is left alone.
	// +optional
	CPU string `json:"cpu,omitempty" yaml:"cpu,omitempty"`

	// RAM is the target memory size in GiB as a numeric string.
	// Empty means the memory size is left alone.
	// +optional
	RAM string `json:"ram,omitempty" yaml:"ram,omitempty"`

	// Start declares the power intent applied after a reconfiguration.
	// Recognized values are "yes" and "no"; anything else is treated
	// as invalid and no power action is taken.
	// +optional
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
}

// PowerIntent is the interpreted value of a Record's Start field.
type PowerIntent string

const (
	// PowerIntentYes requests a power-on after a successful reconfiguration.
	PowerIntentYes PowerIntent = "yes"
	// PowerIntentNo requests that the VM stay powered off.
	PowerIntentNo PowerIntent = "no"
	// PowerIntentInvalid covers every unrecognized Start value,
	// including the empty string.
	PowerIntentInvalid PowerIntent = "invalid"
)
