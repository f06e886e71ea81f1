package v1alpha1

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// GroupName is the API group for harrow resources.
	GroupName = "harrow.cofront.xyz"

	// Version is the API version.
	Version = "v1alpha1"

	// ReconcilePlanKind is the kind string for ReconcilePlan resources.
	ReconcilePlanKind = "ReconcilePlan"
)

// NewReconcilePlan creates a new ReconcilePlan with TypeMeta and ObjectMeta defaults.
func NewReconcilePlan(name string) *ReconcilePlan {
	return &ReconcilePlan{
		TypeMeta: TypeMeta{
			APIVersion: GroupName + "/" + Version,
			Kind:       ReconcilePlanKind,
		},
		ObjectMeta: ObjectMeta{
			Name:              name,
			UID:               uuid.New().String(),
			CreationTimestamp: Time{Time: time.Now()},
			Generation:        1,
		},
	}
}

// SetDefaultAPIVersion ensures the plan has the correct apiVersion and kind.
// Useful when loading from files that might be missing these fields.
func SetDefaultAPIVersion(plan *ReconcilePlan) {
	if plan.APIVersion == "" {
		plan.APIVersion = GroupName + "/" + Version
	}
	if plan.Kind == "" {
		plan.Kind = ReconcilePlanKind
	}
}

// CPUValue parses the record's CPU field.
// Returns (0, false, nil) when the field is empty, meaning no CPU change
// was requested. Leading "+" is accepted, so "+1" parses to 1. Zero and
// negative counts are rejected; a vcpu count must be at least 1.
func (r Record) CPUValue() (int, bool, error) {
	s := strings.TrimSpace(r.CPU)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid cpu value %q: %w", r.CPU, err)
	}
	if n <= 0 {
		return 0, false, fmt.Errorf("invalid cpu value %q: must be > 0", r.CPU)
	}
	return n, true, nil
}

// RAMGiB parses the record's RAM field as a GiB count.
// Returns (0, false, nil) when the field is empty, meaning no memory change
// was requested. Zero and negative counts are rejected.
func (r Record) RAMGiB() (int, bool, error) {
	s := strings.TrimSpace(r.RAM)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid ram value %q: %w", r.RAM, err)
	}
	if n <= 0 {
		return 0, false, fmt.Errorf("invalid ram value %q: must be > 0", r.RAM)
	}
	return n, true, nil
}

// PowerIntentValue interprets the record's Start field.
// Only the exact tokens "yes" and "no" (after trimming whitespace) are
// recognized; everything else, including the empty string, is invalid.
func (r Record) PowerIntentValue() PowerIntent {
	switch strings.TrimSpace(r.Start) {
	case "yes":
		return PowerIntentYes
	case "no":
		return PowerIntentNo
	default:
		return PowerIntentInvalid
	}
}
