// Package loader provides functions for loading ReconcilePlan resources
// from YAML files.
package loader

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/harrow/api/v1alpha1"
)

// ErrConfigUnreadable indicates the desired-state document is missing,
// unparsable, or yields zero usable records. The reconciliation cycle
// treats it as a warning and skips the pass rather than stopping.
var ErrConfigUnreadable = errors.New("desired state unreadable")

// LoadFromFile loads a ReconcilePlan resource from a YAML file.
// The file must be in the harrow.cofront.xyz/v1alpha1 format.
func LoadFromFile(path string) (*v1alpha1.ReconcilePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfigUnreadable, path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads a ReconcilePlan resource from YAML bytes.
// The YAML must be in the harrow.cofront.xyz/v1alpha1 format.
//
// Validation here is structural only: the envelope must match, every
// record needs a name, and at least one record must be present. The
// cpu/ram/start values are free-form strings interpreted at reconcile
// time, so a malformed number does not fail the load.
func LoadFromYAML(data []byte) (*v1alpha1.ReconcilePlan, error) {
	var plan v1alpha1.ReconcilePlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling YAML: %v", ErrConfigUnreadable, err)
	}

	if plan.APIVersion == "" {
		return nil, fmt.Errorf("%w: missing required field: apiVersion", ErrConfigUnreadable)
	}
	if plan.Kind == "" {
		return nil, fmt.Errorf("%w: missing required field: kind", ErrConfigUnreadable)
	}

	expectedAPIVersion := v1alpha1.GroupName + "/" + v1alpha1.Version
	if plan.APIVersion != expectedAPIVersion {
		return nil, fmt.Errorf("%w: unsupported apiVersion: %s (expected: %s)",
			ErrConfigUnreadable, plan.APIVersion, expectedAPIVersion)
	}
	if plan.Kind != v1alpha1.ReconcilePlanKind {
		return nil, fmt.Errorf("%w: unsupported kind: %s (expected: %s)",
			ErrConfigUnreadable, plan.Kind, v1alpha1.ReconcilePlanKind)
	}

	if len(plan.Records) == 0 {
		return nil, fmt.Errorf("%w: plan contains no records", ErrConfigUnreadable)
	}
	for i, rec := range plan.Records {
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: records[%d].name is required", ErrConfigUnreadable, i)
		}
	}

	// Record names are deliberately NOT normalized: inventory matching
	// uses exact equality, so the name must be taken as written.
	return &plan, nil
}
