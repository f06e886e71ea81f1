package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/harrow/internal/reconcile"
)

// YAMLFormatter formats changes as YAML.
type YAMLFormatter struct{}

// FormatChanges formats a list of planned changes as a YAML sequence.
func (f *YAMLFormatter) FormatChanges(changes []reconcile.Change) (string, error) {
	if len(changes) == 0 {
		return "", nil
	}

	data, err := yaml.Marshal(changes)
	if err != nil {
		return "", fmt.Errorf("failed to marshal changes to YAML: %w", err)
	}

	return string(data), nil
}
