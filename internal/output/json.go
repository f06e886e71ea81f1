package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/harrow/internal/reconcile"
)

// JSONFormatter formats changes as JSON.
type JSONFormatter struct{}

// FormatChanges formats a list of planned changes as a JSON array.
func (f *JSONFormatter) FormatChanges(changes []reconcile.Change) (string, error) {
	if len(changes) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal changes to JSON: %w", err)
	}

	return string(data) + "\n", nil
}
