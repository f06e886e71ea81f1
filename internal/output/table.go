package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/jbweber/harrow/internal/reconcile"
)

// TableFormatter formats changes as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatChanges formats a list of planned changes as a table.
func (f *TableFormatter) FormatChanges(changes []reconcile.Change) (string, error) {
	if len(changes) == 0 {
		return "No changes\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "VM\tFIELD\tCURRENT\tDESIRED\tAPPLIED")
	}

	for _, ch := range changes {
		applied := "no"
		if ch.Applied {
			applied = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ch.VM, ch.Field, ch.Current, ch.Desired, applied)
	}

	_ = w.Flush()
	return buf.String(), nil
}
