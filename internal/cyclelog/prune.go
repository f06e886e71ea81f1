package cyclelog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultKeep is how many rotated files are retained per category.
const DefaultKeep = 10

// Prune deletes rotated log files beyond the keep most recent per
// category (Output- and Error- are pruned independently). Recency is
// determined by the timestamp embedded in the file name, which matches
// creation order. A missing directory is not an error; there is simply
// nothing to prune yet.
func Prune(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read log directory %s: %w", dir, err)
	}

	for _, prefix := range []string{outputPrefix, errorPrefix} {
		if err := pruneCategory(dir, entries, prefix, keep); err != nil {
			return err
		}
	}

	return nil
}

func pruneCategory(dir string, entries []os.DirEntry, prefix string, keep int) error {
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".txt") {
			names = append(names, name)
		}
	}

	if len(names) <= keep {
		return nil
	}

	// Newest first; the timestamp in the name sorts chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names[keep:] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to prune log file %s: %w", name, err)
		}
	}

	return nil
}
