// Package cyclelog provides the per-cycle log files the reconciliation
// agent narrates into.
//
// Every cycle opens a fresh pair of plain-text files named after the
// cycle start time, Output-<timestamp>.txt and Error-<timestamp>.txt.
// Informational and warning lines go to the output file; error lines go
// to both, so the output file stays a complete narration of the cycle.
// Each line is formatted "2006-01-02 15:04:05 LEVEL: message".
//
// Retention is count-based: Prune keeps the 10 most recent files per
// category and deletes the rest.
package cyclelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// fileTimestampFormat names the per-cycle log files. It sorts
	// lexically in chronological order, which Prune relies on.
	fileTimestampFormat = "20060102-150405"

	// lineTimestampFormat prefixes every log line.
	lineTimestampFormat = "2006-01-02 15:04:05"

	// outputPrefix and errorPrefix name the two file categories.
	outputPrefix = "Output-"
	errorPrefix  = "Error-"
)

// Logger writes timestamped, leveled lines to an output stream and an
// error stream. It is not safe for concurrent use; the reconciliation
// loop is single-threaded by design.
type Logger struct {
	out io.Writer
	err io.Writer

	outFile *os.File
	errFile *os.File

	// now is swapped in tests for deterministic line prefixes.
	now func() time.Time
}

// New returns a Logger over arbitrary writers. Used by tests and by
// one-shot commands that narrate to stderr instead of files.
func New(out, errw io.Writer) *Logger {
	return &Logger{out: out, err: errw, now: time.Now}
}

// Open creates the Output-/Error- file pair for a cycle starting at ts
// inside dir, creating dir if needed.
func Open(dir string, ts time.Time) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	stamp := ts.Format(fileTimestampFormat)

	outFile, err := os.Create(filepath.Join(dir, outputPrefix+stamp+".txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to create output log: %w", err)
	}

	errFile, err := os.Create(filepath.Join(dir, errorPrefix+stamp+".txt"))
	if err != nil {
		_ = outFile.Close()
		return nil, fmt.Errorf("failed to create error log: %w", err)
	}

	return &Logger{
		out:     outFile,
		err:     errFile,
		outFile: outFile,
		errFile: errFile,
		now:     time.Now,
	}, nil
}

// Infof writes an INFO line to the output log.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(l.out, "INFO", format, args)
}

// Warningf writes a WARNING line to the output log.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.write(l.out, "WARNING", format, args)
}

// Errorf writes an ERROR line to both the output and the error log.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(l.out, "ERROR", format, args)
	l.write(l.err, "ERROR", format, args)
}

func (l *Logger) write(w io.Writer, level, format string, args []interface{}) {
	if w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s: %s\n", l.now().Format(lineTimestampFormat), level, msg)
}

// Close closes the underlying files, if any. Safe on writer-backed loggers.
func (l *Logger) Close() error {
	var firstErr error
	if l.outFile != nil {
		if err := l.outFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.outFile = nil
	}
	if l.errFile != nil {
		if err := l.errFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.errFile = nil
	}
	return firstErr
}
