package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "merge",
	})
}

// fileLogger logs to path so the alternate screen stays intact. Logging is
// discarded when the file cannot be opened. The returned func closes it.
func fileLogger(path string) (*log.Logger, func()) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return newLogger(io.Discard), func() {}
		}
		path = filepath.Join(home, path[1:])
	}
	if path == "" {
		return newLogger(io.Discard), func() {}
	}

	//nolint:errcheck // Best-effort directory creation, open reports the failure
	os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}
