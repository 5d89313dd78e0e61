// Package logging sets up the diagnostic file logger. The TUI owns the
// terminal, so runtime diagnostics go to a file instead of stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a file-backed logger and its closer. When the log file cannot
// be created the returned logger drops everything and the closer is nil.
func Open(path string) (zerolog.Logger, io.Closer) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil
	}
	return zerolog.New(f).With().Timestamp().Logger(), f
}
