package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDumpDir returns ~/.maze/dumps, or a relative dumps directory when
// the home directory is unavailable.
func DefaultDumpDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dumps"
	}
	return filepath.Join(home, ".maze", "dumps")
}

// WriteDump saves a dump report as <id>_<timestamp>.txt in dir and returns
// the file path.
func WriteDump(dir, id, report string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("dump: cannot create directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.txt", id, now.Format("20060102_150405.000"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(report), 0o600); err != nil {
		return "", fmt.Errorf("dump: cannot write %s: %w", path, err)
	}
	return path, nil
}
