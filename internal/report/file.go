package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Filename returns "<kind>_<YYYYMMDD_HHMMSS>.txt".
func Filename(kind string, at time.Time) string {
	return kind + "_" + at.Format("20060102_150405") + ".txt"
}

// Write stores content under dir using Filename and returns the path written.
// dir is created if needed.
func Write(dir, kind, content string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(kind, at))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
