// Package report persists finished analyses as JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

// JSONWriter writes one pretty-printed JSON file per analysis under a
// dated output directory.
type JSONWriter struct {
	baseDir string
	logger  *logger.Logger
	nowFn   func() time.Time
}

var _ contracts.ReportWriter = (*JSONWriter)(nil)

// NewJSONWriter creates a writer rooted at baseDir.
func NewJSONWriter(baseDir string, log *logger.Logger) *JSONWriter {
	return &JSONWriter{
		baseDir: baseDir,
		logger:  log,
		nowFn:   time.Now,
	}
}

// WithClock pins the date used in directory and file names, for
// tests.
func (w *JSONWriter) WithClock(nowFn func() time.Time) *JSONWriter {
	w.nowFn = nowFn
	return w
}

// Write saves the analysis and returns the file path.
func (w *JSONWriter) Write(analysis *contracts.Analysis) (string, error) {
	datestamp := w.nowFn().Format("20060102")

	dir := filepath.Join(w.baseDir, datestamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(analysis, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_analysis_%s.json", analysis.Symbol, datestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"symbol": analysis.Symbol,
		"path":   path,
	}).Info("Report written")

	return path, nil
}
