package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends generation statistics to a CSV file.
type CSVWriter struct {
	file          *os.File
	headerWritten bool
}

// NewCSVWriter creates (or truncates) the file at path.
// Returns nil if path is empty (output disabled).
func NewCSVWriter(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &CSVWriter{file: f}, nil
}

// Write appends one row. The header is written before the first row.
func (w *CSVWriter) Write(s GenerationStats) error {
	if w == nil {
		return nil
	}

	records := []GenerationStats{s}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// Path returns the file being written.
func (w *CSVWriter) Path() string {
	if w == nil {
		return ""
	}
	return w.file.Name()
}

// Close closes the file.
func (w *CSVWriter) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}

// ReadCSV loads all rows from a generations file.
func ReadCSV(path string) ([]GenerationStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var rows []GenerationStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
