package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"forest-sim/internal/config"
)

// Writer handles experiment output: census.csv plus a config snapshot.
type Writer struct {
	dir           string
	censusFile    *os.File
	headerWritten bool
}

// NewWriter creates the output directory and opens census.csv.
// Returns nil if dir is empty (output disabled).
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "census.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating census.csv: %w", err)
	}
	return &Writer{dir: dir, censusFile: f}, nil
}

// WriteConfig saves the run configuration as YAML.
func (w *Writer) WriteConfig(cfg *config.Config) error {
	if w == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(w.dir, "config.yaml"))
}

// WriteRecord appends one census row.
func (w *Writer) WriteRecord(r Record) error {
	if w == nil {
		return nil
	}
	records := []Record{r}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.censusFile); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.censusFile); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

// Path returns the location of name inside the output directory.
func (w *Writer) Path(name string) string {
	if w == nil {
		return ""
	}
	return filepath.Join(w.dir, name)
}

// Dir returns the output directory path.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Close flushes and closes the output files.
func (w *Writer) Close() error {
	if w == nil || w.censusFile == nil {
		return nil
	}
	return w.censusFile.Close()
}
