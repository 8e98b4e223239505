package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/inkwash/config"
)

// OutputManager handles structured experiment output with CSV logging.
// A nil OutputManager is valid and discards everything.
type OutputManager struct {
	dir      string
	perfFile *os.File
	lodFile  *os.File

	perfHeaderWritten bool
	lodHeaderWritten  bool
}

// NewOutputManager creates an output manager rooted at dir. Returns nil if
// dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "lod.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating lod.csv: %w", err)
	}
	om.lodFile = f

	return om, nil
}

// WriteConfig saves the current configuration snapshot next to the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePerf appends a window stats record to perf.csv.
func (om *OutputManager) WritePerf(stats WindowStats) error {
	if om == nil {
		return nil
	}
	rows := []WindowStats{stats}
	if !om.perfHeaderWritten {
		om.perfHeaderWritten = true
		return gocsv.MarshalFile(&rows, om.perfFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.perfFile)
}

// WriteLOD appends a quality-tier decision to lod.csv.
func (om *OutputManager) WriteLOD(rec LODRecord) error {
	if om == nil {
		return nil
	}
	rows := []LODRecord{rec}
	if !om.lodHeaderWritten {
		om.lodHeaderWritten = true
		return gocsv.MarshalFile(&rows, om.lodFile)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.lodFile)
}

// Close flushes and closes the CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if err := om.perfFile.Close(); err != nil {
		firstErr = err
	}
	if err := om.lodFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
