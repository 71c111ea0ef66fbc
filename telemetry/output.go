package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/homeward/config"
)

// OutputManager handles structured run output: a CSV log of the per-dawn
// samples plus a snapshot of the active configuration. A restart rotates
// both to numbered files so runs never mix.
type OutputManager struct {
	dir         string
	samplesFile *os.File
	run         int

	// Track if the CSV header has been written
	headerWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, run: 1}
	if err := om.openSamples(); err != nil {
		return nil, err
	}
	return om, nil
}

// runName decorates a file name with the run number. The first run keeps
// the plain name.
func (om *OutputManager) runName(name string) string {
	if om.run <= 1 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), om.run, ext)
}

func (om *OutputManager) openSamples() error {
	f, err := os.Create(filepath.Join(om.dir, om.runName("samples.csv")))
	if err != nil {
		return fmt.Errorf("creating samples csv: %w", err)
	}
	om.samplesFile = f
	om.headerWritten = false
	return nil
}

// NewRun rotates the output files for a restarted simulation: the samples
// CSV is closed and a numbered one opened, and the active config is
// snapshotted alongside it.
func (om *OutputManager) NewRun(cfg *config.Config) error {
	if om == nil {
		return nil
	}

	if err := om.samplesFile.Close(); err != nil {
		return fmt.Errorf("closing samples csv: %w", err)
	}
	om.run++
	if err := om.openSamples(); err != nil {
		return err
	}
	return om.WriteConfig(cfg)
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, om.runName("config.yaml"))
	return cfg.WriteYAML(configPath)
}

// WriteSample appends a sample record to samples.csv.
func (om *OutputManager) WriteSample(s Sample) error {
	if om == nil {
		return nil
	}

	records := []Sample{s}

	if !om.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.samplesFile); err != nil {
			return fmt.Errorf("writing sample: %w", err)
		}
		om.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.samplesFile); err != nil {
			return fmt.Errorf("writing sample: %w", err)
		}
	}

	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.samplesFile.Close()
}
