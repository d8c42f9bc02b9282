package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/manifoldweb/simlab/config"
)

// OutputManager handles structured run output with CSV logging. A nil
// OutputManager is valid and discards everything.
type OutputManager struct {
	dir        string
	ticksFile  *os.File
	agentsFile *os.File

	// Track if headers have been written
	ticksHeaderWritten  bool
	agentsHeaderWritten bool
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

	om := &OutputManager{dir: dir}

	ticksPath := filepath.Join(dir, "ticks.csv")
	f, err := os.Create(ticksPath)
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	om.ticksFile = f

	agentsPath := filepath.Join(dir, "agents.csv")
	f, err = os.Create(agentsPath)
	if err != nil {
		om.ticksFile.Close()
		return nil, fmt.Errorf("creating agents.csv: %w", err)
	}
	om.agentsFile = f

	return om, nil
}

// WriteConfig saves the run's configuration as YAML next to the CSV logs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTickStats appends a model-level row to ticks.csv.
func (om *OutputManager) WriteTickStats(ts TickStats) error {
	if om == nil {
		return nil
	}

	records := []TickStats{ts}

	if !om.ticksHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing tick stats: %w", err)
		}
		om.ticksHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.ticksFile); err != nil {
			return fmt.Errorf("writing tick stats: %w", err)
		}
	}

	return nil
}

// WriteAgentRow appends a per-agent row to agents.csv.
func (om *OutputManager) WriteAgentRow(row AgentRow) error {
	if om == nil {
		return nil
	}

	records := []AgentRow{row}

	if !om.agentsHeaderWritten {
		if err := gocsv.Marshal(records, om.agentsFile); err != nil {
			return fmt.Errorf("writing agent row: %w", err)
		}
		om.agentsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.agentsFile); err != nil {
			return fmt.Errorf("writing agent row: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.ticksFile != nil {
		if err := om.ticksFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.agentsFile != nil {
		if err := om.agentsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
