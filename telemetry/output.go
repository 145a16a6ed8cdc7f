package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wormsoup/config"
)

// csvSink appends records to one CSV file, writing the header once.
type csvSink struct {
	name   string
	f      *os.File
	header bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, f: f}, nil
}

// write marshals records, a slice of csv-tagged structs.
func (s *csvSink) write(records any) error {
	var err error
	if !s.header {
		err = gocsv.Marshal(records, s.f)
		s.header = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, s.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager handles run output: window stats, events, perf and
// bookmarks as CSV, the effective config as YAML and snapshots as JSON.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	events    *csvSink
	perf      *csvSink
	bookmarks *csvSink
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); every method is safe on nil.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		name string
		dst  **csvSink
	}{
		{"telemetry.csv", &om.telemetry},
		{"events.csv", &om.events},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	} {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WriteEvents appends events to events.csv.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	return om.events.write(events)
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// WriteSnapshot saves a snapshot under the snapshots subdirectory.
func (om *OutputManager) WriteSnapshot(s *WorldSnapshot) (string, error) {
	if om == nil {
		return "", nil
	}
	return SaveSnapshot(s, filepath.Join(om.dir, "snapshots"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvSink{om.telemetry, om.events, om.perf, om.bookmarks} {
		if s == nil {
			continue
		}
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
