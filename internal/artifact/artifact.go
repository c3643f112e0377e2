// Package artifact lays out the output directory of a traffic run: the
// capture, the per-PDU metrics, a text summary and run.json.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"

	"github.com/tturner/disgo/internal/metrics"
)

// RunMetadata describes one listen, sniff or emit run.
type RunMetadata struct {
	RunID     string    `json:"run_id"`
	Command   string    `json:"command"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`

	Mode       string `json:"mode,omitempty"`
	Address    string `json:"address,omitempty"`
	Interface  string `json:"interface,omitempty"`
	ExerciseID uint8  `json:"exercise_id,omitempty"`

	Stats    RunStats `json:"stats"`
	ExitCode int      `json:"exit_code"`
	Error    string   `json:"error,omitempty"`

	Artifacts ArtifactPaths `json:"artifacts"`
}

// RunStats is the part of a metrics summary kept in run.json.
type RunStats struct {
	TotalPDUs     int            `json:"total_pdus"`
	Decoded       int            `json:"decoded"`
	Failed        int            `json:"failed"`
	Bytes         int            `json:"bytes"`
	RatePerSec    float64        `json:"rate_per_sec"`
	AvgIntervalMs float64        `json:"avg_interval_ms"`
	P95IntervalMs float64        `json:"p95_interval_ms"`
	ByType        map[string]int `json:"by_type,omitempty"`
	ByErrorKind   map[string]int `json:"by_error_kind,omitempty"`
}

// ArtifactPaths holds file names relative to the output directory.
type ArtifactPaths struct {
	RunJSON    string `json:"run_json"`
	MetricsCSV string `json:"metrics_csv,omitempty"`
	SummaryTxt string `json:"summary_txt,omitempty"`
	PCAPFile   string `json:"pcap_file,omitempty"`
}

// OutputManager owns the output directory of a run.
type OutputManager struct {
	outputDir string
	runID     string
	metadata  *RunMetadata
}

// NewOutputManager creates outputDir if needed and starts a run for
// command.
func NewOutputManager(outputDir, command string) (*OutputManager, error) {
	now := time.Now()
	runID := xid.NewWithTime(now).String()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &OutputManager{
		outputDir: outputDir,
		runID:     runID,
		metadata: &RunMetadata{
			RunID:     runID,
			Command:   command,
			StartTime: now,
			Artifacts: ArtifactPaths{RunJSON: "run.json"},
		},
	}, nil
}

// OutputDir returns the output directory path.
func (m *OutputManager) OutputDir() string { return m.outputDir }

// RunID returns the run identifier.
func (m *OutputManager) RunID() string { return m.runID }

// Metadata returns the run metadata as written so far.
func (m *OutputManager) Metadata() RunMetadata { return *m.metadata }

// SetNetwork records the network mode and address the run used.
func (m *OutputManager) SetNetwork(mode, address string, exerciseID uint8) {
	m.metadata.Mode = mode
	m.metadata.Address = address
	m.metadata.ExerciseID = exerciseID
}

// SetInterface records the capture interface.
func (m *OutputManager) SetInterface(name string) {
	m.metadata.Interface = name
}

// PCAPPath returns the path the run's capture is written to and marks it
// as an artifact.
func (m *OutputManager) PCAPPath() string {
	name := fmt.Sprintf("capture_%s.pcap", m.runID)
	m.metadata.Artifacts.PCAPFile = name
	return filepath.Join(m.outputDir, name)
}

// MetricsPath returns the path of the metrics CSV and marks it as an
// artifact.
func (m *OutputManager) MetricsPath() string {
	name := fmt.Sprintf("metrics_%s.csv", m.runID)
	m.metadata.Artifacts.MetricsCSV = name
	return filepath.Join(m.outputDir, name)
}

// SummaryPath returns the path of the text summary.
func (m *OutputManager) SummaryPath() string {
	return filepath.Join(m.outputDir, fmt.Sprintf("summary_%s.txt", m.runID))
}

// RunJSONPath returns the path of run.json.
func (m *OutputManager) RunJSONPath() string {
	return filepath.Join(m.outputDir, m.metadata.Artifacts.RunJSON)
}

// Finalize ends the run and writes the summary and run.json.
func (m *OutputManager) Finalize(summary *metrics.Summary, runErr error) error {
	m.metadata.EndTime = time.Now()
	m.metadata.Duration = m.metadata.EndTime.Sub(m.metadata.StartTime).Round(time.Millisecond).String()
	if runErr != nil {
		m.metadata.ExitCode = 1
		m.metadata.Error = runErr.Error()
	}
	if summary != nil {
		m.metadata.Stats = statsFrom(summary)
	}

	if err := m.writeSummary(summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	m.metadata.Artifacts.SummaryTxt = filepath.Base(m.SummaryPath())

	if err := m.writeRunJSON(); err != nil {
		return fmt.Errorf("write run.json: %w", err)
	}
	return nil
}

func statsFrom(s *metrics.Summary) RunStats {
	stats := RunStats{
		TotalPDUs:     s.TotalPDUs,
		Decoded:       s.Decoded,
		Failed:        s.Failed,
		Bytes:         s.Bytes,
		RatePerSec:    s.Rate(),
		AvgIntervalMs: s.AvgInterval,
		P95IntervalMs: s.P95Interval,
	}
	if len(s.ByType) > 0 {
		stats.ByType = make(map[string]int, len(s.ByType))
		for t, ts := range s.ByType {
			stats.ByType[t.String()] = ts.Count
		}
	}
	if len(s.ByErrorKind) > 0 {
		stats.ByErrorKind = make(map[string]int, len(s.ByErrorKind))
		for k, n := range s.ByErrorKind {
			stats.ByErrorKind[k] = n
		}
	}
	return stats
}

func (m *OutputManager) writeSummary(summary *metrics.Summary) error {
	f, err := os.Create(m.SummaryPath())
	if err != nil {
		return err
	}
	defer f.Close()

	md := m.metadata
	fmt.Fprintf(f, "disgo %s run\n", md.Command)
	fmt.Fprintf(f, "==========\n\n")
	fmt.Fprintf(f, "Run ID:     %s\n", md.RunID)
	fmt.Fprintf(f, "Start Time: %s\n", md.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f, "End Time:   %s\n", md.EndTime.Format(time.RFC3339))
	fmt.Fprintf(f, "Duration:   %s\n\n", md.Duration)

	if md.Address != "" {
		fmt.Fprintf(f, "Network:  %s %s\n", md.Mode, md.Address)
	}
	if md.Interface != "" {
		fmt.Fprintf(f, "Interface: %s\n", md.Interface)
	}
	if md.ExerciseID != 0 {
		fmt.Fprintf(f, "Exercise: %d\n", md.ExerciseID)
	}
	fmt.Fprintln(f)

	if summary != nil {
		fmt.Fprintf(f, "%s\n", metrics.FormatSummary(summary))
	}
	if md.Error != "" {
		fmt.Fprintf(f, "Error: %s\n\n", md.Error)
	}

	fmt.Fprintf(f, "Artifacts\n")
	fmt.Fprintf(f, "---------\n")
	if md.Artifacts.PCAPFile != "" {
		fmt.Fprintf(f, "PCAP:     %s\n", md.Artifacts.PCAPFile)
	}
	if md.Artifacts.MetricsCSV != "" {
		fmt.Fprintf(f, "Metrics:  %s\n", md.Artifacts.MetricsCSV)
	}
	fmt.Fprintf(f, "Summary:  %s\n", filepath.Base(m.SummaryPath()))
	fmt.Fprintf(f, "Run JSON: %s\n", md.Artifacts.RunJSON)
	return nil
}

func (m *OutputManager) writeRunJSON() error {
	data, err := json.MarshalIndent(m.metadata, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.RunJSONPath(), data, 0644)
}
