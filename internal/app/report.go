package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tturner/disgo/internal/metrics"
)

type MetricsReportOptions struct {
	Paths []string // metrics CSV files, or directories holding *metrics*.csv
	Out   io.Writer
}

// metricsFile is one CSV loaded for a report.
type metricsFile struct {
	Name    string
	Metrics []metrics.Metric
	First   time.Time
	Last    time.Time
}

// RunMetricsReport summarizes metrics CSVs written by listen, sniff, emit,
// monitor or pcap summary, one row per file and then all of them together.
func RunMetricsReport(opts MetricsReportOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	paths, err := metricsFiles(opts.Paths)
	if err != nil {
		return err
	}

	var files []metricsFile
	var all []metrics.Metric
	for _, p := range paths {
		ms, first, last, err := metrics.ReadMetricsCSV(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", p, err)
			continue
		}
		files = append(files, metricsFile{Name: filepath.Base(p), Metrics: ms, First: first, Last: last})
		all = append(all, ms...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no readable metrics files in %s", strings.Join(opts.Paths, ", "))
	}
	warnMixedRuns(files)

	fmt.Fprintf(opts.Out, "=== disgo Metrics Report ===\n")
	fmt.Fprintf(opts.Out, "Files: %d\n", len(files))
	fmt.Fprintf(opts.Out, "Total records: %d\n\n", len(all))

	rows := [][]string{{"File", "PDUs", "Failed", "Rate", "Avg interval", "P95 interval"}}
	for _, f := range files {
		s := metrics.Summarize(f.Metrics)
		rows = append(rows, []string{
			f.Name,
			fmt.Sprintf("%d", s.TotalPDUs),
			fmt.Sprintf("%d", s.Failed),
			fmt.Sprintf("%.1f/s", s.Rate()),
			fmt.Sprintf("%.1f ms", s.AvgInterval),
			fmt.Sprintf("%.1f ms", s.P95Interval),
		})
	}
	printTable(opts.Out, rows)

	sort.SliceStable(all, func(i, j int) bool { return all[i].Timestamp.Before(all[j].Timestamp) })
	fmt.Fprintf(opts.Out, "\nCombined:\n%s", metrics.FormatSummary(metrics.Summarize(all)))
	return nil
}

// metricsFiles expands directories to the metrics CSVs in them.
func metricsFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*metrics*.csv"))
		if err != nil {
			return nil, fmt.Errorf("glob metrics CSVs: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no *metrics*.csv files found in %s", p)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// warnMixedRuns flags files whose time ranges lie hours apart.
func warnMixedRuns(files []metricsFile) {
	if len(files) < 2 {
		return
	}
	var first, last time.Time
	for _, f := range files {
		if f.First.IsZero() {
			continue
		}
		if first.IsZero() || f.First.Before(first) {
			first = f.First
		}
		if f.Last.After(last) {
			last = f.Last
		}
	}
	if span := last.Sub(first); span > 2*time.Hour {
		fmt.Fprintf(os.Stderr, "Warning: files span %s and may come from different runs\n", span.Round(time.Second))
	}
}

// printTable prints rows with auto-sized columns and a rule under the
// header row.
func printTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for j, cell := range row {
			if j < len(widths) && len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}
	for i, row := range rows {
		var b strings.Builder
		b.WriteString("  ")
		for j, cell := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[j], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
		if i == 0 {
			b.Reset()
			b.WriteString("  ")
			for j, width := range widths {
				if j > 0 {
					b.WriteString("  ")
				}
				b.WriteString(strings.Repeat("─", width))
			}
			fmt.Fprintln(w, b.String())
		}
	}
}
