package metrics

// Metrics output (CSV/JSON) and summary formatting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tturner/disgo/internal/dis/enums"
)

var csvHeader = []string{
	"timestamp",
	"direction",
	"pdu_type",
	"pdu_name",
	"family",
	"exercise_id",
	"entity",
	"peer",
	"size",
	"success",
	"interval_ms",
	"error",
	"error_kind",
}

// Writer handles writing metrics to files. It is safe for concurrent use.
type Writer struct {
	mu        sync.Mutex
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	jsonCount int
}

// NewWriter creates a writer for whichever of csvPath and jsonPath is set.
func NewWriter(csvPath, jsonPath string) (*Writer, error) {
	w := &Writer{}

	if csvPath != "" {
		file, err := os.Create(csvPath)
		if err != nil {
			return nil, fmt.Errorf("create CSV file: %w", err)
		}
		w.csvFile = file
		w.csvWriter = csv.NewWriter(file)
		if err := w.csvWriter.Write(csvHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("write CSV header: %w", err)
		}
		w.csvWriter.Flush()
	}

	if jsonPath != "" {
		file, err := os.Create(jsonPath)
		if err != nil {
			if w.csvFile != nil {
				w.csvFile.Close()
			}
			return nil, fmt.Errorf("create JSON file: %w", err)
		}
		w.jsonFile = file

		if _, err := file.WriteString("[\n"); err != nil {
			file.Close()
			if w.csvFile != nil {
				w.csvFile.Close()
			}
			return nil, fmt.Errorf("write JSON start: %w", err)
		}
	}

	return w, nil
}

// WriteMetric writes a single metric
func (w *Writer) WriteMetric(m Metric) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.csvWriter != nil {
		record := []string{
			m.Timestamp.Format(time.RFC3339Nano),
			string(m.Direction),
			strconv.Itoa(int(m.PduType)),
			pduName(m),
			strconv.Itoa(int(m.Family)),
			strconv.Itoa(int(m.ExerciseID)),
			m.Entity,
			m.Peer,
			strconv.Itoa(m.Size),
			strconv.FormatBool(m.Success),
			formatInterval(m.IntervalMs),
			m.Error,
			m.ErrorKind,
		}
		if err := w.csvWriter.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
		w.csvWriter.Flush()
		if err := w.csvWriter.Error(); err != nil {
			return fmt.Errorf("flush CSV: %w", err)
		}
	}

	if w.jsonFile != nil {
		data, err := json.MarshalIndent(m, "  ", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		sep := "  "
		if w.jsonCount > 0 {
			sep = ",\n  "
		}
		if _, err := w.jsonFile.WriteString(sep); err != nil {
			return fmt.Errorf("write JSON separator: %w", err)
		}
		if _, err := w.jsonFile.Write(data); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		w.jsonCount++
	}

	return nil
}

// Close closes the writer and flushes all data
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error

	if w.csvWriter != nil {
		w.csvWriter.Flush()
	}
	if w.csvFile != nil {
		if err := w.csvFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if w.jsonFile != nil {
		if _, err := w.jsonFile.WriteString("\n]\n"); err != nil {
			errs = append(errs, err)
		}
		if err := w.jsonFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close writer: %v", errs)
	}

	return nil
}

func pduName(m Metric) string {
	if !m.Success {
		return ""
	}
	return m.PduType.String()
}

// formatInterval formats an interval for CSV (empty string if 0)
func formatInterval(ms float64) string {
	if ms == 0 {
		return ""
	}
	return fmt.Sprintf("%.3f", ms)
}

// FormatSummary formats a summary for human-readable output
func FormatSummary(summary *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total PDUs: %d\n", summary.TotalPDUs)
	if summary.TotalPDUs == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Decoded: %d (%.1f%%)\n",
		summary.Decoded, float64(summary.Decoded)/float64(summary.TotalPDUs)*100)
	fmt.Fprintf(&b, "Failed: %d (%.1f%%)\n",
		summary.Failed, float64(summary.Failed)/float64(summary.TotalPDUs)*100)
	fmt.Fprintf(&b, "Bytes: %d\n", summary.Bytes)
	if rate := summary.Rate(); rate > 0 {
		fmt.Fprintf(&b, "Rate: %.1f PDU/s over %s\n", rate, summary.Last.Sub(summary.First).Round(time.Millisecond))
	}

	if len(summary.ByDirection) > 1 {
		b.WriteString("\nBy Direction:\n")
		for _, d := range []Direction{DirectionSent, DirectionReceived, DirectionCaptured} {
			if n := summary.ByDirection[d]; n > 0 {
				fmt.Fprintf(&b, "  %s: %d\n", d, n)
			}
		}
	}

	if summary.AvgInterval > 0 {
		b.WriteString("\nInterval Statistics (same type and entity):\n")
		fmt.Fprintf(&b, "  Min: %.3f ms\n", summary.MinInterval)
		fmt.Fprintf(&b, "  Max: %.3f ms\n", summary.MaxInterval)
		fmt.Fprintf(&b, "  Avg: %.3f ms\n", summary.AvgInterval)
		if summary.P50Interval > 0 {
			fmt.Fprintf(&b, "  P50: %.3f ms\n", summary.P50Interval)
			fmt.Fprintf(&b, "  P90: %.3f ms\n", summary.P90Interval)
			fmt.Fprintf(&b, "  P95: %.3f ms\n", summary.P95Interval)
			fmt.Fprintf(&b, "  P99: %.3f ms\n", summary.P99Interval)
		}
		if len(summary.IntervalBuckets) > 0 {
			b.WriteString("  Buckets:")
			for _, k := range bucketOrder {
				fmt.Fprintf(&b, " %s=%d", k, summary.IntervalBuckets[k])
			}
			b.WriteString("\n")
		}
	}

	if len(summary.ByType) > 0 {
		b.WriteString("\nPer-Type Statistics:\n")
		types := make([]enums.PduType, 0, len(summary.ByType))
		for t := range summary.ByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, t := range types {
			stats := summary.ByType[t]
			fmt.Fprintf(&b, "  %s(%d): %d PDUs, %d bytes, %d entities", t, uint8(t), stats.Count, stats.Bytes, stats.Entities)
			if stats.AvgInterval > 0 {
				fmt.Fprintf(&b, " - interval: min=%.1fms, max=%.1fms, avg=%.1fms",
					stats.MinInterval, stats.MaxInterval, stats.AvgInterval)
			}
			b.WriteString("\n")
		}
	}

	if len(summary.ByErrorKind) > 0 {
		b.WriteString("\nDecode Errors:\n")
		kinds := make([]string, 0, len(summary.ByErrorKind))
		for k := range summary.ByErrorKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(&b, "  %s: %d\n", k, summary.ByErrorKind[k])
		}
	}

	return b.String()
}
