package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/tturner/disgo/internal/dis/enums"
)

// ReadMetricsCSV reads a metrics CSV file and returns the parsed metrics along
// with the first and last timestamps found in the data.
func ReadMetricsCSV(path string) ([]Metric, time.Time, time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("open metrics CSV: %w", err)
	}
	defer file.Close()

	return readMetrics(file)
}

func readMetrics(r io.Reader) ([]Metric, time.Time, time.Time, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}

	requiredCols := []string{"timestamp", "direction", "pdu_type", "size", "success"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("CSV missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(record) {
			return record[idx]
		}
		return ""
	}
	number := func(record []string, col string, bits int) uint64 {
		v, err := strconv.ParseUint(field(record, col), 10, bits)
		if err != nil {
			return 0
		}
		return v
	}

	var metrics []Metric
	var firstTime, lastTime time.Time
	rowCount := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("read CSV row %d: %w", rowCount+2, err)
		}

		m := Metric{
			Direction:  Direction(field(record, "direction")),
			PduType:    enums.PduType(number(record, "pdu_type", 8)),
			Family:     enums.ProtocolFamily(number(record, "family", 8)),
			ExerciseID: uint8(number(record, "exercise_id", 8)),
			Entity:     field(record, "entity"),
			Peer:       field(record, "peer"),
			Size:       int(number(record, "size", 32)),
			Success:    field(record, "success") == "true",
			Error:      field(record, "error"),
			ErrorKind:  field(record, "error_kind"),
		}
		if t, err := time.Parse(time.RFC3339Nano, field(record, "timestamp")); err == nil {
			m.Timestamp = t
			if rowCount == 0 {
				firstTime = t
			}
			lastTime = t
		}
		if s := field(record, "interval_ms"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				m.IntervalMs = v
			}
		}

		metrics = append(metrics, m)
		rowCount++
	}

	if rowCount == 0 {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("no data rows in CSV file")
	}

	return metrics, firstTime, lastTime, nil
}
