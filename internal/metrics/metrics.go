package metrics

// Traffic metrics for DIS sends, receives and captures

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
)

// Direction says where a metric was observed.
type Direction string

const (
	DirectionSent     Direction = "SENT"
	DirectionReceived Direction = "RECEIVED"
	DirectionCaptured Direction = "CAPTURED"
)

// Metric describes one PDU, or one datagram that failed to decode.
type Metric struct {
	Timestamp  time.Time            `json:"timestamp"`
	Direction  Direction            `json:"direction"`
	PduType    enums.PduType        `json:"pdu_type"`
	Family     enums.ProtocolFamily `json:"family"`
	ExerciseID uint8                `json:"exercise_id"`
	Entity     string               `json:"entity,omitempty"`
	Peer       string               `json:"peer,omitempty"`
	Size       int                  `json:"size"`
	Success    bool                 `json:"success"`
	IntervalMs float64              `json:"interval_ms,omitempty"` // since the last PDU of this type about this entity
	Error      string               `json:"error,omitempty"`
	ErrorKind  string               `json:"error_kind,omitempty"`
}

// ForPDU builds the metric for a PDU of size bytes exchanged with peer.
func ForPDU(dir Direction, peer string, p pdu.PDU, size int, ts time.Time) Metric {
	h := p.Header()
	m := Metric{
		Timestamp:  ts,
		Direction:  dir,
		PduType:    p.Type(),
		Family:     h.ProtocolFamily(),
		ExerciseID: h.ExerciseID,
		Peer:       peer,
		Size:       size,
		Success:    true,
	}
	if id, ok := pdu.Subject(p); ok {
		m.Entity = id.String()
	}
	return m
}

// ForError builds the metric for size bytes from peer that did not decode.
func ForError(dir Direction, peer string, size int, err error, ts time.Time) Metric {
	return Metric{
		Timestamp: ts,
		Direction: dir,
		Peer:      peer,
		Size:      size,
		Error:     err.Error(),
		ErrorKind: codec.KindName(err),
	}
}

// Sink collects and aggregates metrics
type Sink struct {
	mu       sync.RWMutex
	metrics  []Metric
	summary  *Summary
	lastSeen map[streamKey]time.Time
}

type streamKey struct {
	pduType enums.PduType
	entity  string
}

// Summary contains aggregated statistics
type Summary struct {
	TotalPDUs   int
	Decoded     int
	Failed      int
	Bytes       int
	First       time.Time
	Last        time.Time
	MinInterval float64
	MaxInterval float64
	AvgInterval float64
	P50Interval float64
	P90Interval float64
	P95Interval float64
	P99Interval float64
	intervals   int

	IntervalBuckets map[string]int
	ByDirection     map[Direction]int
	ByType          map[enums.PduType]*TypeStats
	ByFamily        map[enums.ProtocolFamily]int
	ByExercise      map[uint8]int
	ByErrorKind     map[string]int
}

// TypeStats contains statistics for one PDU type
type TypeStats struct {
	Count       int
	Bytes       int
	Entities    int
	MinInterval float64
	MaxInterval float64
	AvgInterval float64
	SumInterval float64
	intervals   int
	entities    map[string]struct{}
}

func newSummary() *Summary {
	return &Summary{
		IntervalBuckets: make(map[string]int),
		ByDirection:     make(map[Direction]int),
		ByType:          make(map[enums.PduType]*TypeStats),
		ByFamily:        make(map[enums.ProtocolFamily]int),
		ByExercise:      make(map[uint8]int),
		ByErrorKind:     make(map[string]int),
	}
}

// NewSink creates a new metrics sink
func NewSink() *Sink {
	return &Sink{
		metrics:  make([]Metric, 0),
		summary:  newSummary(),
		lastSeen: make(map[streamKey]time.Time),
	}
}

// Record records a new metric. A decoded PDU with no IntervalMs gets one
// from the previous metric of the same type and entity.
func (s *Sink) Record(m Metric) Metric {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.Success && m.IntervalMs == 0 && !m.Timestamp.IsZero() {
		key := streamKey{m.PduType, m.Entity}
		if prev, ok := s.lastSeen[key]; ok && m.Timestamp.After(prev) {
			m.IntervalMs = float64(m.Timestamp.Sub(prev)) / float64(time.Millisecond)
		}
		s.lastSeen[key] = m.Timestamp
	}

	s.metrics = append(s.metrics, m)
	s.updateSummary(m)
	return m
}

// Len returns the number of recorded metrics.
func (s *Sink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.metrics)
}

// GetMetrics returns a copy of all recorded metrics
func (s *Sink) GetMetrics() []Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := make([]Metric, len(s.metrics))
	copy(metrics, s.metrics)
	return metrics
}

// GetSummary returns a copy of the aggregated summary
func (s *Sink) GetSummary() *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := *s.summary
	sum.IntervalBuckets = make(map[string]int)
	sum.ByDirection = make(map[Direction]int, len(s.summary.ByDirection))
	sum.ByType = make(map[enums.PduType]*TypeStats, len(s.summary.ByType))
	sum.ByFamily = make(map[enums.ProtocolFamily]int, len(s.summary.ByFamily))
	sum.ByExercise = make(map[uint8]int, len(s.summary.ByExercise))
	sum.ByErrorKind = make(map[string]int, len(s.summary.ByErrorKind))

	for k, v := range s.summary.ByDirection {
		sum.ByDirection[k] = v
	}
	for k, v := range s.summary.ByType {
		ts := *v
		ts.entities = nil
		sum.ByType[k] = &ts
	}
	for k, v := range s.summary.ByFamily {
		sum.ByFamily[k] = v
	}
	for k, v := range s.summary.ByExercise {
		sum.ByExercise[k] = v
	}
	for k, v := range s.summary.ByErrorKind {
		sum.ByErrorKind[k] = v
	}

	percentiles, buckets := summarizeIntervals(s.metrics)
	sum.P50Interval = percentiles[0]
	sum.P90Interval = percentiles[1]
	sum.P95Interval = percentiles[2]
	sum.P99Interval = percentiles[3]
	for k, v := range buckets {
		sum.IntervalBuckets[k] = v
	}
	return &sum
}

// Summarize aggregates metrics that were recorded elsewhere, such as rows
// read back from a CSV file.
func Summarize(metrics []Metric) *Summary {
	s := NewSink()
	for _, m := range metrics {
		s.Record(m)
	}
	return s.GetSummary()
}

// updateSummary updates the summary statistics with a new metric
func (s *Sink) updateSummary(m Metric) {
	sum := s.summary
	sum.TotalPDUs++
	sum.Bytes += m.Size
	sum.ByDirection[m.Direction]++

	if !m.Timestamp.IsZero() {
		if sum.First.IsZero() || m.Timestamp.Before(sum.First) {
			sum.First = m.Timestamp
		}
		if m.Timestamp.After(sum.Last) {
			sum.Last = m.Timestamp
		}
	}

	if !m.Success {
		sum.Failed++
		kind := m.ErrorKind
		if kind == "" {
			kind = "other"
		}
		sum.ByErrorKind[kind]++
		return
	}

	sum.Decoded++
	sum.ByFamily[m.Family]++
	sum.ByExercise[m.ExerciseID]++

	if m.IntervalMs > 0 {
		if sum.MinInterval == 0 || m.IntervalMs < sum.MinInterval {
			sum.MinInterval = m.IntervalMs
		}
		if m.IntervalMs > sum.MaxInterval {
			sum.MaxInterval = m.IntervalMs
		}
		sum.intervals++
		total := sum.AvgInterval * float64(sum.intervals-1)
		total += m.IntervalMs
		sum.AvgInterval = total / float64(sum.intervals)
	}

	ts, exists := sum.ByType[m.PduType]
	if !exists {
		ts = &TypeStats{entities: make(map[string]struct{})}
		sum.ByType[m.PduType] = ts
	}
	ts.Count++
	ts.Bytes += m.Size
	if m.Entity != "" {
		if _, seen := ts.entities[m.Entity]; !seen {
			ts.entities[m.Entity] = struct{}{}
			ts.Entities++
		}
	}
	if m.IntervalMs > 0 {
		if ts.MinInterval == 0 || m.IntervalMs < ts.MinInterval {
			ts.MinInterval = m.IntervalMs
		}
		if m.IntervalMs > ts.MaxInterval {
			ts.MaxInterval = m.IntervalMs
		}
		ts.intervals++
		ts.SumInterval += m.IntervalMs
		ts.AvgInterval = ts.SumInterval / float64(ts.intervals)
	}
}

// Rate returns decoded PDUs per second over the recorded span.
func (s *Summary) Rate() float64 {
	span := s.Last.Sub(s.First).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(s.Decoded) / span
}

func summarizeIntervals(metrics []Metric) ([4]float64, map[string]int) {
	intervals := make([]float64, 0, len(metrics))
	buckets := make(map[string]int)

	for _, m := range metrics {
		if m.Success && m.IntervalMs > 0 {
			intervals = append(intervals, m.IntervalMs)
			incrementBucket(buckets, m.IntervalMs)
		}
	}

	return computePercentiles(intervals), buckets
}

// Heartbeats sit in the seconds range; the buckets follow that scale.
func incrementBucket(buckets map[string]int, value float64) {
	switch {
	case value < 10:
		buckets["lt_10ms"]++
	case value < 100:
		buckets["10_100ms"]++
	case value < 1000:
		buckets["100ms_1s"]++
	case value < 5000:
		buckets["1_5s"]++
	case value < 10000:
		buckets["5_10s"]++
	default:
		buckets["gt_10s"]++
	}
}

// bucketOrder lists the interval buckets from shortest to longest.
var bucketOrder = []string{"lt_10ms", "10_100ms", "100ms_1s", "1_5s", "5_10s", "gt_10s"}

func computePercentiles(values []float64) [4]float64 {
	var result [4]float64
	if len(values) == 0 {
		return result
	}
	sort.Float64s(values)
	result[0] = percentile(values, 0.50)
	result[1] = percentile(values, 0.90)
	result[2] = percentile(values, 0.95)
	result[3] = percentile(values, 0.99)
	return result
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
