package pcap

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
)

// CaptureSummary provides high-level stats for DIS traffic in a capture.
type CaptureSummary struct {
	Datagrams  int
	PDUs       int
	Errors     int
	Bytes      int
	First      time.Time
	Last       time.Time
	ByType     map[enums.PduType]int
	ByFamily   map[enums.ProtocolFamily]int
	ByExercise map[uint8]int
	ByError    map[string]int // decode failures by error kind
	Senders    map[string]int // PDUs per source IP
	Entities   map[record.EntityID]int
}

// Summarize tallies extracted packets.
func Summarize(packets []DISPacket) *CaptureSummary {
	s := &CaptureSummary{
		ByType:     make(map[enums.PduType]int),
		ByFamily:   make(map[enums.ProtocolFamily]int),
		ByExercise: make(map[uint8]int),
		ByError:    make(map[string]int),
		Senders:    make(map[string]int),
		Entities:   make(map[record.EntityID]int),
	}
	lastFrame := 0
	for _, p := range packets {
		if p.Frame != lastFrame || p.Frame == 0 {
			s.Datagrams++
			lastFrame = p.Frame
		}
		if s.First.IsZero() || p.Timestamp.Before(s.First) {
			s.First = p.Timestamp
		}
		if p.Timestamp.After(s.Last) {
			s.Last = p.Timestamp
		}
		s.Bytes += len(p.Raw)

		if p.Err != nil {
			s.Errors++
			s.ByError[codec.KindName(p.Err)]++
			continue
		}
		s.PDUs++
		h := p.PDU.Header()
		s.ByType[p.PDU.Type()]++
		s.ByFamily[h.ProtocolFamily()]++
		s.ByExercise[h.ExerciseID]++
		s.Senders[p.SrcIP]++
		if id, ok := pdu.Subject(p.PDU); ok {
			s.Entities[id]++
		}
	}
	return s
}

// Duration is the time between the first and last packet.
func (s *CaptureSummary) Duration() time.Duration {
	return s.Last.Sub(s.First)
}

// WriteText renders the summary as an aligned report.
func (s *CaptureSummary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Datagrams: %d\n", s.Datagrams)
	fmt.Fprintf(&b, "PDUs:      %d\n", s.PDUs)
	fmt.Fprintf(&b, "Errors:    %d\n", s.Errors)
	fmt.Fprintf(&b, "Bytes:     %d\n", s.Bytes)
	if !s.First.IsZero() {
		fmt.Fprintf(&b, "Span:      %s (%s .. %s)\n", s.Duration(),
			s.First.UTC().Format(time.RFC3339), s.Last.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Entities:  %d\n", len(s.Entities))

	if len(s.ByType) > 0 {
		b.WriteString("\nPDU types:\n")
		types := make([]enums.PduType, 0, len(s.ByType))
		for t := range s.ByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, t := range types {
			fmt.Fprintf(&b, "  %-34s %3d  %d\n", t, uint8(t), s.ByType[t])
		}
	}
	if len(s.ByExercise) > 0 {
		b.WriteString("\nExercises:\n")
		ids := make([]int, 0, len(s.ByExercise))
		for id := range s.ByExercise {
			ids = append(ids, int(id))
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "  %3d  %d\n", id, s.ByExercise[uint8(id)])
		}
	}
	if len(s.ByError) > 0 {
		b.WriteString("\nDecode errors:\n")
		for _, k := range sortedKeys(s.ByError) {
			fmt.Fprintf(&b, "  %-16s %d\n", k, s.ByError[k])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
