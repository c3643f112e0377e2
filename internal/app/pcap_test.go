package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/pcap"
)

func skipIfNoPcap(t *testing.T, err error) {
	t.Helper()
	if err != nil && (strings.Contains(err.Error(), "wpcap.dll") || strings.Contains(err.Error(), "couldn't load")) {
		t.Skip("Skipping: pcap library not available")
	}
}

func testCapture(t *testing.T) string {
	fire := pdu.NewFire()
	fire.Header().ExerciseID = 2
	fire.FiringEntityID = record.EntityID{Site: 1, Application: 2, Entity: 1}
	return writeTestCapture(t,
		frameOf(t, capTime, simA, simB, entityState(1, 1), entityState(2, 1)),
		frameOf(t, capTime.Add(time.Second), simB, simA, fire),
		frameOf(t, capTime.Add(2*time.Second), simA, simB, entityState(1, 1)),
	)
}

func TestRunPCAPSummary(t *testing.T) {
	path := testCapture(t)
	csv := filepath.Join(t.TempDir(), "metrics.csv")

	var out bytes.Buffer
	err := RunPCAPSummary(PCAPSummaryOptions{InputFile: path, Port: 3000, MetricsFile: csv, Verbose: true, Out: &out})
	skipIfNoPcap(t, err)
	if err != nil {
		t.Fatalf("RunPCAPSummary: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Capture: " + path,
		"Datagrams: 3",
		"PDUs:      4",
		"Errors:    0",
		"Entities:  2",
		"Wrote 4 metrics to " + csv,
		"Total PDUs: 4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	ms, _, _, err := metrics.ReadMetricsCSV(csv)
	if err != nil {
		t.Fatalf("ReadMetricsCSV: %v", err)
	}
	if len(ms) != 4 {
		t.Fatalf("CSV has %d rows, want 4", len(ms))
	}
	if ms[0].Direction != metrics.DirectionCaptured {
		t.Errorf("direction = %q, want %q", ms[0].Direction, metrics.DirectionCaptured)
	}
}

func TestRunPCAPSummaryMissingFile(t *testing.T) {
	err := RunPCAPSummary(PCAPSummaryOptions{InputFile: filepath.Join(t.TempDir(), "none.pcap"), Out: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("RunPCAPSummary of a missing file succeeded")
	}
}

func TestRunPCAPValidateWithoutTshark(t *testing.T) {
	path := testCapture(t)
	err := RunPCAPValidate(PCAPValidateOptions{
		InputFile: path,
		Tshark:    filepath.Join(t.TempDir(), "tshark"),
		Out:       &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "tshark") {
		t.Fatalf("err = %v, want a tshark lookup error", err)
	}
}

func TestRunPCAPValidate(t *testing.T) {
	if _, err := pcap.ResolveTsharkPath(""); err != nil {
		t.Skipf("Skipping: %v", err)
	}
	path := writeTestCapture(t,
		frameOf(t, capTime, simA, simB, entityState(1, 1)),
		frameOf(t, capTime.Add(time.Second), simB, simA, entityState(2, 1)),
	)

	var out bytes.Buffer
	err := RunPCAPValidate(PCAPValidateOptions{InputFile: path, Out: &out})
	skipIfNoPcap(t, err)
	if strings.Contains(out.String(), "tshark 0") {
		t.Skip("Skipping: tshark has no DIS dissector")
	}
	if err != nil {
		t.Fatalf("RunPCAPValidate: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "agree on every PDU") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunPCAPDump(t *testing.T) {
	path := testCapture(t)

	tests := []struct {
		name  string
		opts  PCAPDumpOptions
		lines int
		want  string
	}{
		{name: "all", opts: PCAPDumpOptions{}, lines: 4, want: "#4 frame 3.0"},
		{name: "by type", opts: PCAPDumpOptions{Type: 2}, lines: 1, want: "Fire(2)"},
		{name: "by exercise", opts: PCAPDumpOptions{Exercise: 1}, lines: 3, want: "entity=1:2:2"},
		{name: "limited", opts: PCAPDumpOptions{MaxEntries: 2}, lines: 2, want: "#2 frame 1.1"},
		{name: "errors only", opts: PCAPDumpOptions{ErrorsOnly: true}, lines: 1, want: "No matching DIS PDUs found."},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			opts := tt.opts
			opts.InputFile = path
			opts.Port = 3000
			opts.Out = &out
			err := RunPCAPDump(opts)
			skipIfNoPcap(t, err)
			if err != nil {
				t.Fatalf("RunPCAPDump: %v", err)
			}
			got := strings.TrimSpace(out.String())
			if n := len(strings.Split(got, "\n")); n != tt.lines {
				t.Errorf("got %d lines, want %d:\n%s", n, tt.lines, got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestPacketMetrics(t *testing.T) {
	es := entityState(9, 1)
	raw, err := pdu.Marshal(es)
	if err != nil {
		t.Fatal(err)
	}
	packets := []pcap.DISPacket{
		{Timestamp: capTime, SrcIP: "10.0.0.1", SrcPort: 3000, PDU: es, Raw: raw},
		{Timestamp: capTime, SrcIP: "10.0.0.2", SrcPort: 3000, Raw: []byte{7, 1, 1}, Err: os.ErrInvalid},
	}
	ms := packetMetrics(packets)
	if len(ms) != 2 {
		t.Fatalf("got %d metrics, want 2", len(ms))
	}
	if !ms[0].Success || ms[0].Entity != "1:2:9" || ms[0].Peer != "10.0.0.1:3000" || ms[0].Size != 144 {
		t.Errorf("metric for PDU = %+v", ms[0])
	}
	if ms[1].Success || ms[1].Size != 3 || ms[1].Peer != "10.0.0.2:3000" {
		t.Errorf("metric for undecodable bytes = %+v", ms[1])
	}
}

func TestDatagramOf(t *testing.T) {
	es := entityState(4, 1)
	d := datagramOf(pcap.DISPacket{Timestamp: capTime, SrcIP: "10.0.0.1", SrcPort: 3001, PDU: es, Raw: []byte{1}})
	if d.From == nil || d.From.String() != "10.0.0.1:3001" {
		t.Errorf("From = %v, want 10.0.0.1:3001", d.From)
	}
	if len(d.PDUs) != 1 || d.PDUs[0] != pdu.PDU(es) || !d.Received.Equal(capTime) {
		t.Errorf("datagram = %+v", d)
	}

	d = datagramOf(pcap.DISPacket{SrcIP: "not an ip", Err: os.ErrInvalid})
	if d.From != nil || len(d.PDUs) != 0 || d.Err == nil {
		t.Errorf("datagram of undecodable packet = %+v", d)
	}
}
