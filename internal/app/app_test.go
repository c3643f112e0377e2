package app

import (
	"encoding/hex"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
	"github.com/tturner/disgo/internal/logging"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/pcap"
)

var (
	simA    = &net.UDPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 3000}
	simB    = &net.UDPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 3000}
	capTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func entityState(entity uint16, exercise uint8) *pdu.EntityState {
	es := pdu.NewEntityState()
	es.Header().ExerciseID = exercise
	es.EntityID = record.EntityID{Site: 1, Application: 2, Entity: entity}
	return es
}

func mustMarshal(t *testing.T, ps ...pdu.PDU) []byte {
	t.Helper()
	var out []byte
	for _, p := range ps {
		b, err := pdu.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", p.Type(), err)
		}
		out = append(out, b...)
	}
	return out
}

func mustHex(t *testing.T, ps ...pdu.PDU) string {
	t.Helper()
	return hex.EncodeToString(mustMarshal(t, ps...))
}

func silentLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.NewLogger(logging.LogLevelSilent, "")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func testRecorder(t *testing.T) *recorder {
	return &recorder{sink: metrics.NewSink(), logger: silentLogger(t)}
}

// writeTestCapture writes a capture of the given frames and returns its
// path.
func writeTestCapture(t *testing.T, frames ...pcap.Frame) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dis.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := pcap.WriteDISCapture(f, frames); err != nil {
		t.Fatalf("WriteDISCapture: %v", err)
	}
	return path
}

func frameOf(t *testing.T, ts time.Time, src, dst *net.UDPAddr, ps ...pdu.PDU) pcap.Frame {
	t.Helper()
	f, err := pcap.FrameForPDUs(ts, src, dst, ps...)
	if err != nil {
		t.Fatalf("FrameForPDUs: %v", err)
	}
	return f
}
