package capture

import (
	"strings"
	"testing"

	"github.com/google/gopacket/pcap"

	dispcap "github.com/tturner/disgo/internal/pcap"
)

func TestBPFFilter(t *testing.T) {
	got := BPFFilter(3000)
	if !strings.HasPrefix(got, "udp port 3000") {
		t.Fatalf("BPFFilter(3000) = %q", got)
	}
	if !strings.Contains(got, "0x1fff") {
		t.Errorf("BPFFilter should admit trailing fragments: %q", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.applyDefaults()
	if o.Port != dispcap.DISPort {
		t.Errorf("Port = %d, want %d", o.Port, dispcap.DISPort)
	}
	if o.Snaplen != 65535 {
		t.Errorf("Snaplen = %d, want 65535", o.Snaplen)
	}

	o = Options{Port: 3001, Snaplen: 1500}
	o.applyDefaults()
	if o.Port != 3001 || o.Snaplen != 1500 {
		t.Errorf("explicit values overwritten: %+v", o)
	}
}

func TestStartCaptureBadInterface(t *testing.T) {
	if _, err := pcap.FindAllDevs(); err != nil {
		t.Skipf("libpcap unavailable: %v", err)
	}
	_, err := StartCapture(Options{Interface: "disgo-no-such-if0"}, nil)
	if err == nil {
		t.Fatal("expected error for missing interface")
	}
	if !strings.Contains(err.Error(), "disgo-no-such-if0") {
		t.Errorf("error %q should name the interface", err)
	}
}
