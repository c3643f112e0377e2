package transport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// sensor is a Local transport that pretends to be tcpdump: it writes
// payload to the file named after -w, or to stdout for "-w -".
type sensor struct {
	*Local
	payload []byte
	code    int
	ran     [][]string
}

func (s *sensor) Stream(ctx context.Context, argv []string, stdout, stderr io.Writer) (int, error) {
	s.ran = append(s.ran, argv)
	for i, arg := range argv {
		if arg != "-w" || i+1 >= len(argv) || s.payload == nil {
			continue
		}
		if argv[i+1] == "-" {
			stdout.Write(s.payload)
		} else if err := os.WriteFile(argv[i+1], s.payload, 0644); err != nil {
			return -1, err
		}
	}
	if s.code != 0 && s.code != exitTimedOut {
		io.WriteString(stderr, "tcpdump: eth9: No such device exists")
	}
	return s.code, nil
}

func (s *sensor) Run(ctx context.Context, argv []string) (Result, error) {
	var out, errOut strings.Builder
	code, err := s.Stream(ctx, argv, &out, &errOut)
	return Result{ExitCode: code, Stdout: out.String(), Stderr: errOut.String()}, err
}

func TestCaptureSpecCommand(t *testing.T) {
	tests := []struct {
		name string
		spec CaptureSpec
		want []string
	}{
		{
			name: "defaults with duration",
			spec: CaptureSpec{Duration: 30 * time.Second},
			want: []string{"timeout", "30", "tcpdump", "-i", "any", "-s", "65535", "-U", "-w", "/tmp/c.pcap", "udp", "port", "3000"},
		},
		{
			name: "count only",
			spec: CaptureSpec{Interface: "eth1", Port: 62040, Snaplen: 1500, Count: 100},
			want: []string{"tcpdump", "-i", "eth1", "-s", "1500", "-U", "-w", "/tmp/c.pcap", "-c", "100", "udp", "port", "62040"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.spec.Command("/tmp/c.pcap")); diff != "" {
				t.Errorf("Command() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCaptureSpecValidate(t *testing.T) {
	if err := (CaptureSpec{}).Validate(); err == nil {
		t.Error("Validate() of unbounded capture succeeded")
	}
	if err := (CaptureSpec{Duration: 100 * time.Millisecond}).Validate(); err == nil {
		t.Error("Validate() of sub-second capture succeeded")
	}
	if err := (CaptureSpec{Count: 5}).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCapture(t *testing.T) {
	remoteDir := t.TempDir()
	local := filepath.Join(t.TempDir(), "out", "dis.pcap")
	s := &sensor{Local: NewLocal(DefaultOptions()), payload: []byte("pcap bytes"), code: exitTimedOut}

	err := Capture(context.Background(), s, CaptureSpec{Duration: 2 * time.Second, RemoteDir: remoteDir}, local)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	got, err := os.ReadFile(local)
	if err != nil {
		t.Fatalf("read fetched capture: %v", err)
	}
	if string(got) != "pcap bytes" {
		t.Errorf("fetched %q, want %q", got, "pcap bytes")
	}
	if len(s.ran) != 1 || s.ran[0][2] != "tcpdump" {
		t.Fatalf("ran %v, want one timeout tcpdump", s.ran)
	}

	left, err := os.ReadDir(remoteDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("remote capture not removed: %v", left)
	}
}

func TestCaptureFailures(t *testing.T) {
	ctx := context.Background()
	local := filepath.Join(t.TempDir(), "dis.pcap")

	failing := &sensor{Local: NewLocal(DefaultOptions()), code: 1}
	err := Capture(ctx, failing, CaptureSpec{Count: 1, RemoteDir: t.TempDir(), Interface: "eth9"}, local)
	if err == nil || !strings.Contains(err.Error(), "No such device") {
		t.Errorf("Capture() error = %v, want tcpdump stderr", err)
	}

	silent := &sensor{Local: NewLocal(DefaultOptions())}
	err = Capture(ctx, silent, CaptureSpec{Count: 1, RemoteDir: t.TempDir()}, local)
	if err == nil {
		t.Error("Capture() with no capture file succeeded")
	}

	if err := Capture(ctx, silent, CaptureSpec{}, local); err == nil {
		t.Error("Capture() with unbounded spec succeeded")
	}
}

func TestStream(t *testing.T) {
	s := &sensor{Local: NewLocal(DefaultOptions()), payload: []byte("live pcap")}
	var buf bytes.Buffer
	if err := Stream(context.Background(), s, CaptureSpec{Duration: time.Minute, Count: 10}, &buf); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if buf.String() != "live pcap" {
		t.Errorf("streamed %q", buf.String())
	}
	want := []string{"tcpdump", "-i", "any", "-s", "65535", "-U", "-w", "-", "-c", "10", "udp", "port", "3000"}
	if diff := cmp.Diff(want, s.ran[0]); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}

	failing := &sensor{Local: NewLocal(DefaultOptions()), code: 1}
	if err := Stream(context.Background(), failing, CaptureSpec{Interface: "eth9"}, io.Discard); err == nil || !strings.Contains(err.Error(), "No such device") {
		t.Errorf("Stream() error = %v, want tcpdump stderr", err)
	}
}

func TestCheckSensor(t *testing.T) {
	l := NewLocal(DefaultOptions())
	v, err := CheckSensor(context.Background(), &versionSensor{Local: l, out: "tcpdump version 4.99.4\nlibpcap version 1.10.4\n"})
	if err != nil {
		t.Fatalf("CheckSensor() error = %v", err)
	}
	if v != "tcpdump version 4.99.4" {
		t.Errorf("CheckSensor() = %q", v)
	}
	if _, err := CheckSensor(context.Background(), &versionSensor{Local: l, code: 127, out: "sh: tcpdump: not found"}); err == nil {
		t.Error("CheckSensor() without tcpdump succeeded")
	}
}

type versionSensor struct {
	*Local
	out  string
	code int
}

func (v *versionSensor) Run(ctx context.Context, argv []string) (Result, error) {
	return Result{ExitCode: v.code, Stderr: v.out}, nil
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(DefaultOptions())
	dir := t.TempDir()

	src := filepath.Join(dir, "src.pcap")
	if err := os.WriteFile(src, []byte{0xd4, 0xc3, 0xb2, 0xa1}, 0644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "copy", "dst.pcap")
	if err := Fetch(ctx, l, src, dst); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got, _ := os.ReadFile(dst); len(got) != 4 {
		t.Errorf("fetched %d bytes, want 4", len(got))
	}

	empty := filepath.Join(dir, "empty.pcap")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := Fetch(ctx, l, empty, dst); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("Fetch(empty) error = %v", err)
	}
	if err := Fetch(ctx, l, dir, dst); err == nil || !strings.Contains(err.Error(), "directory") {
		t.Errorf("Fetch(dir) error = %v", err)
	}
	if err := Fetch(ctx, l, filepath.Join(dir, "missing"), dst); err == nil {
		t.Error("Fetch(missing) succeeded")
	}
}

func TestFetchCaptureRejectsTraversal(t *testing.T) {
	opts := DefaultSSHOptions()
	opts.ConnectTimeout = 10 * time.Millisecond
	err := FetchCapture(context.Background(), "192.0.2.1", "../../etc/shadow", filepath.Join(t.TempDir(), "x"), opts)
	if err == nil || !strings.Contains(err.Error(), "traversal") {
		t.Errorf("FetchCapture() error = %v, want traversal rejection", err)
	}
}
