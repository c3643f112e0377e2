package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/disgo/internal/dis/pdu"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"07010140", []byte{0x07, 0x01, 0x01, 0x40}, false},
		{"0x07 0x01\n01:40", []byte{0x07, 0x01, 0x01, 0x40}, false},
		{"07-01, 01-40", []byte{0x07, 0x01, 0x01, 0x40}, false},
		{"", []byte{}, false},
		{"0g", nil, true},
		{"071", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !bytes.Equal(got, tt.want) {
			t.Errorf("ParseHex(%q) = %x, want %x", tt.in, got, tt.want)
		}
	}
}

func TestRunDecodeText(t *testing.T) {
	fire := pdu.NewFire()
	in := mustHex(t, entityState(7, 3), fire) + "aabbcc"

	var out bytes.Buffer
	if err := RunDecode(DecodeOptions{Hex: in, Out: &out}); err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"PDU 1 @0: Entity State(1) ex=3 len=144",
		"entity=1:2:7",
		"PDU 2 @144: Fire(2)",
		"(3 trailing bytes ignored)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunDecodeJSON(t *testing.T) {
	var out bytes.Buffer
	if err := RunDecode(DecodeOptions{Hex: mustHex(t, entityState(7, 3)), Format: FormatJSON, Out: &out}); err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	var views []struct {
		Offset int
		Header headerView
		Body   map[string]any
	}
	if err := json.Unmarshal(out.Bytes(), &views); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(views) != 1 {
		t.Fatalf("got %d PDUs, want 1", len(views))
	}
	want := headerView{
		ProtocolVersion: 7,
		ExerciseID:      3,
		PduType:         1,
		PduName:         "Entity State",
		Family:          1,
		FamilyName:      views[0].Header.FamilyName,
		Timestamp:       views[0].Header.Timestamp,
		Length:          144,
	}
	if diff := cmp.Diff(want, views[0].Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if len(views[0].Body) == 0 {
		t.Error("body is empty")
	}
}

func TestRunDecodeYAML(t *testing.T) {
	var out bytes.Buffer
	if err := RunDecode(DecodeOptions{Hex: mustHex(t, entityState(7, 3)), Format: FormatYAML, Out: &out}); err != nil {
		t.Fatalf("RunDecode: %v", err)
	}
	got := out.String()
	for _, want := range []string{"- offset: 0", "pdu_name: Entity State", "length: 144", "body:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunDecodeErrors(t *testing.T) {
	full := mustHex(t, entityState(1, 1))

	var out bytes.Buffer
	err := RunDecode(DecodeOptions{Hex: full[:100], Out: &out})
	if err == nil {
		t.Fatal("RunDecode of a truncated PDU succeeded")
	}
	if !strings.Contains(out.String(), "Undecodable bytes at offset 0") {
		t.Errorf("output = %q", out.String())
	}

	if err := RunDecode(DecodeOptions{Hex: "", Out: &out}); err == nil {
		t.Error("RunDecode of no bytes succeeded")
	}
	if err := RunDecode(DecodeOptions{Hex: "0701", Out: &out}); err == nil {
		t.Error("RunDecode of a partial header succeeded")
	}
	if err := RunDecode(DecodeOptions{Hex: full, Format: "xml", Out: &out}); err == nil {
		t.Error("RunDecode with unknown format succeeded")
	}
}

func TestReadDatagramFile(t *testing.T) {
	dir := t.TempDir()
	raw := mustMarshal(t, entityState(1, 1))

	bin := filepath.Join(dir, "es.bin")
	if err := os.WriteFile(bin, raw, 0644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "es.hex")
	if err := os.WriteFile(txt, []byte(mustHex(t, entityState(1, 1))+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bin, txt} {
		got, err := readDatagramFile(path)
		if err != nil {
			t.Fatalf("readDatagramFile(%s): %v", path, err)
		}
		if !bytes.Equal(got, raw) {
			t.Errorf("readDatagramFile(%s) returned %d bytes, want the %d-byte PDU", path, len(got), len(raw))
		}
	}
	if _, err := readDatagramFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("readDatagramFile of a missing file succeeded")
	}
}
