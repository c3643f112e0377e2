package pcap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/pdu"
)

const tsharkJSON = `[
  {
    "_source": {
      "layers": {
        "frame": {"frame.number": "1", "frame.protocols": "eth:ethertype:ip:udp:dis"},
        "udp": {"udp.port": ["3000", "3000"]},
        "dis": {
          "Header": {
            "dis.proto_ver": "7",
            "dis.exer_id": "3",
            "dis.pdu_type": "1",
            "dis.proto_fam": "1",
            "dis.pdu_length": "144"
          }
        }
      }
    }
  },
  {
    "_source": {
      "layers": {
        "frame": {"frame.number": "4"},
        "dis": [
          {"Header": {"dis.pdu_type": "2", "dis.pdu_length": "96"}},
          {
            "Header": {"dis.pdu_type": "3"},
            "_ws.expert": {"_ws.expert.message": "Length field exceeds data", "_ws.expert.severity": "8388608"}
          }
        ],
        "_ws.malformed": {"_ws.malformed": "Malformed Packet"}
      }
    }
  }
]`

func TestParseDissection(t *testing.T) {
	got, err := ParseDissection([]byte(tsharkJSON))
	if err != nil {
		t.Fatalf("ParseDissection: %v", err)
	}
	want := []DissectedPDU{
		{Frame: 1, Index: 0, Version: 7, Exercise: 3, Type: 1, Family: 1, Length: 144},
		{Frame: 4, Index: 0, Version: -1, Exercise: -1, Type: 2, Family: -1, Length: 96},
		{Frame: 4, Index: 1, Version: -1, Exercise: -1, Type: 3, Family: -1, Length: -1,
			Malformed: true, Expert: []string{"Length field exceeds data"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDissection mismatch (-want +got):\n%s", diff)
	}

	if got, err := ParseDissection(nil); err != nil || got != nil {
		t.Errorf("empty output = %v, %v", got, err)
	}
	if _, err := ParseDissection([]byte("{")); err == nil {
		t.Error("bad JSON parsed")
	}
}

func packetFor(t *testing.T, frame, index int, p pdu.PDU) DISPacket {
	t.Helper()
	raw, err := pdu.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return DISPacket{Frame: frame, Index: index, PDU: p, Raw: raw}
}

func TestCrossCheck(t *testing.T) {
	es := packetFor(t, 1, 0, entityState(5, 3))
	fire := packetFor(t, 2, 0, pdu.NewFire())
	bad := DISPacket{Frame: 3, Index: 0, Raw: []byte{7, 3}, Err: codec.Truncated("header", 12, 2, 0)}
	agree := DissectedPDU{Frame: 1, Index: 0, Version: 7, Exercise: 3, Type: 1, Family: 1, Length: 144}

	tests := []struct {
		name      string
		packets   []DISPacket
		dissected []DissectedPDU
		want      []Mismatch
	}{
		{
			name:      "agree",
			packets:   []DISPacket{es},
			dissected: []DissectedPDU{agree},
		},
		{
			name:      "unreported fields are skipped",
			packets:   []DISPacket{es},
			dissected: []DissectedPDU{{Frame: 1, Index: 0, Version: -1, Exercise: -1, Type: 1, Family: -1, Length: -1}},
		},
		{
			name:      "exercise and length differ",
			packets:   []DISPacket{es},
			dissected: []DissectedPDU{{Frame: 1, Index: 0, Version: 7, Exercise: 4, Type: 1, Family: 1, Length: 140}},
			want: []Mismatch{
				{Frame: 1, Field: "exercise", Disgo: "3", Tshark: "4"},
				{Frame: 1, Field: "length", Disgo: "144", Tshark: "140"},
			},
		},
		{
			name:      "each side misses one",
			packets:   []DISPacket{es, fire},
			dissected: []DissectedPDU{{Frame: 2, Index: 1, Version: -1, Exercise: -1, Type: 2, Family: -1, Length: -1}, agree},
			want: []Mismatch{
				{Frame: 2, Field: "decode", Disgo: "ok", Tshark: "missing"},
				{Frame: 2, Index: 1, Field: "decode", Disgo: "missing", Tshark: "ok"},
			},
		},
		{
			name:      "both reject",
			packets:   []DISPacket{es, bad},
			dissected: []DissectedPDU{agree, {Frame: 3, Index: 0, Version: -1, Exercise: -1, Type: -1, Family: -1, Length: -1, Malformed: true}},
		},
		{
			name:      "only disgo rejects",
			packets:   []DISPacket{bad},
			dissected: []DissectedPDU{{Frame: 3, Index: 0, Version: 7, Exercise: 3, Type: 1, Family: 1, Length: 2}},
			want:      []Mismatch{{Frame: 3, Field: "decode", Disgo: "error: " + bad.Err.Error(), Tshark: "ok"}},
		},
		{
			name:      "only tshark rejects",
			packets:   []DISPacket{es},
			dissected: []DissectedPDU{{Frame: 1, Index: 0, Version: -1, Exercise: -1, Type: -1, Family: -1, Length: -1, Malformed: true}},
			want:      []Mismatch{{Frame: 1, Field: "decode", Disgo: "ok", Tshark: "malformed"}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := CrossCheck(tt.packets, tt.dissected)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CrossCheck mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveTsharkPathExplicit(t *testing.T) {
	if _, err := ResolveTsharkPath(filepath.Join(t.TempDir(), "tshark")); err == nil {
		t.Error("missing explicit path resolved")
	}
	t.Setenv("PATH", t.TempDir())
	if _, err := ResolveTsharkPath("no-such-tshark"); !errors.Is(err, ErrTsharkNotFound) {
		t.Errorf("bare name not on PATH: got %v, want ErrTsharkNotFound", err)
	}
}

// TestDissectAgreesWithWireshark needs tshark on the test host.
func TestDissectAgreesWithWireshark(t *testing.T) {
	tshark, err := ResolveTsharkPath("")
	if err != nil {
		t.Skipf("Skipping: %v", err)
	}
	fire := pdu.NewFire()
	fire.Header().ExerciseID = 3
	data := writeCapture(t,
		mustFrame(t, capTime, simA, bcast, entityState(1, 3)),
		mustFrame(t, capTime, simB, bcast, fire),
	)
	path := filepath.Join(t.TempDir(), "dis.pcap")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	packets, err := ExtractDISFromFile(path, DISPort)
	skipIfNoPcap(t, err)
	if err != nil {
		t.Fatalf("ExtractDISFromFile: %v", err)
	}
	dissected, err := Dissect(context.Background(), tshark, path, DISPort)
	if err != nil {
		t.Fatalf("Dissect: %v", err)
	}
	if len(dissected) == 0 {
		t.Skip("Skipping: tshark has no DIS dissector")
	}
	for _, m := range CrossCheck(packets, dissected) {
		t.Errorf("%s", m)
	}
}
