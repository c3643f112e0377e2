package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/pcap"
)

// replayPackets returns the extracted form of three datagrams: two PDUs
// at t0, one at t0+2s and undecodable bytes at t0+3s.
func replayPackets(t *testing.T) []pcap.DISPacket {
	t.Helper()
	pkt := func(frame, index int, ts time.Time, p pdu.PDU) pcap.DISPacket {
		return pcap.DISPacket{Frame: frame, Index: index, Timestamp: ts, PDU: p, Raw: mustMarshal(t, p)}
	}
	return []pcap.DISPacket{
		pkt(1, 0, capTime, entityState(1, 1)),
		pkt(1, 1, capTime, entityState(2, 2)),
		pkt(2, 0, capTime.Add(2*time.Second), entityState(3, 1)),
		{Frame: 3, Timestamp: capTime.Add(3 * time.Second), Raw: []byte{7, 1, 1}, Err: errors.New("short")},
	}
}

func TestPlanReplay(t *testing.T) {
	packets := replayPackets(t)

	tests := []struct {
		name   string
		opts   ReplayOptions
		delays []time.Duration
		pdus   []int
		sizes  []int
	}{
		{
			name:   "fixed interval",
			opts:   ReplayOptions{IntervalMs: 50},
			delays: []time.Duration{0, 50 * time.Millisecond, 50 * time.Millisecond},
			pdus:   []int{2, 1, 0},
			sizes:  []int{288, 144, 3},
		},
		{
			name:   "realtime at double speed",
			opts:   ReplayOptions{Realtime: true, Speed: 2},
			delays: []time.Duration{0, time.Second, 500 * time.Millisecond},
			pdus:   []int{2, 1, 0},
			sizes:  []int{288, 144, 3},
		},
		{
			name:   "skip errors and limit",
			opts:   ReplayOptions{SkipErrors: true, Limit: 1},
			delays: []time.Duration{0},
			pdus:   []int{2},
			sizes:  []int{288},
		},
		{
			name:   "exercise filter keeps timing",
			opts:   ReplayOptions{Exercise: 2, SkipErrors: true, Realtime: true},
			delays: []time.Duration{0},
			pdus:   []int{1},
			sizes:  []int{144},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			plan := planReplay(packets, tt.opts)
			var delays []time.Duration
			var pdus, sizes []int
			for _, d := range plan {
				delays = append(delays, d.Delay)
				pdus = append(pdus, d.PDUs)
				sizes = append(sizes, len(d.Payload))
			}
			if diff := cmp.Diff(tt.delays, delays); diff != "" {
				t.Errorf("delays mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.pdus, pdus); diff != "" {
				t.Errorf("PDU counts mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.sizes, sizes); diff != "" {
				t.Errorf("sizes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanReplayRewritesExercise(t *testing.T) {
	packets := replayPackets(t)
	plan := planReplay(packets, ReplayOptions{RewriteExercise: 9, SkipErrors: true})
	if len(plan) != 2 {
		t.Fatalf("got %d datagrams, want 2", len(plan))
	}
	ps, err := pdu.DecodeAll(plan[0].Payload)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	for _, p := range ps {
		if p.Header().ExerciseID != 9 {
			t.Errorf("exercise = %d, want 9", p.Header().ExerciseID)
		}
	}
	if packets[0].Raw[1] != 1 {
		t.Error("rewrite changed the extracted packet bytes")
	}
}

type rawRecorder struct {
	sent [][]byte
	err  error
}

func (r *rawRecorder) SendRaw(ctx context.Context, b []byte) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, b)
	return nil
}

func TestSendReplay(t *testing.T) {
	plan := []replayDatagram{
		{Payload: []byte{1}, PDUs: 1},
		{Delay: time.Millisecond, Payload: []byte{2}, PDUs: 2},
	}
	r := &rawRecorder{}
	sent, pdus, err := sendReplay(context.Background(), r, plan, nil)
	if err != nil {
		t.Fatalf("sendReplay: %v", err)
	}
	if sent != 2 || pdus != 3 || len(r.sent) != 2 {
		t.Errorf("sent=%d pdus=%d recorded=%d, want 2, 3, 2", sent, pdus, len(r.sent))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sent, _, err = sendReplay(ctx, &rawRecorder{}, []replayDatagram{{Payload: []byte{1}}, {Delay: time.Hour, Payload: []byte{2}}}, nil)
	if err != nil || sent != 1 {
		t.Errorf("cancelled replay sent %d, err %v; want 1, nil", sent, err)
	}

	want := errors.New("network is unreachable")
	if _, _, err := sendReplay(context.Background(), &rawRecorder{err: want}, plan, nil); !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}
