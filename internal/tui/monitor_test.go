package tui

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tturner/disgo/internal/dis/codec"
	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/dis/record"
	"github.com/tturner/disgo/internal/transport"
)

func entityState(exercise uint8, entity uint16) *pdu.EntityState {
	es := pdu.NewEntityState()
	es.Header().ExerciseID = exercise
	es.EntityID = record.EntityID{Site: 1, Application: 1, Entity: entity}
	es.Marking = record.NewEntityMarking("TANK")
	return es
}

func testDatagram(ps ...pdu.PDU) transport.Datagram {
	return transport.Datagram{
		Raw:      []byte{7, 1, 1, 1},
		From:     &net.UDPAddr{IP: net.IPv4(10, 0, 0, 5), Port: 3000},
		Received: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		PDUs:     ps,
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMonitorIngest(t *testing.T) {
	m := NewMonitor(context.Background(), ChannelSource(nil), Options{})
	defer m.cancel()

	d := testDatagram(entityState(1, 1), entityState(1, 2))
	d.Err = codec.Truncated("header", 12, 4, 0)
	m.Update(datagramMsg(d))

	summary := m.Sink().GetSummary()
	if summary.Decoded != 2 || summary.Failed != 1 {
		t.Fatalf("decoded/failed = %d/%d, want 2/1", summary.Decoded, summary.Failed)
	}
	if st := summary.ByType[enums.PduTypeEntityState]; st == nil || st.Entities != 2 || st.Bytes != 2*144 {
		t.Fatalf("ByType = %+v", summary.ByType)
	}
	if len(m.recent) != 3 {
		t.Fatalf("recent = %q", m.recent)
	}
	if !strings.Contains(m.recent[0], "10.0.0.5:3000") || !strings.Contains(m.recent[0], `marking="TANK"`) {
		t.Errorf("recent[0] = %q", m.recent[0])
	}

	view := m.View()
	for _, want := range []string{"PDU TYPES", "Entity State", "Entity Information/Interaction", "DECODE ERRORS", "truncated=1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMonitorExerciseFilter(t *testing.T) {
	m := NewMonitor(context.Background(), ChannelSource(nil), Options{Exercise: 2})
	defer m.cancel()

	m.Update(datagramMsg(testDatagram(entityState(1, 1), entityState(2, 2), entityState(2, 3))))
	if got := m.Sink().GetSummary().Decoded; got != 2 {
		t.Errorf("Decoded = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "exercise 2") {
		t.Error("view does not show the exercise filter")
	}
}

func TestMonitorKeys(t *testing.T) {
	m := NewMonitor(context.Background(), ChannelSource(nil), Options{Recent: 2})
	defer m.cancel()
	m.Update(datagramMsg(testDatagram(entityState(1, 1))))

	m.Update(key("p"))
	if !m.paused {
		t.Fatal("p did not pause")
	}
	m.Update(datagramMsg(testDatagram(entityState(1, 2))))
	if got := m.Sink().GetSummary().Decoded; got != 2 {
		t.Errorf("paused monitor stopped counting: Decoded = %d", got)
	}
	if len(m.recent) != 1 {
		t.Errorf("paused monitor updated recent: %q", m.recent)
	}
	m.Update(key("p"))

	for i := 0; i < 3; i++ {
		m.Update(datagramMsg(testDatagram(entityState(1, uint16(10+i)))))
	}
	if len(m.recent) != 2 {
		t.Errorf("recent kept %d lines, want 2", len(m.recent))
	}

	m.Update(key("r"))
	if m.Sink().GetSummary().TotalPDUs != 0 || len(m.recent) != 0 {
		t.Error("r did not reset")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.ctx.Err() == nil {
		t.Error("q did not cancel the feed")
	}
}

func TestMonitorCopy(t *testing.T) {
	var copied string
	m := NewMonitor(context.Background(), ChannelSource(nil), Options{
		Clipboard: func(s string) error { copied = s; return nil },
	})
	defer m.cancel()

	if _, cmd := m.Update(key("c")); cmd != nil {
		t.Error("copy with nothing received should be a no-op")
	}
	m.Update(datagramMsg(testDatagram(entityState(1, 1))))
	_, cmd := m.Update(key("c"))
	if cmd == nil {
		t.Fatal("c returned no command")
	}
	m.Update(cmd())
	if copied != "07010101" {
		t.Errorf("copied %q, want 07010101", copied)
	}
}

func TestMonitorSourceErrors(t *testing.T) {
	m := NewMonitor(context.Background(), ChannelSource(nil), Options{})
	defer m.cancel()

	m.Update(sourceErrMsg{err: errSourceClosed})
	if m.Err() != nil || !strings.Contains(m.View(), "feed ended") {
		t.Errorf("closed source: err=%v", m.Err())
	}

	boom := errors.New("socket closed")
	m.Update(sourceErrMsg{err: boom})
	if !errors.Is(m.Err(), boom) || !strings.Contains(m.View(), "feed stopped: socket closed") {
		t.Errorf("failed source: err=%v", m.Err())
	}
}

func TestWaitForDatagram(t *testing.T) {
	ch := make(chan transport.Datagram, 1)
	m := NewMonitor(context.Background(), ChannelSource(ch), Options{})
	defer m.cancel()

	ch <- testDatagram(entityState(1, 1))
	msg := m.waitForDatagram()()
	d, ok := msg.(datagramMsg)
	if !ok || len(d.PDUs) != 1 {
		t.Fatalf("msg = %#v", msg)
	}

	close(ch)
	if msg := m.waitForDatagram()(); msg != (sourceErrMsg{err: errSourceClosed}) {
		t.Errorf("closed channel: msg = %#v", msg)
	}
}

func TestChannelSourceIdle(t *testing.T) {
	src := ChannelSource(make(chan transport.Datagram))
	if _, err := src.Receive(context.Background(), time.Millisecond); err != errIdle {
		t.Errorf("err = %v, want errIdle", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Receive(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
	}{
		{"empty", nil, 8},
		{"padded", []float64{1, 2, 3}, 8},
		{"trimmed", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 4},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Sparkline(tt.values, tt.width, DefaultStyles)
			if w := lipgloss.Width(got); w != tt.width {
				t.Errorf("width = %d, want %d (%q)", w, tt.width, got)
			}
		})
	}
	if got := Sparkline([]float64{1}, 0, DefaultStyles); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestTableRender(t *testing.T) {
	out := Table{
		Headers:  []string{"Type", "Count"},
		Rows:     [][]string{{"Entity State", "12"}, {"Fire", "3"}},
		Selected: -1,
	}.Render(DefaultStyles)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[3], "Fire          3") {
		t.Errorf("row = %q", lines[3])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Entity State", 8); got != "Entit..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
