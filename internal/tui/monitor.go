package tui

// Live DIS traffic monitor.

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/metrics"
	"github.com/tturner/disgo/internal/transport"
)

// Source delivers datagrams to the monitor. *transport.Endpoint satisfies
// it; ChannelSource adapts anything else.
type Source interface {
	Receive(ctx context.Context, timeout time.Duration) (transport.Datagram, error)
}

// ChannelSource reads datagrams from a channel, e.g. one fed by a live
// capture. A closed channel ends the monitor's feed.
type ChannelSource <-chan transport.Datagram

// Receive implements Source.
func (c ChannelSource) Receive(ctx context.Context, timeout time.Duration) (transport.Datagram, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case d, ok := <-c:
		if !ok {
			return transport.Datagram{}, errSourceClosed
		}
		return d, nil
	case <-timer.C:
		return transport.Datagram{}, errIdle
	case <-ctx.Done():
		return transport.Datagram{}, ctx.Err()
	}
}

type monitorError string

func (e monitorError) Error() string { return string(e) }

const (
	errSourceClosed monitorError = "source closed"
	errIdle         monitorError = "no traffic"
)

// Options configures a Monitor.
type Options struct {
	Title    string
	Exercise uint8 // 0 shows every exercise
	Recent   int   // lines of recent PDUs kept, 12 when 0
	// Sink receives a metric per PDU; the monitor creates one when nil.
	Sink *metrics.Sink
	// Clipboard copies text; nil disables the copy key.
	Clipboard func(string) error
}

// Monitor is the bubbletea model of the live monitor.
type Monitor struct {
	src    Source
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	styles Styles
	width  int
	height int

	sink    *metrics.Sink
	started time.Time
	recent  []string
	lastRaw []byte
	rates   []float64
	second  int

	paused   bool
	selected int
	status   string
	err      error
	done     bool
}

// Messages delivered to Update.
type (
	datagramMsg transport.Datagram
	sourceErrMsg struct{ err error }
	tickMsg      time.Time
	copiedMsg    struct{ err error }
)

// NewMonitor builds a monitor reading from src until ctx is done or the
// user quits.
func NewMonitor(ctx context.Context, src Source, opts Options) *Monitor {
	if opts.Title == "" {
		opts.Title = "disgo monitor"
	}
	if opts.Recent <= 0 {
		opts.Recent = 12
	}
	sink := opts.Sink
	if sink == nil {
		sink = metrics.NewSink()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Monitor{
		src:     src,
		ctx:     ctx,
		cancel:  cancel,
		opts:    opts,
		styles:  DefaultStyles,
		width:   100,
		height:  32,
		sink:    sink,
		started: time.Now(),
		status:  "idle",
	}
}

// Sink returns the metrics sink the monitor records into.
func (m *Monitor) Sink() *metrics.Sink { return m.sink }

// Err returns the error that stopped the feed, if any.
func (m *Monitor) Err() error { return m.err }

// Init implements tea.Model.
func (m *Monitor) Init() tea.Cmd {
	return tea.Batch(m.waitForDatagram(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForDatagram blocks for the next datagram, polling so that a
// cancelled context is noticed.
func (m *Monitor) waitForDatagram() tea.Cmd {
	src, ctx := m.src, m.ctx
	return func() tea.Msg {
		for {
			d, err := src.Receive(ctx, 250*time.Millisecond)
			if err == nil {
				return datagramMsg(d)
			}
			if ctx.Err() != nil {
				return nil
			}
			if err == errIdle || transport.IsTimeout(err) {
				continue
			}
			return sourceErrMsg{err: err}
		}
	}
}

// Update implements tea.Model.
func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case datagramMsg:
		m.ingest(transport.Datagram(msg))
		return m, m.waitForDatagram()

	case sourceErrMsg:
		m.done = true
		if msg.err != errSourceClosed {
			m.err = msg.err
			m.status = "error"
		} else {
			m.status = "idle"
		}
		return m, nil

	case tickMsg:
		m.rates = append(m.rates, float64(m.second))
		if len(m.rates) > 120 {
			m.rates = m.rates[len(m.rates)-120:]
		}
		if m.second == 0 && m.status == "receiving" {
			m.status = "idle"
		}
		m.second = 0
		return m, tickCmd()

	case copiedMsg:
		if msg.err != nil {
			m.setNote("copy failed: " + msg.err.Error())
		} else {
			m.setNote("copied last datagram as hex")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Monitor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.cancel()
		return m, tea.Quit
	case "p", " ":
		m.paused = !m.paused
		return m, nil
	case "r":
		m.sink = metrics.NewSink()
		m.recent = nil
		m.rates = nil
		m.selected = 0
		m.started = time.Now()
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.typeRows())-1 {
			m.selected++
		}
		return m, nil
	case "c":
		if m.opts.Clipboard == nil || m.lastRaw == nil {
			return m, nil
		}
		text, copyFn := hex.EncodeToString(m.lastRaw), m.opts.Clipboard
		return m, func() tea.Msg { return copiedMsg{err: copyFn(text)} }
	}
	return m, nil
}

// ingest records every PDU of d that passes the exercise filter.
func (m *Monitor) ingest(d transport.Datagram) {
	peer := ""
	if d.From != nil {
		peer = d.From.String()
	}
	ts := d.Received
	if ts.IsZero() {
		ts = time.Now()
	}

	for _, p := range d.Exercise(m.opts.Exercise) {
		m.sink.Record(metrics.ForPDU(metrics.DirectionReceived, peer, p, pdu.Length(p), ts))
		m.second++
		if !m.paused {
			m.pushRecent(fmt.Sprintf("%s %-21s %s", ts.Format("15:04:05.000"), peer, pdu.Summary(p)))
		}
	}
	if d.Err != nil {
		m.sink.Record(metrics.ForError(metrics.DirectionReceived, peer, len(d.Raw), d.Err, ts))
		if !m.paused {
			m.pushRecent(fmt.Sprintf("%s %-21s error: %v", ts.Format("15:04:05.000"), peer, d.Err))
		}
	}
	if !m.paused {
		m.lastRaw = d.Raw
	}
	m.status = "receiving"
}

func (m *Monitor) pushRecent(line string) {
	m.recent = append(m.recent, line)
	if len(m.recent) > m.opts.Recent {
		m.recent = m.recent[len(m.recent)-m.opts.Recent:]
	}
}

func (m *Monitor) setNote(note string) {
	m.pushRecent(time.Now().Format("15:04:05.000") + " -- " + note)
}

// typeRows returns one table row per PDU type seen, by descending count.
func (m *Monitor) typeRows() [][]string {
	summary := m.sink.GetSummary()
	types := make([]enums.PduType, 0, len(summary.ByType))
	for t := range summary.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		ci, cj := summary.ByType[types[i]].Count, summary.ByType[types[j]].Count
		if ci != cj {
			return ci > cj
		}
		return types[i] < types[j]
	})

	rows := make([][]string, 0, len(types))
	for _, t := range types {
		st := summary.ByType[t]
		interval := "-"
		if st.AvgInterval > 0 {
			interval = fmt.Sprintf("%.0fms", st.AvgInterval)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", uint8(t)),
			t.String(),
			t.Family().String(),
			fmt.Sprintf("%d", st.Count),
			fmt.Sprintf("%d", st.Entities),
			interval,
		})
	}
	return rows
}

// View implements tea.Model.
func (m *Monitor) View() string {
	s := m.styles
	summary := m.sink.GetSummary()
	width := m.width - 2
	if width < 60 {
		width = 60
	}

	status := m.status
	if m.paused {
		status = "paused"
	}
	filter := "all exercises"
	if m.opts.Exercise != 0 {
		filter = fmt.Sprintf("exercise %d", m.opts.Exercise)
	}
	header := fmt.Sprintf("%s %s  %s  %s  up %s",
		StatusIcon(status, s),
		s.Title.Render(m.opts.Title),
		s.Dim.Render(status),
		s.Dim.Render(filter),
		time.Since(m.started).Round(time.Second))

	totals := fmt.Sprintf("PDUs %s   bytes %s   errors %s   rate %s",
		s.Bold.Render(fmt.Sprint(summary.Decoded)),
		s.Bold.Render(fmt.Sprint(summary.Bytes)),
		errorCount(summary.Failed, s),
		s.Info.Render(fmt.Sprintf("%.1f/s", lastRate(m.rates))))
	graph := Sparkline(m.rates, width-4, s)

	table := Table{
		Headers:  []string{"Type", "Name", "Family", "Count", "Entities", "Interval"},
		Rows:     m.typeRows(),
		Selected: m.selected,
	}
	types := table.Render(s)
	if len(table.Rows) == 0 {
		types = s.Dim.Render("waiting for PDUs...")
	}

	var errs []string
	kinds := make([]string, 0, len(summary.ByErrorKind))
	for k := range summary.ByErrorKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		errs = append(errs, fmt.Sprintf("%s=%d", k, summary.ByErrorKind[k]))
	}

	recent := make([]string, len(m.recent))
	for i, line := range m.recent {
		recent[i] = truncate(line, width-4)
	}
	recentBody := strings.Join(recent, "\n")
	if recentBody == "" {
		recentBody = s.Dim.Render("nothing yet")
	}

	hints := []KeyHint{{"p", "Pause"}, {"r", "Reset"}, {"↑/↓", "Select"}}
	if m.opts.Clipboard != nil {
		hints = append(hints, KeyHint{"c", "Copy hex"})
	}
	hints = append(hints, KeyHint{"q", "Quit"})

	parts := []string{
		header,
		SectionBox("TRAFFIC", totals+"\n"+graph, width, s),
		SectionBox("PDU TYPES", types, width, s),
	}
	if len(errs) > 0 {
		parts = append(parts, SectionBox("DECODE ERRORS", s.Error.Render(strings.Join(errs, "  ")), width, s))
	}
	parts = append(parts, SectionBox("RECENT", recentBody, width, s))
	if m.err != nil {
		parts = append(parts, s.Error.Render("feed stopped: "+m.err.Error()))
	} else if m.done {
		parts = append(parts, s.Warning.Render("feed ended"))
	}
	parts = append(parts, s.Footer.Render(KeyHints(hints, s)))
	return strings.Join(parts, "\n")
}

func errorCount(n int, s Styles) string {
	if n == 0 {
		return s.Success.Render("0")
	}
	return s.Error.Render(fmt.Sprint(n))
}

func lastRate(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	return rates[len(rates)-1]
}
