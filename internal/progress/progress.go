// Package progress draws single-line progress on a terminal: a bar for
// runs with a known PDU total and a counter for open-ended ones.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	barWidth       = 40
	redrawInterval = 100 * time.Millisecond
)

// Bar tracks progress towards a known number of PDUs. It is safe for
// concurrent use.
type Bar struct {
	mu          sync.Mutex
	out         io.Writer
	total       int64
	current     int64
	started     time.Time
	lastDraw    time.Time
	description string
	disabled    bool
}

// NewBar returns a bar drawn on out. A nil out disables drawing.
func NewBar(out io.Writer, total int64, description string) *Bar {
	now := time.Now()
	return &Bar{
		out:         out,
		total:       total,
		started:     now,
		lastDraw:    now,
		description: description,
		disabled:    out == nil,
	}
}

// Add advances the bar by n.
func (b *Bar) Add(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current += n
	b.draw(false)
}

// Current returns the count so far.
func (b *Bar) Current() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Finish draws the final state and ends the line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return
	}
	b.draw(true)
	fmt.Fprint(b.out, "\n")
}

func (b *Bar) draw(force bool) {
	if b.disabled {
		return
	}
	now := time.Now()
	if !force && now.Sub(b.lastDraw) < redrawInterval && b.current < b.total {
		return
	}
	b.lastDraw = now
	fmt.Fprint(b.out, "\r"+b.line(now))
}

// line renders the bar as of now.
func (b *Bar) line(now time.Time) string {
	var percent float64
	if b.total > 0 {
		percent = float64(b.current) / float64(b.total) * 100
		if percent > 100 {
			percent = 100
		}
	}
	filled := int(barWidth * percent / 100)
	bar := strings.Repeat("=", filled)
	if filled < barWidth {
		bar += ">" + strings.Repeat(" ", barWidth-filled-1)
	}

	elapsed := now.Sub(b.started)
	line := fmt.Sprintf("[%s] %d/%d PDUs (%.0f%%) %s", bar, b.current, b.total, percent, FormatDuration(elapsed))
	if b.description != "" {
		line = b.description + " " + line
	}
	if b.current > 0 && b.current < b.total && elapsed > 0 {
		rate := float64(b.current) / elapsed.Seconds()
		remaining := time.Duration(float64(b.total-b.current) / rate * float64(time.Second))
		line += " eta " + FormatDuration(remaining)
	}
	return line
}

// Counter shows running PDU and error counts when the total is unknown.
type Counter struct {
	mu          sync.Mutex
	out         io.Writer
	description string
	interval    time.Duration
	lastDraw    time.Time
	pdus        int64
	errors      int64
	disabled    bool
}

// NewCounter returns a counter drawn on out at most once per interval.
// A nil out disables drawing.
func NewCounter(out io.Writer, description string, interval time.Duration) *Counter {
	return &Counter{
		out:         out,
		description: description,
		interval:    interval,
		lastDraw:    time.Now(),
		disabled:    out == nil,
	}
}

// Add counts pdus decoded PDUs and errs undecodable datagrams.
func (c *Counter) Add(pdus, errs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pdus += pdus
	c.errors += errs
	if c.disabled {
		return
	}
	now := time.Now()
	if now.Sub(c.lastDraw) < c.interval {
		return
	}
	c.lastDraw = now
	fmt.Fprint(c.out, "\r"+c.line())
}

// Counts returns the totals so far.
func (c *Counter) Counts() (pdus, errs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pdus, c.errors
}

// Finish draws the totals and ends the line.
func (c *Counter) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return
	}
	fmt.Fprint(c.out, "\r"+c.line()+"\n")
}

func (c *Counter) line() string {
	line := fmt.Sprintf("%d PDUs", c.pdus)
	if c.errors > 0 {
		line += fmt.Sprintf(" | %d undecodable", c.errors)
	}
	if c.description != "" {
		line = c.description + ": " + line
	}
	return line
}

// FormatDuration formats d as 350ms, 4.2s or 3m05s.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
