package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionBox renders content in a rounded box with title set into the top
// border.
//
//	╭─ TITLE ──────────────────────────╮
//	│  content                         │
//	╰──────────────────────────────────╯
func SectionBox(title, content string, width int, s Styles) string {
	if width < 20 {
		width = 20
	}

	titleText := " " + title + " "
	rest := width - 3 - lipgloss.Width(titleText)
	if rest < 0 {
		rest = 0
	}
	top := "╭─" + s.Header.Render(titleText) + strings.Repeat("─", rest) + "╮"

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, true, true).
		BorderForeground(s.border).
		Width(width-2).
		Padding(0, 1).
		Render(content)

	return top + "\n" + body
}

// Table renders left-aligned columns under a dim header row.
type Table struct {
	Headers []string
	Rows    [][]string
	// Selected highlights one row; -1 for none.
	Selected int
}

// Render renders the table.
func (t Table) Render(s Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(s.SectionName.Render(joinCells(t.Headers, widths)))
	b.WriteString("\n")
	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	b.WriteString(s.Muted.Render(strings.Repeat("─", total)))

	for r, row := range t.Rows {
		b.WriteString("\n")
		line := joinCells(row, widths)
		if r == t.Selected {
			line = s.Selected.Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padRight(cell, widths[i])
	}
	return strings.Join(parts, "  ")
}

// KeyHint represents a keyboard shortcut hint.
type KeyHint struct {
	Key   string
	Label string
}

// KeyHints renders a row of keyboard shortcuts.
//
//	[p] Pause    [q] Quit
func KeyHints(hints []KeyHint, s Styles) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.KeyBinding.Render("["+h.Key+"]")+" "+s.KeyHint.Render(h.Label))
	}
	return strings.Join(parts, "    ")
}

// Sparkline draws values as a row of braille bars scaled to the largest
// value. Longer series keep their most recent width values; shorter ones
// are padded on the left.
func Sparkline(values []float64, width int, s Styles) string {
	if width < 1 {
		return ""
	}
	levels := []rune{' ', '⣀', '⣤', '⣶', '⣿'}

	if len(values) > width {
		values = values[len(values)-width:]
	}
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(string(levels[0]), width-len(values)))
	for _, v := range values {
		level := 0
		if maxVal > 0 && v > 0 {
			level = 1 + int(v/maxVal*float64(len(levels)-2))
			if level >= len(levels) {
				level = len(levels) - 1
			}
		}
		b.WriteRune(levels[level])
	}
	return s.Info.Render(b.String())
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
