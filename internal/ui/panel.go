package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/model"
)

// Panel draws a framed box using the current theme. Widths ignore ANSI
// sequences and count wide runes as two cells.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := ansi.StringWidth(ln); vis > maxw {
			maxw = vis
		}
	}
	pad := func(s string) string {
		if vis := ansi.StringWidth(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// ListLines renders a header and one numbered line per item, ready for Panel.
func ListLines(items []model.Item) []string {
	t := Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", C(t.Title, "To-Dos"), C(t.Accent, "Total"), len(items)),
		"",
	}
	if len(items) == 0 {
		return append(lines, C(t.Muted, "no items"))
	}
	for i, it := range items {
		text := it.Text
		if len([]rune(text)) > 80 {
			text = string([]rune(text)[:77]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", C(dim, fmt.Sprintf("%2d.", i+1)), C(t.Muted, t.Bullet), text))
	}
	return lines
}
