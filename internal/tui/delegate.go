package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) FilterValue() string { return i.item.Text }

// itemDelegate renders one item per line. The cursor is only drawn while the
// list has focus.
type itemDelegate struct {
	focused bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	prefix := "  "
	line := fmt.Sprintf("%s %s", mutedStyle.Render(bullet), it.item.Text)
	if d.focused && index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
		line = fmt.Sprintf("%s %s", accentStyle.Render(bullet), it.item.Text)
	}
	// No trailing newline: the list inserts separators itself.
	fmt.Fprint(w, prefix+line)
}

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{item: it})
	}
	return out
}
