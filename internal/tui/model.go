// Package tui is the interactive front end: a text field to add to-dos and a
// list where selecting (or clicking) an entry removes it.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/store"
)

// Rows above the first list entry inside the panel: title, blank, input,
// status, blank.
const listOffset = 5

// chrome is the space the panel border, padding, header and footer take.
const (
	chromeWidth  = 4
	chromeHeight = 2 + listOffset + 2
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Options tune the program.
type Options struct {
	Placeholder string
	CharLimit   int
	AltScreen   bool
	Mouse       bool // only honoured together with AltScreen
	Logger      zerolog.Logger
}

// storeChangedMsg tells the model to reload from the store.
type storeChangedMsg struct{}

// Model is the Bubble Tea model. It never keeps its own copy of the list:
// every render is driven by the store.
type Model struct {
	store *store.Store
	log   zerolog.Logger

	input textinput.Model
	list  list.Model
	help  help.Model
	keys  keyMap

	focus  focus
	status string // last validation error, cleared on the next keystroke
	width  int
	height int
}

// New builds a model over s, sized for an 80x24 terminal until the first
// WindowSizeMsg arrives.
func New(s *store.Store, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = opts.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = "New to-do..."
	}
	if opts.CharLimit > 0 {
		ti.CharLimit = opts.CharLimit
	}
	ti.Focus()

	l := list.New(toListItems(s.List()), itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.NoItems = mutedStyle.PaddingLeft(2)
	l.SetStatusBarItemName("to-do", "to-dos")

	m := Model{
		store: s,
		log:   opts.Logger,
		input: ti,
		list:  l,
		help:  help.New(),
		keys:  defaultKeys(),
	}
	m.setSize(80, 24)
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case storeChangedMsg:
		m.sync()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Switch) {
			m.setFocus(m.focus ^ 1)
			return m, nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		item, err := m.store.Add(m.input.Value())
		if err != nil {
			if errors.Is(err, store.ErrInvalidInput) {
				m.status = "Text cannot be empty"
			} else {
				m.status = err.Error()
			}
			m.log.Debug().Err(err).Msg("add rejected")
			return m, nil
		}
		m.log.Info().Str("id", item.ID).Msg("item added")
		m.input.SetValue("")
		m.status = ""
		m.sync()
		m.list.Select(len(m.list.Items()) - 1)
		return m, nil
	}

	m.status = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Remove):
		m.removeAt(m.list.Index())
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleMouse removes the entry under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}

	if !m.insidePanel(msg.X) {
		return m
	}
	// +1 for the top border of the panel.
	row := msg.Y - (listOffset + 1)
	if row < 0 || row >= m.list.Paginator.PerPage {
		return m
	}
	start, end := m.list.Paginator.GetSliceBounds(len(m.list.Items()))
	if idx := start + row; idx < end {
		m.removeAt(idx)
	}
	return m
}

// insidePanel reports whether column x lies within the panel's border and
// padding, measured against the rendered view.
func (m Model) insidePanel(x int) bool {
	side := chromeWidth / 2
	return x >= side && x < lipgloss.Width(m.View())-side
}

func (m *Model) removeAt(idx int) {
	items := m.list.Items()
	if idx < 0 || idx >= len(items) {
		return
	}
	it, ok := items[idx].(listItem)
	if !ok {
		return
	}
	if m.store.Remove(it.item.ID) {
		m.log.Info().Str("id", it.item.ID).Msg("item removed")
	}
	m.sync()
}

// sync reloads the list from the store and keeps the cursor in range.
func (m *Model) sync() {
	items := m.store.List()
	idx := m.list.Index()
	m.list.SetItems(toListItems(items))

	switch {
	case len(items) == 0:
		m.list.Select(0)
		if m.focus == focusList {
			m.setFocus(focusInput)
		}
	case idx >= len(items):
		m.list.Select(len(items) - 1)
	}
}

func (m *Model) setFocus(f focus) {
	if f == focusList && len(m.list.Items()) == 0 {
		f = focusInput
	}
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.list.SetDelegate(itemDelegate{focused: f == focusList})
	m.status = ""
}

func (m *Model) setSize(w, h int) {
	m.width, m.height = w, h
	inner := max(w-chromeWidth, 10)
	m.input.Width = max(inner-len(m.input.Prompt)-1, 1)
	m.list.SetSize(inner, max(h-chromeHeight, 1))
	m.help.Width = inner
}

func (m Model) View() string {
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("To-Dos"),
		accentStyle.Render(fmt.Sprintf("%d", len(m.list.Items()))),
	)

	status := ""
	if m.status != "" {
		status = errorStyle.Render(m.status)
	}

	bindings := m.keys.inputHelp()
	if m.focus == focusList {
		bindings = m.keys.listHelp()
	}

	sections := []string{
		header,
		"",
		m.input.View(),
		status,
		"",
		m.list.View(),
		"",
		m.help.ShortHelpView(bindings),
	}
	return panelString(strings.Join(sections, "\n"))
}
