// Package tui is a thin bubbletea host binding for a selectkit engine:
// it forwards key events, subscribes to state snapshots, and renders the
// menu from them. All selection behavior lives in the engine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"selectkit/internal/engine"
	"selectkit/internal/keymap"
	"selectkit/internal/virtual"
)

const menuHeight = 10

// stateMsg carries a fresh engine snapshot into the bubbletea loop.
type stateMsg engine.State[string]

// errMsg carries a loader failure into the status line.
type errMsg struct{ err error }

type rowKind int

const (
	rowGroup rowKind = iota
	rowOption
)

// row is one renderable line of the open menu.
type row struct {
	kind  rowKind
	label string
	index int // filtered index for option rows
}

// Model renders one select widget backed by an engine instance.
type Model struct {
	eng    *engine.Engine[string]
	input  textinput.Model
	styles *Styles

	title     string
	creatable bool

	state   engine.State[string]
	msgs    chan tea.Msg
	scroll  int
	lastErr error
	width   int
}

// New builds a model around an already-configured engine.
func New(eng *engine.Engine[string], title string, creatable bool) *Model {
	ti := textinput.New()
	ti.Placeholder = "type to search"
	ti.Prompt = "> "
	ti.Focus()

	m := &Model{
		eng:       eng,
		input:     ti,
		styles:    NewStyles(),
		title:     title,
		creatable: creatable,
		state:     eng.State(),
		msgs:      make(chan tea.Msg, 32),
	}

	eng.Subscribe(func(s engine.State[string]) {
		select {
		case m.msgs <- stateMsg(s):
		default:
		}
	})
	eng.On(engine.EventError, func(ev engine.Event) {
		select {
		case m.msgs <- errMsg{err: ev.(engine.ErrorEvent).Err}:
		default:
		}
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

// listen pumps engine notifications into the bubbletea loop.
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg { return <-m.msgs }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = engine.State[string](msg)
		m.ensureHighlightVisible()
		if m.input.Value() != m.state.Search {
			m.input.SetValue(m.state.Search)
			m.input.CursorEnd()
		}
		return m, m.listen()

	case errMsg:
		m.lastErr = msg.err
		return m, m.listen()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.eng.Destroy()
		return m, tea.Quit
	case tea.KeyCtrlN:
		if m.creatable && m.state.Search != "" {
			_ = m.eng.CreateOption(context.Background(), m.state.Search)
		}
		return m, nil
	}

	ev, ok := translateKey(msg)
	if ok && m.eng.HandleKey(ev) {
		m.state = m.eng.State()
		m.ensureHighlightVisible()
		if m.input.Value() != m.state.Search {
			m.input.SetValue(m.state.Search)
			m.input.CursorEnd()
		}
		return m, nil
	}

	// Unhandled keys belong to the search input while the menu is open.
	if !m.state.Open {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Search {
		m.eng.SetSearchValue(m.input.Value())
		m.state = m.eng.State()
		m.ensureHighlightVisible()
	}
	return m, cmd
}

// translateKey maps a bubbletea key message onto the engine's key event
// vocabulary.
func translateKey(msg tea.KeyMsg) (keymap.Event, bool) {
	switch msg.Type {
	case tea.KeyDown:
		return keymap.Event{Key: keymap.KeyArrowDown}, true
	case tea.KeyUp:
		return keymap.Event{Key: keymap.KeyArrowUp}, true
	case tea.KeyHome:
		return keymap.Event{Key: keymap.KeyHome}, true
	case tea.KeyEnd:
		return keymap.Event{Key: keymap.KeyEnd}, true
	case tea.KeyPgUp:
		return keymap.Event{Key: keymap.KeyPageUp}, true
	case tea.KeyPgDown:
		return keymap.Event{Key: keymap.KeyPageDown}, true
	case tea.KeyEnter:
		return keymap.Event{Key: keymap.KeyEnter}, true
	case tea.KeyEsc:
		return keymap.Event{Key: keymap.KeyEscape}, true
	case tea.KeyBackspace:
		return keymap.Event{Key: keymap.KeyBackspace}, true
	case tea.KeyDelete:
		return keymap.Event{Key: keymap.KeyDelete}, true
	case tea.KeySpace:
		return keymap.Event{Key: keymap.KeySpace}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return keymap.Event{Key: string(msg.Runes), Alt: msg.Alt}, true
		}
	}
	return keymap.Event{}, false
}

// rows flattens the menu into renderable lines, interleaving group
// labels when the full (unfiltered) grouped view is showing.
func (m *Model) rows() []row {
	s := m.state
	if s.HasGroups && s.Search == "" {
		var out []row
		i := 0
		for _, g := range s.Grouped {
			label := g.Label
			if label == "" {
				label = "Other"
			}
			out = append(out, row{kind: rowGroup, label: label})
			for range g.Options {
				if i < len(s.Filtered) {
					out = append(out, row{kind: rowOption, index: i})
				}
				i++
			}
		}
		return out
	}
	out := make([]row, len(s.Filtered))
	for i := range s.Filtered {
		out[i] = row{kind: rowOption, index: i}
	}
	return out
}

// ensureHighlightVisible scrolls the menu window to keep the highlighted
// row on screen.
func (m *Model) ensureHighlightVisible() {
	if m.state.HighlightedIndex < 0 {
		return
	}
	rows := m.rows()
	target := 0
	for i, r := range rows {
		if r.kind == rowOption && r.index == m.state.HighlightedIndex {
			target = i
			break
		}
	}
	if target < m.scroll {
		m.scroll = target
	}
	if target >= m.scroll+menuHeight {
		m.scroll = target - menuHeight + 1
	}
}

func (m *Model) View() string {
	var b strings.Builder
	st := m.styles
	s := m.state

	b.WriteString(st.Title.Render(m.title))
	b.WriteString("\n")

	if len(s.SelectedOptions) > 0 {
		tags := make([]string, len(s.SelectedOptions))
		for i, o := range s.SelectedOptions {
			tags[i] = st.Tag.Render(o.Label)
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	} else {
		b.WriteString(st.Dim.Render("nothing selected"))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if s.Open {
		b.WriteString(st.Menu.Render(m.renderMenu()))
		b.WriteString("\n")
	}

	switch {
	case s.Loading:
		b.WriteString(st.Loading.Render("loading..."))
		b.WriteString("\n")
	case m.lastErr != nil:
		b.WriteString(st.Error.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	help := "↑/↓ navigate · enter select · esc close · del clear · ctrl+c quit"
	if m.creatable {
		help += " · ctrl+n create"
	}
	b.WriteString(st.Help.Render(help))
	return b.String()
}

func (m *Model) renderMenu() string {
	rows := m.rows()
	if len(rows) == 0 {
		return m.styles.Dim.Render("no options")
	}

	w := virtual.Calculate(m.scroll, virtual.Config{
		ItemHeight:      1,
		ContainerHeight: menuHeight,
		TotalItems:      len(rows),
		Overscan:        0,
	})

	var lines []string
	if w.Start > 0 {
		lines = append(lines, m.styles.Dim.Render(fmt.Sprintf("… %d above", w.Start)))
	}
	for i := w.Start; i < w.End; i++ {
		lines = append(lines, m.renderRow(rows[i]))
	}
	if w.End < len(rows) {
		lines = append(lines, m.styles.Dim.Render(fmt.Sprintf("… %d below", len(rows)-w.End)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(r row) string {
	st := m.styles
	if r.kind == rowGroup {
		return st.GroupLabel.Render(r.label)
	}
	opt := m.state.Filtered[r.index]
	label := opt.Label

	switch {
	case opt.Disabled:
		return st.Disabled.Render(label)
	case r.index == m.state.HighlightedIndex:
		return st.Highlighted.Render("▸ " + label)
	case m.state.IsSelected(opt.Value):
		return st.Selected.Render("✓ " + label)
	default:
		return st.Option.Render(label)
	}
}
