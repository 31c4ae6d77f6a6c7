package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"portwatch/internal/inventory"
	"portwatch/internal/lsof"
	"portwatch/internal/view"
)

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	Snapshot(ctx context.Context) ([]lsof.Entry, error)
	Terminate(pid int) error
}

// mode is the explicit UI state. modeFilterEdit carries its in-progress text
// in the textinput; the committed filter lives in Model.filter.
type mode int

const (
	modeList mode = iota
	modeHelp
	modeFilterEdit
)

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller
	refresher  *inventory.Refresher

	// entries is the complete current snapshot. Rendering always goes
	// through filteredRows.
	entries  []lsof.Entry
	filter   string
	input    textinput.Model
	mode     mode
	selected int // index into filteredRows, -1 when nothing is selected

	keys   keyMap
	help   help.Model
	status string

	interval time.Duration
	width    int
	height   int
}

// New constructs a TUI model with default styles. The initial filter usually
// comes from the command line.
func New(ctrl Controller, interval time.Duration, initialFilter string) *Model {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "filter"

	return &Model{
		controller: ctrl,
		refresher:  inventory.NewRefresher(ctrl),
		filter:     initialFilter,
		input:      input,
		selected:   -1,
		keys:       defaultKeyMap(),
		help:       help.New(),
		interval:   interval,
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller, interval time.Duration, initialFilter string) error {
	m := New(ctrl, interval, initialFilter)
	defer m.refresher.Stop()
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(snapshotCmd(m.controller), pollTick(m.interval))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if entries, ok := m.refresher.Poll(); ok {
			m.swapSnapshot(entries)
		}
		return m, pollTick(m.interval)

	case snapshotMsg:
		m.swapSnapshot(msg.entries)
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

	case errMsg:
		m.status = fmt.Sprintf("Error: %v", msg.err)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFilterEdit:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.setFilter(m.input.Value())
			m.input.Blur()
			m.mode = modeList
		case key.Matches(msg, m.keys.Cancel):
			m.input.Blur()
			m.mode = modeList
		default:
			selectedPID := m.selectedPID()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			// The edited text is authoritative while editing, so the
			// selection re-resolves by pid against the narrowed view and
			// clears when that pid drops out.
			m.resolveSelection(selectedPID)
			return m, cmd
		}

	case modeHelp:
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Help) {
			m.mode = modeList
		}

	case modeList:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			// Escape clears the filter first; a second escape quits.
			if m.filter == "" {
				return m, tea.Quit
			}
			m.setFilter("")
		case key.Matches(msg, m.keys.Up):
			m.selected = view.Move(m.selected, -1, len(m.filteredRows()))
		case key.Matches(msg, m.keys.Down):
			m.selected = view.Move(m.selected, 1, len(m.filteredRows()))
		case key.Matches(msg, m.keys.Help):
			m.mode = modeHelp
		case key.Matches(msg, m.keys.Filter):
			m.input.SetValue(m.filter)
			m.input.CursorEnd()
			m.input.Focus()
			m.mode = modeFilterEdit
		case key.Matches(msg, m.keys.Kill):
			if rows := m.filteredRows(); m.selected >= 0 && m.selected < len(rows) {
				pid := rows[m.selected].PID
				m.status = fmt.Sprintf("Signalled pid %d", pid)
				return m, killCmd(m.controller, pid)
			}
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == modeHelp {
		return m.renderHelp()
	}
	return m.renderTable()
}

// activeFilter returns whichever filter text is authoritative for the
// current mode: the in-progress edit or the committed one.
func (m *Model) activeFilter() string {
	if m.mode == modeFilterEdit {
		return m.input.Value()
	}
	return m.filter
}

func (m *Model) filteredRows() []lsof.Entry {
	return view.Filter(m.entries, m.activeFilter())
}

// selectedPID returns the pid the highlight sits on, or -1 when nothing is
// selected under the current authoritative filter.
func (m *Model) selectedPID() int {
	if rows := m.filteredRows(); m.selected >= 0 && m.selected < len(rows) {
		return rows[m.selected].PID
	}
	return -1
}

// resolveSelection re-resolves a pid against the current filtered view.
// Selection is carried by pid identity, never by row position: if the pid no
// longer appears, the selection clears.
func (m *Model) resolveSelection(pid int) {
	m.selected = -1
	if pid < 0 {
		return
	}
	if idx, ok := view.PreserveSelection(pid, m.filteredRows()); ok {
		m.selected = idx
	}
}

// swapSnapshot replaces the current snapshot while keeping the selection
// pinned to the same pid, wherever it landed in the new filtered view.
func (m *Model) swapSnapshot(entries []lsof.Entry) {
	selectedPID := m.selectedPID()
	m.entries = entries
	m.resolveSelection(selectedPID)
	if rows := m.filteredRows(); m.selected < 0 && len(rows) == 1 {
		m.selected = 0
	}
}

func (m *Model) setFilter(filter string) {
	selectedPID := m.selectedPID()
	m.filter = filter
	m.resolveSelection(selectedPID)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	editStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func (m *Model) renderTable() string {
	var b strings.Builder

	title := titleStyle.Render("Ports")
	switch {
	case m.mode == modeFilterEdit:
		title += " " + editStyle.Render(m.input.View())
	case m.filter != "":
		title += " " + filterStyle.Render("/"+m.filter)
	}
	b.WriteString(title)
	b.WriteByte('\n')

	pidW := 7
	cmdW, portW := m.columnWidths(pidW)

	b.WriteString(headerStyle.Render(fmt.Sprintf("%*s  %-*s %s", pidW, "PID", cmdW, "Command", "Ports")))
	b.WriteByte('\n')

	rows := m.filteredRows()
	if len(rows) == 0 {
		b.WriteString("No listening processes match.\n")
	}
	for i, entry := range rows {
		line := fmt.Sprintf("%*s  %-*s %s",
			pidW, strconv.Itoa(entry.PID),
			cmdW, runewidth.Truncate(entry.Command, cmdW, "…"),
			runewidth.Truncate(strings.Join(entry.Ports, ","), portW, "…"),
		)
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) columnWidths(pidW int) (cmdW, portW int) {
	total := m.width
	if total <= 0 {
		total = 80
	}
	rest := total - pidW - 4
	if rest < 20 {
		rest = 20
	}
	cmdW = rest / 2
	portW = rest - cmdW
	return cmdW, portW
}

func (m *Model) renderHelp() string {
	lines := []string{
		titleStyle.Render("Help"),
		"",
		"<esc>       clear filter / close help / quit",
		"<k>, <up>   select previous",
		"<j>, <down> select next",
		"<x>         kill selected",
		"</>         edit filter",
		"<?>         toggle this help",
		"",
		statusStyle.Render("Tip: portwatch accepts CLI args as the initial filter,"),
		statusStyle.Render("e.g. `portwatch 8080`."),
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Kill    key.Binding
	Filter  key.Binding
	Help    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Kill:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "kill")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/quit")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Kill, k.Filter, k.Help, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Kill, k.Filter},
		{k.Help, k.Cancel, k.Quit},
	}
}

type tickMsg time.Time

type snapshotMsg struct {
	entries []lsof.Entry
	// err carries a best-effort failure (a refused signal) that arrived
	// alongside the fresh snapshot.
	err error
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func pollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		entries, err := ctrl.Snapshot(ctx)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{entries: entries}
	}
}

// killCmd signals the pid and immediately requests a fresh snapshot instead
// of waiting for the background cadence. The signal is best-effort: a
// failure only shows up as a status line, and the re-enumeration happens
// either way so the snapshot tells the operator what actually happened.
func killCmd(ctrl Controller, pid int) tea.Cmd {
	return func() tea.Msg {
		killErr := ctrl.Terminate(pid)
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		entries, err := ctrl.Snapshot(ctx)
		if err != nil {
			if killErr != nil {
				return errMsg{killErr}
			}
			return errMsg{err}
		}
		return snapshotMsg{entries: entries, err: killErr}
	}
}
