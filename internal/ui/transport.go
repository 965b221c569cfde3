// Package ui renders the interactive playback view: transport state,
// loop position, and the most recent triggers, updated from a channel
// of playback events.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// EventKind discriminates playback events.
type EventKind uint8

const (
	// EventTrigger reports one fired note.
	EventTrigger EventKind = iota
	// EventPosition reports the beat position after a tick.
	EventPosition
	// EventState reports a transport state change.
	EventState
)

// Event is one update from the playback loop.
type Event struct {
	Kind       EventKind
	Instrument string
	Note       string
	Beat       float64
	Position   float64
	Loop       float64
	Tempo      float64
	State      string
}

const recentTriggers = 8

type transportModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	state   string
	tempo   float64
	pos     float64
	loop    float64
	recent  []string
	width   int
	done    bool
}

type eventMsg Event
type doneMsg struct{}

// NewTransportModel returns a Bubble Tea model that renders playback of
// the named pattern. The model quits when the event channel closes.
func NewTransportModel(title string, loop, tempo float64, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &transportModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		state:   "playing",
		tempo:   tempo,
		loop:    loop,
		width:   80,
	}
}

func (m *transportModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *transportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *transportModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	header := fmt.Sprintf("%s  %s  %.0f bpm", truncate(m.title, m.width/2), m.state, m.tempo)
	if m.done {
		header = "done: " + header
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	for _, line := range m.recent {
		b.WriteString("  ")
		b.WriteString(noteStyle.Render(line))
		b.WriteString("\n")
	}
	for i := len(m.recent); i < recentTriggers; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.loop > 0 {
		b.WriteString(m.prog.ViewAs(m.pos / m.loop))
		b.WriteString(fmt.Sprintf("  beat %5.2f / %.2f", m.pos, m.loop))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *transportModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *transportModel) applyEvent(ev Event) tea.Cmd {
	switch ev.Kind {
	case EventTrigger:
		line := fmt.Sprintf("%6.2f  %-8s %s", ev.Beat, ev.Instrument, ev.Note)
		m.recent = append(m.recent, line)
		if len(m.recent) > recentTriggers {
			m.recent = m.recent[len(m.recent)-recentTriggers:]
		}
	case EventPosition:
		m.pos = ev.Position
		if ev.Loop > 0 {
			m.loop = ev.Loop
		}
		if ev.Tempo > 0 {
			m.tempo = ev.Tempo
		}
	case EventState:
		m.state = ev.State
	}
	return nil
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
