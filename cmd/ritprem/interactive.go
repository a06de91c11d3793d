package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ritprem/ritprem/wafer"
)

const pageSize = 12

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	depthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	concStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

type interactiveModel struct {
	err    error
	wafer  *wafer.Wafer
	opts   wafer.Options
	status string
	input  textinput.Model
	cursor int
	state  modelState
}

type loadedMsg struct {
	err   error
	wafer *wafer.Wafer
}

func newInteractiveModel(opts wafer.Options) *interactiveModel {
	return &interactiveModel{opts: opts, state: stateBrowse}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadWafer
}

func (m *interactiveModel) loadWafer() tea.Msg {
	w, err := wafer.New(m.opts)
	return loadedMsg{wafer: w, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateEdit {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.close()
			return m, tea.Quit

		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-pageSize)
		case "pgdown":
			m.move(pageSize)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if m.wafer != nil {
				m.cursor = max(m.wafer.Len()-1, 0)
			}

		case "enter", "e":
			if m.wafer == nil {
				break
			}
			ti := textinput.New()
			ti.Placeholder = m.opts.Element + " 5e18"
			ti.Prompt = "symbol density: "
			ti.Width = 40
			ti.Focus()
			m.input = ti
			m.status = ""
			m.state = stateEdit
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.wafer = msg.wafer
	}
	return m, nil
}

func (m *interactiveModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.close()
		return m, tea.Quit
	case "esc":
		m.state = stateBrowse
		return m, nil
	case "enter":
		m.status = m.apply(m.input.Value())
		m.state = stateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply parses "SYMBOL DENSITY" and writes it to the selected point.
func (m *interactiveModel) apply(value string) string {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return errorStyle.Render("expected: symbol density")
	}
	density, err := parseDose(fields[1])
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	if err := m.wafer.SetDensity(m.cursor, fields[0], density); err != nil {
		return errorStyle.Render(err.Error())
	}
	return resultStyle.Render(fmt.Sprintf("point %d: %s = %s", m.cursor, fields[0], density))
}

func (m *interactiveModel) move(delta int) {
	if m.wafer == nil || m.wafer.Len() == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), m.wafer.Len()-1)
}

func (m *interactiveModel) close() {
	if m.wafer != nil {
		_ = m.wafer.Close()
		m.wafer = nil
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.wafer == nil {
		return "Building wafer..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("RITPREM"))
	b.WriteString(fmt.Sprintf(" %.3f µm / %.3f µm  points %d  profiles %d  live %d\n\n",
		m.opts.Length, m.opts.Step, m.wafer.Len(), m.wafer.DistinctProfiles(), m.wafer.Live()))

	start := max(min(m.cursor-pageSize/2, m.wafer.Len()-pageSize), 0)
	end := min(start+pageSize, m.wafer.Len())
	for i := start; i < end; i++ {
		line := m.formatPoint(i)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case stateBrowse:
		if m.status != "" {
			b.WriteString(m.status)
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ move • pgup/pgdn page • enter set density • q quit"))
	case stateEdit:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter apply • esc back"))
	}
	return b.String()
}

func (m *interactiveModel) formatPoint(i int) string {
	p, err := m.wafer.Point(i)
	if err != nil {
		return err.Error()
	}
	var parts []string
	for _, c := range p.Concentrations() {
		parts = append(parts, concStyle.Render(c.String()))
	}
	return depthStyle.Render(fmt.Sprintf("%8.3f µm", m.wafer.Depth(i))) + "  " + strings.Join(parts, " ")
}

func runInteractive(opts wafer.Options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
