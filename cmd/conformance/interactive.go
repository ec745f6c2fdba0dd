package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectScenario modelState = iota
	stateShowReport
)

type interactiveModel struct {
	opts     *config.Options
	selected int
	state    modelState
	report   viewport.Model
	outcome  *outcome
	err      error
	width    int
	height   int
}

type scenarioDoneMsg struct {
	outcome outcome
	err     error
}

func newInteractiveModel(opts *config.Options) *interactiveModel {
	return &interactiveModel{
		opts:   opts,
		state:  stateSelectScenario,
		report: viewport.New(80, 20),
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) runSelected() tea.Cmd {
	s := scenarios[m.selected]
	return func() tea.Msg {
		o, err := runScenario(s, m.opts)
		return scenarioDoneMsg{outcome: o, err: err}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.report.Width = msg.Width - 2
		if msg.Height > 8 {
			m.report.Height = msg.Height - 6
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectScenario && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectScenario && m.selected < len(scenarios)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectScenario {
				return m, m.runSelected()
			}

		case "esc":
			if m.state == stateShowReport {
				m.state = stateSelectScenario
				m.outcome = nil
				m.err = nil
			}
		}

	case scenarioDoneMsg:
		m.err = msg.err
		if msg.err == nil {
			o := msg.outcome
			m.outcome = &o
			m.report.SetContent(renderReports(o.Reports))
			m.report.GotoTop()
		}
		m.state = stateShowReport
	}

	if m.state == stateShowReport {
		var cmd tea.Cmd
		m.report, cmd = m.report.Update(msg)
		return m, cmd
	}
	return m, nil
}

func renderReports(reports []diag.Report) string {
	if len(reports) == 0 {
		return okStyle.Render("No findings. The runtime behaved conformantly.")
	}
	var b strings.Builder
	for _, r := range reports {
		line := fmt.Sprintf("[%s] %s: %s: %s", r.Severity, r.Code, r.Operation, r.Message)
		switch r.Severity {
		case diag.SeverityError:
			b.WriteString(errorStyle.Render(line))
		case diag.SeverityWarning:
			b.WriteString(warnLineStyle.Render(line))
		default:
			b.WriteString(helpStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("OpenXR Conformance Layer"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectScenario:
		b.WriteString("Select a scenario to run:\n\n")
		for i, s := range scenarios {
			line := nameStyle.Render(s.name) + "  " + descStyle.Render(s.desc)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + s.name))
				b.WriteString("  " + descStyle.Render(s.desc))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateShowReport:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("esc back • q quit"))
			break
		}
		verdict := okStyle.Render("PASS")
		if m.outcome.Failed {
			verdict = errorStyle.Render("FAIL")
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n\n", verdict,
			nameStyle.Render(m.outcome.Scenario),
			helpStyle.Render("run "+m.outcome.RunID)))
		b.WriteString(m.report.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func runInteractive(opts *config.Options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
