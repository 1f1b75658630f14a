package shell

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/midbel/gridcalc/config"
)

// ConfigMsg carries a configuration reloaded while the shell runs.
type ConfigMsg struct {
	Config config.Config
	Err    error
}

const maxHistory = 500

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type Model struct {
	session *Session
	input   textinput.Model
	history []string
	height  int
}

func NewModel(s *Session) Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = "help"
	in.Focus()

	m := Model{
		session: s,
		input:   in,
	}
	m.print(s.Show())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case ConfigMsg:
		m.reload(msg)
		return m, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			if m.run(line) {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	lines := m.history
	if m.height > 1 && len(lines) > m.height-1 {
		lines = lines[len(lines)-m.height+1:]
	}
	var str strings.Builder
	for _, line := range lines {
		str.WriteString(line)
		str.WriteString("\n")
	}
	str.WriteString(m.input.View())
	return tea.NewView(str.String())
}

// run executes line and reports whether the session is over.
func (m *Model) run(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if m.session.Config().ClearConsole {
		m.history = m.history[:0]
	}
	m.print(prompt + line)
	res := m.session.Exec(line)
	if res.Message != "" {
		style := successStyle
		if !res.Ok {
			style = failureStyle
		}
		msg := Result{Ok: res.Ok, Message: res.Message}
		m.print(style.Render(msg.String()))
	}
	if res.Output != "" {
		m.print(res.Output)
	}
	return m.session.Done()
}

func (m *Model) reload(msg ConfigMsg) {
	if msg.Err != nil {
		m.print(failureStyle.Render("Error: configuration not reloaded: " + msg.Err.Error()))
		return
	}
	m.session.Configure(msg.Config)
	m.print(successStyle.Render("Success: configuration reloaded"))
	m.print(m.session.Show())
}

func (m *Model) print(str string) {
	m.history = append(m.history, strings.Split(strings.TrimRight(str, "\n"), "\n")...)
	if n := len(m.history); n > maxHistory {
		m.history = slices.Delete(m.history, 0, n-maxHistory)
	}
}
