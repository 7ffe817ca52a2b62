package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasmkit/ir"
	"github.com/wippyai/wasmkit/kit"
)

var (
	titleStyle = headerStyle

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateShowIR
)

type funcInfo struct {
	name  string
	sig   string
	index int
}

type interactiveModel struct {
	err      error
	kit      *kit.Kit
	filename string
	funcs    []funcInfo
	visible  []funcInfo
	filter   textinput.Model
	view     viewport.Model
	selected int
	width    int
	height   int
	state    modelState
}

func newInteractiveModel(filename string, data []byte) *interactiveModel {
	filter := textinput.New()
	filter.Placeholder = "filter by name or index"
	filter.Prompt = "/ "
	filter.Width = 40
	filter.Focus()

	return &interactiveModel{
		kit:      kit.New(data, kit.WithLazyIR()),
		filename: filename,
		filter:   filter,
		view:     viewport.New(80, 20),
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err   error
	funcs []funcInfo
}

type liftedMsg struct {
	err  error
	text string
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.loadModule, textinput.Blink)
}

func (m *interactiveModel) loadModule() tea.Msg {
	mod, err := m.kit.IR()
	if err != nil {
		return loadedMsg{err: err}
	}

	funcs := make([]funcInfo, 0, len(mod.Functions))
	for i, fn := range mod.Functions {
		name := fmt.Sprintf("func[%d]", i)
		switch {
		case len(fn.Exports) > 0:
			name += " " + strings.Join(fn.Exports, ",")
		case fn.Imported():
			name += " " + fn.Import.Module + "." + fn.Import.Name
		}
		funcs = append(funcs, funcInfo{name: name, sig: funcTypeString(fn.Signature), index: i})
	}
	return loadedMsg{funcs: funcs}
}

func (m *interactiveModel) liftSelected() tea.Msg {
	f := m.visible[m.selected]
	fn, err := m.kit.Function(f.index)
	if err != nil {
		return liftedMsg{err: err}
	}
	if fn.Imported() {
		return liftedMsg{text: fmt.Sprintf("(import %q %q)\n", fn.Import.Module, fn.Import.Name)}
	}
	return liftedMsg{text: ir.Sprint(fn.Body)}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-6, 3)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down":
			if m.state == stateSelectFunc && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectFunc && len(m.visible) > 0 {
				return m, m.liftSelected
			}

		case "esc":
			switch m.state {
			case stateShowIR:
				m.state = stateSelectFunc
				m.err = nil
				return m, nil
			case stateSelectFunc:
				if m.filter.Value() == "" {
					return m, tea.Quit
				}
				m.filter.SetValue("")
				m.applyFilter()
				return m, nil
			}

		case "q":
			if m.state == stateShowIR {
				return m, tea.Quit
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.funcs = msg.funcs
		m.applyFilter()
		return m, nil

	case liftedMsg:
		m.err = msg.err
		m.view.SetContent(msg.text)
		m.view.GotoTop()
		m.state = stateShowIR
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectFunc:
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.applyFilter()
		}
	case stateShowIR:
		m.view, cmd = m.view.Update(msg)
	}
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, f := range m.funcs {
		if query == "" || strings.Contains(strings.ToLower(f.name), query) {
			m.visible = append(m.visible, f)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowIR {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}

	if m.funcs == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("wasmkit"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for _, f := range m.listWindow() {
			if f.index == m.visible[m.selected].index {
				b.WriteString(selectedStyle.Render("> " + f.name + " " + f.sig))
			} else {
				b.WriteString("  " + funcStyle.Render(f.name) + " " + typeStyle.Render(f.sig))
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("  no matching functions"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter lift • esc quit"))

	case stateShowIR:
		f := m.visible[m.selected]
		b.WriteString(funcStyle.Render(f.name) + " " + typeStyle.Render(f.sig))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		} else {
			b.WriteString(m.view.View())
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

// listWindow returns the visible rows around the selection that fit the
// terminal height.
func (m *interactiveModel) listWindow() []funcInfo {
	rows := len(m.visible)
	if m.height > 0 {
		rows = max(m.height-8, 1)
	}
	if rows >= len(m.visible) {
		return m.visible
	}
	start := min(max(m.selected-rows/2, 0), len(m.visible)-rows)
	return m.visible[start : start+rows]
}

func runInteractive(filename string, data []byte) error {
	p := tea.NewProgram(newInteractiveModel(filename, data), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
