package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/appgraph/pkg/flow"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	chipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 2)
	chipSelectedStyle = chipStyle.BorderForeground(colorCyan).Foreground(colorCyan)
)

// PaletteModel is the bubbletea model for picking the type of node to add.
type PaletteModel struct {
	Types    []string
	Cursor   int
	Selected string
}

func NewPaletteModel(types []string) PaletteModel {
	return PaletteModel{Types: types}
}

func (m PaletteModel) Init() tea.Cmd {
	return nil
}

func (m PaletteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h", "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "right", "l", "down", "j", "tab":
		if m.Cursor < len(m.Types)-1 {
			m.Cursor++
		}
	case "enter", " ":
		if len(m.Types) > 0 {
			m.Selected = m.Types[m.Cursor]
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m PaletteModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Add Node"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ choose  ⏎ add  q quit"))
	b.WriteString("\n\n")

	chips := make([]string, len(m.Types))
	for i, typ := range m.Types {
		label := typ + " node"
		if i == m.Cursor {
			chips[i] = chipSelectedStyle.Render(listSelectedStyle.Render(label))
		} else {
			chips[i] = chipStyle.Render(listNormalStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n")
	return b.String()
}

// pickPaletteType runs the picker and returns the chosen type, or "" if the
// user quit without choosing.
func pickPaletteType() (string, error) {
	final, err := tea.NewProgram(NewPaletteModel(flow.PaletteTypes)).Run()
	if err != nil {
		return "", err
	}
	return final.(PaletteModel).Selected, nil
}
