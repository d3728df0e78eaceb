package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/appgraph/pkg/flow"
)

func press(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func TestPaletteModel_Select(t *testing.T) {
	m, cmd := press(NewPaletteModel(flow.PaletteTypes),
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if got := m.(PaletteModel).Selected; got != flow.TypeOutput {
		t.Errorf("Selected = %q, want %q", got, flow.TypeOutput)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPaletteModel_Quit(t *testing.T) {
	m, cmd := press(NewPaletteModel(flow.PaletteTypes), tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.(PaletteModel).Selected; got != "" {
		t.Errorf("Selected = %q, want empty", got)
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestPaletteModel_CursorBounds(t *testing.T) {
	m, _ := press(NewPaletteModel(flow.PaletteTypes), tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.(PaletteModel).Cursor; got != 0 {
		t.Errorf("Cursor = %d, want 0", got)
	}
}

func TestPaletteModel_View(t *testing.T) {
	view := NewPaletteModel(flow.PaletteTypes).View()
	for _, typ := range flow.PaletteTypes {
		if !strings.Contains(view, typ+" node") {
			t.Errorf("View() missing %q", typ+" node")
		}
	}
}
