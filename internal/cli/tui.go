package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/uiregistry/pkg/registry"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// ComponentListModel - Interactive component browser
// =============================================================================

// ComponentListModel is the bubbletea model for browsing registry entries.
// Selecting an entry with enter records it in Selected and quits.
type ComponentListModel struct {
	Entries  []registry.Entry
	Cursor   int
	Offset   int
	Height   int
	Filter   string
	Selected *registry.Entry

	// Namespace and Extension build the install path shown in the detail pane.
	Namespace string
	Extension string

	filtering bool
	visible   []int
}

// NewComponentListModel creates a browser over the entries of reg.
func NewComponentListModel(reg *registry.Registry, namespace, extension string) ComponentListModel {
	m := ComponentListModel{
		Entries:   reg.Entries(),
		Height:    15,
		Namespace: namespace,
		Extension: extension,
	}
	m.applyFilter()
	return m
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.filtering = true
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter":
			if e, ok := m.current(); ok {
				m.Selected = &e
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ComponentListModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes:
		m.Filter += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

// applyFilter recomputes the visible entries and resets the cursor.
func (m *ComponentListModel) applyFilter() {
	m.visible = m.visible[:0]
	q := strings.ToLower(m.Filter)
	for i, e := range m.Entries {
		if q == "" || strings.Contains(e.Name, q) || strings.Contains(strings.ToLower(e.Description), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m *ComponentListModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.visible) {
		return
	}
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ComponentListModel) current() (registry.Entry, bool) {
	if m.Cursor >= len(m.visible) {
		return registry.Entry{}, false
	}
	return m.Entries[m.visible[m.Cursor]], true
}

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Components"))
	b.WriteString("\n")
	if m.filtering || m.Filter != "" {
		b.WriteString(listDimStyle.Render("filter: ") + StyleHighlight.Render(m.Filter))
		if m.filtering {
			b.WriteString(StyleHighlight.Render("▏"))
		}
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  ⏎ select  q quit"))
	}
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		e := m.Entries[m.visible[i]]
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + e.Name))
		} else {
			list.WriteString(listNormalStyle.Render("  " + e.Name))
		}
		list.WriteString("\n")
	}
	if len(m.visible) == 0 {
		list.WriteString(listDimStyle.Render("  no matches"))
	}

	detail := ""
	if e, ok := m.current(); ok {
		detail = detailBoxStyle.Render(m.detail(e))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))

	return b.String()
}

func (m ComponentListModel) detail(e registry.Entry) string {
	label := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	lines := []string{
		StyleTitle.Render(e.DisplayName),
		StyleDim.Render(e.Description),
		"",
		label.Render("deps") + StyleValue.Render(strings.Join(e.Dependencies, ", ")),
	}
	if len(e.RegistryDependencies) > 0 {
		lines = append(lines, label.Render("requires")+StyleValue.Render(strings.Join(e.RegistryDependencies, ", ")))
	}
	lines = append(lines,
		label.Render("path")+StyleValue.Render(fmt.Sprintf("components/%s/%s.%s", m.Namespace, e.Name, m.Extension)),
		label.Render("lines")+StyleNumber.Render(fmt.Sprint(strings.Count(e.Content(), "\n")+1)),
	)
	return strings.Join(lines, "\n")
}
