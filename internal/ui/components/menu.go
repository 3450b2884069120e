package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Chosen marks an item picked with
// enter when the menu is used as a single-choice list; -1 means none.
type Menu struct {
	Items    []MenuItem
	Selected int
	Chosen   int
	Focused  bool
}

// NewMenu creates a new focused menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
		Chosen:   -1,
		Focused:  true,
	}
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter", "space":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Disabled {
				return m, nil
			}
			m.Chosen = m.Selected
			if item.Action != nil {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// ChosenLabel returns the label of the chosen item, or "".
func (m Menu) ChosenLabel() string {
	if m.Chosen < 0 || m.Chosen >= len(m.Items) {
		return ""
	}
	return m.Items[m.Chosen].Label
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		mark := "  "
		if i == m.Chosen {
			mark = "● "
		}
		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + mark + item.Label))
		case i == m.Selected && m.Focused:
			b.WriteString(theme.Selected.Render("  ▸ " + mark + item.Label))
		case i == m.Chosen:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("    " + mark + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + mark + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
