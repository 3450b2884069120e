package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/history"
	"github.com/abhisek/adaptiq/internal/screens/setup"
	"github.com/abhisek/adaptiq/internal/screens/welcome"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// HomeScreen is the main menu.
type HomeScreen struct {
	menu      components.Menu
	subjects  int
	questions int
	policy    string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. journal may be nil when history is
// disabled.
func New(engine *session.Engine, journal history.Journal) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START TEST", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(engine)}
			}
		}},
		{Label: "HISTORY", Disabled: journal == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(journal)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	policy := engine.Config().Preset
	if policy == "" {
		policy = "custom"
	}
	return &HomeScreen{
		menu:      components.NewMenu(items),
		subjects:  len(engine.Bank().Subjects()),
		questions: engine.Bank().Len(),
		policy:    policy,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < layout.CompactHeight+4 || width < 100
	cw := components.ContentWidth(width)

	var sections []string

	banner := welcome.RenderBanner(width, 6)
	if compact {
		banner = welcome.RenderBanner(0, 0)
	}
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, banner))
	sections = append(sections, h.renderStatsBar(cw))
	sections = append(sections, h.renderMenu(cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStatsBar(cw int) string {
	subjects := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	questions := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	policy := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		subjects.Render(fmt.Sprintf("◆ %d SUBJECTS", h.subjects)),
		questions.Render(fmt.Sprintf("? %d QUESTIONS", h.questions)),
		policy.Render("⚙ "+strings.ToUpper(h.policy)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func (h *HomeScreen) renderMenu(cw int) string {
	buttons := make([]string, 0, len(h.menu.Items))
	for i, item := range h.menu.Items {
		if item.Disabled {
			buttons = append(buttons, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(item.Label))
			continue
		}
		buttons = append(buttons, components.MenuButton(item.Label, i == h.menu.Selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
