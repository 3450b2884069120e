package summary

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// SummaryScreen shows the result of a session: score, level movement,
// per-level accuracy and a scrollable transcript.
type SummaryScreen struct {
	summary    *session.Summary
	transcript table.Model
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	s := &SummaryScreen{summary: summary}
	s.transcript = newTranscriptTable(summary)
	return s
}

// transcriptWidth fits the column widths plus cell padding.
const transcriptWidth = 66

func newTranscriptTable(sum *session.Summary) table.Model {
	rows := make([]table.Row, 0)
	if sum != nil {
		for _, a := range sum.Attempts {
			res := "✗"
			if a.Correct {
				res = "✓"
			}
			rows = append(rows, table.Row{
				fmt.Sprint(a.Number), a.Level, a.Topic, a.Chosen, a.Answer, res,
				session.FormatDuration(a.Time),
			})
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(theme.TextDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.Text).
		Background(theme.Primary).
		Bold(false)

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Level", Width: 12},
			{Title: "Topic", Width: 18},
			{Title: "You", Width: 4},
			{Title: "Ans", Width: 4},
			{Title: "", Width: 2},
			{Title: "Time", Width: 6},
		}),
		table.WithRows(rows),
		table.WithWidth(transcriptWidth),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Test Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	s.transcript, cmd = s.transcript.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(sum.EndReason))))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  ·  %s", sum.Subject, session.FormatDuration(sum.Duration)))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Score: %d / %d      Accuracy: %.0f%%      Level: %s → %s",
		sum.Score, sum.Answered, sum.Accuracy*100, sum.StartLevel, sum.FinalLevel)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(stats)))
	b.WriteString("\n\n")

	if len(sum.ByLevel) > 0 {
		parts := make([]string, 0, len(sum.ByLevel))
		for _, g := range sum.ByLevel {
			style := lipgloss.NewStyle().Foreground(theme.Secondary)
			if g.Accuracy() < 0.5 {
				style = style.Foreground(theme.Accent)
			}
			parts = append(parts, style.Render(fmt.Sprintf("%s %d/%d", g.Name, g.Correct, g.Asked)))
		}
		b.WriteString(center(strings.Join(parts, "   ")))
		b.WriteString("\n\n")
	}

	if len(sum.Attempts) == 0 {
		b.WriteString(center(theme.Hint.Render("No questions answered.")))
		return b.String()
	}

	used := lipgloss.Height(b.String())
	s.transcript.SetHeight(max(height-used-1, 3))
	b.WriteString(center(s.transcript.View()))
	return b.String()
}

func headline(reason session.EndReason) string {
	switch reason {
	case session.EndCompleted:
		return "Test complete!"
	case session.EndTimeout:
		return "Time's up!"
	case session.EndQuit:
		return "Test ended early"
	default:
		return "Test summary"
	}
}
