package history

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/summary"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// pageSize is the number of sessions listed.
const pageSize = 50

// Journal is the read side of the event store used by this screen.
type Journal interface {
	QuerySessions(ctx context.Context, opts store.QueryOpts) ([]store.SessionRecord, error)
	SessionAttempts(ctx context.Context, sessionID string) ([]store.AttemptRecord, error)
}

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type attemptsLoadedMsg struct {
	Session  store.SessionRecord
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen lists past sessions. Enter opens the summary of the
// highlighted one.
type HistoryScreen struct {
	journal  Journal
	sessions []store.SessionRecord
	table    table.Model
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(journal Journal) *HistoryScreen {
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

	return &HistoryScreen{
		journal: journal,
		table: table.New(
			table.WithColumns([]table.Column{
				{Title: "Date", Width: 16},
				{Title: "Subject", Width: 12},
				{Title: "Score", Width: 8},
				{Title: "Acc", Width: 5},
				{Title: "Level", Width: 12},
				{Title: "Ended", Width: 10},
			}),
			table.WithWidth(tableWidth),
			table.WithFocused(true),
			table.WithStyles(styles),
		),
	}
}

// tableWidth fits the column widths plus cell padding.
const tableWidth = 75

func (s *HistoryScreen) Init() tea.Cmd {
	journal := s.journal
	return func() tea.Msg {
		sessions, err := journal.QuerySessions(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sessions = msg.Sessions
		s.table.SetRows(rows(msg.Sessions))
		return s, nil

	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		sum := session.SummaryFromJournal(msg.Session, msg.Attempts)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(sum)}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s, s.openSelected()
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *HistoryScreen) openSelected() tea.Cmd {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.sessions) {
		return nil
	}
	rec := s.sessions[i]
	journal := s.journal
	return func() tea.Msg {
		attempts, err := journal.SessionAttempts(context.Background(), rec.SessionID)
		return attemptsLoadedMsg{Session: rec, Attempts: attempts, Err: err}
	}
}

func rows(sessions []store.SessionRecord) []table.Row {
	out := make([]table.Row, 0, len(sessions))
	for _, rec := range sessions {
		sum := session.SummaryFromJournal(rec, nil)
		level := sum.StartLevel
		if rec.Ended && rec.FinalLevel != rec.StartLevel {
			level = sum.StartLevel + "→" + sum.FinalLevel
		}
		out = append(out, table.Row{
			rec.StartedAt.Local().Format("2006-01-02 15:04"),
			rec.Subject,
			fmt.Sprintf("%d/%d", rec.Correct, rec.Answered),
			fmt.Sprintf("%.0f%%", rec.Accuracy()*100),
			level,
			string(sum.EndReason),
		})
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, str)
	}

	if !s.loaded {
		return center(theme.Hint.Render("Loading history..."))
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
	}
	if len(s.sessions) == 0 {
		return center(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("No tests yet. Start one from the home screen!"))
	}

	s.table.SetHeight(max(height-2, 3))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.table.View())
}
