package setup

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

type focusArea int

const (
	focusSubject focusArea = iota
	focusCount
	focusStart
	focusAreas
)

// SetupScreen collects the subject and question count for a new test.
type SetupScreen struct {
	engine   *session.Engine
	subjects components.Menu
	counts   components.Menu
	startBtn components.Button
	focus    focusArea
	errMsg   string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen over the engine's question bank.
func New(engine *session.Engine) *SetupScreen {
	stats := engine.Bank().Stats()
	subjectItems := make([]components.MenuItem, 0, len(stats))
	for _, st := range stats {
		subjectItems = append(subjectItems, components.MenuItem{Label: st.Subject})
	}

	countItems := make([]components.MenuItem, 0, len(session.CountChoices))
	for _, n := range session.CountChoices {
		countItems = append(countItems, components.MenuItem{Label: countLabel(n)})
	}

	s := &SetupScreen{
		engine:   engine,
		subjects: components.NewMenu(subjectItems),
		counts:   components.NewMenu(countItems),
	}
	s.startBtn = components.NewButton("START", false, s.start)
	s.setFocus(focusSubject)
	return s
}

func countLabel(n int) string {
	return fmt.Sprintf("%d questions", n)
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Test"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Next"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) setFocus(f focusArea) {
	s.focus = (f + focusAreas) % focusAreas
	s.subjects.Focused = s.focus == focusSubject
	s.counts.Focused = s.focus == focusCount
	s.startBtn.Active = s.focus == focusStart
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "right", "l":
		s.setFocus(s.focus + 1)
		return s, nil
	case "shift+tab", "left", "h":
		s.setFocus(s.focus - 1)
		return s, nil
	}

	switch s.focus {
	case focusSubject:
		s.subjects, _ = s.subjects.Update(msg)
		if isSelect(kmsg) && s.subjects.Chosen >= 0 {
			s.errMsg = ""
			s.setFocus(focusCount)
		}
	case focusCount:
		s.counts, _ = s.counts.Update(msg)
		if isSelect(kmsg) && s.counts.Chosen >= 0 {
			s.errMsg = ""
			s.setFocus(focusStart)
		}
	case focusStart:
		var cmd tea.Cmd
		s.startBtn, cmd = s.startBtn.Update(msg)
		return s, cmd
	}
	return s, nil
}

func isSelect(k tea.KeyMsg) bool {
	switch k.String() {
	case "enter", "space":
		return true
	}
	return false
}

// Selection returns what is chosen so far.
func (s *SetupScreen) Selection() session.Setup {
	var sel session.Setup
	sel.Subject = s.subjects.ChosenLabel()
	if i := s.counts.Chosen; i >= 0 && i < len(session.CountChoices) {
		sel.Count = session.CountChoices[i]
	}
	return sel
}

func (s *SetupScreen) start() tea.Cmd {
	st, err := s.engine.Start(s.Selection())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := quiz.New(s.engine, st)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	half := (cw - 2) / 2

	heading := func(label string, focused bool) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
		if focused {
			style = style.Foreground(theme.Primary)
		}
		return style.Render(label)
	}
	box := func(content string, focused bool) string {
		if focused {
			return components.FocusCard(content, half)
		}
		return components.Card(content, half)
	}

	subjects := box(heading("SUBJECT", s.focus == focusSubject)+"\n\n"+
		strings.TrimRight(s.subjects.View(), "\n"), s.focus == focusSubject)
	counts := box(heading("QUESTIONS", s.focus == focusCount)+"\n\n"+
		strings.TrimRight(s.counts.View(), "\n"), s.focus == focusCount)

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, subjects, "  ", counts),
		s.infoLine(),
		s.startBtn.View(),
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// infoLine describes the session the current selection would start.
func (s *SetupScreen) infoLine() string {
	cfg := s.engine.Config()
	sel := s.Selection()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if sel.Count == 0 {
		return dim.Render(fmt.Sprintf("%d seconds per question", cfg.SecondsPerQuestion))
	}
	budget := time.Duration(sel.Count*cfg.SecondsPerQuestion) * time.Second
	return dim.Render(fmt.Sprintf("%d questions in %s, starting at %s",
		sel.Count, session.FormatDuration(budget), cfg.LevelName(bank.Level(cfg.StartLevel))))
}
