package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/summary"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// timerTickMsg is sent every second to refresh the countdown.
type timerTickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// QuizScreen runs one started session until it ends, then replaces itself
// with the summary.
type QuizScreen struct {
	engine *session.Engine
	state  *session.SessionState
	picker components.OptionPicker

	feedback    *session.Feedback
	hint        string
	confirmQuit bool
	finished    bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen for a session returned by engine.Start.
func New(engine *session.Engine, st *session.SessionState) *QuizScreen {
	s := &QuizScreen{engine: engine, state: st}
	if st.Current != nil {
		s.picker = components.NewOptionPicker(*st.Current)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return tickCmd()
}

func (s *QuizScreen) Title() string {
	return s.state.Subject
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "y", Description: "End test"},
			{Key: "n", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Choose"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// Status shows time left, question number and current level.
func (s *QuizScreen) Status() string {
	st := s.state
	n := min(st.Answered()+1, st.TargetCount)
	if s.feedback != nil {
		n = st.Answered()
	}
	return fmt.Sprintf("⏱ %s  Q %d/%d  %s  ",
		session.FormatDuration(st.Remaining()), n, st.TargetCount,
		s.engine.Config().LevelName(st.Level()))
}

// Close ends the session when the program exits mid-test.
func (s *QuizScreen) Close() {
	s.engine.Quit(s.state)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}

	switch msg := msg.(type) {
	case timerTickMsg:
		if s.engine.Tick(s.state) {
			return s, s.finish()
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.engine.Quit(s.state)
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.feedback != nil {
		return s, s.advance()
	}

	switch key {
	case "up", "k":
		s.picker.Move(-1)
	case "down", "j":
		s.picker.Move(1)
	case "space":
		s.picker.PickCursor()
		s.hint = ""
	case "enter":
		return s, s.submit()
	default:
		if o, ok := optionForKey(key); ok {
			s.picker.Pick(o)
			s.hint = ""
		}
	}
	return s, nil
}

// optionForKey maps a-d and 1-4 to options.
func optionForKey(key string) (bank.Option, bool) {
	if len(key) != 1 {
		return "", false
	}
	o, err := bank.ParseOption(key)
	return o, err == nil
}

func (s *QuizScreen) submit() tea.Cmd {
	fb, err := s.engine.Submit(s.state, s.picker.Chosen)
	switch {
	case errors.Is(err, session.ErrTimeUp), errors.Is(err, session.ErrSessionOver):
		return s.finish()
	case err != nil:
		s.hint = err.Error()
		return nil
	}

	s.feedback = fb
	s.hint = ""
	s.picker.Reveal(fb.Attempt.Chosen, fb.Attempt.Answer)
	return nil
}

func (s *QuizScreen) advance() tea.Cmd {
	if s.state.Ended() {
		return s.finish()
	}
	if err := s.engine.Advance(s.state); err != nil {
		if errors.Is(err, session.ErrTimeUp) || errors.Is(err, session.ErrSessionOver) {
			return s.finish()
		}
		s.hint = err.Error()
		return nil
	}
	s.feedback = nil
	s.picker = components.NewOptionPicker(*s.state.Current)
	return nil
}

func (s *QuizScreen) finish() tea.Cmd {
	s.finished = true
	sum := session.BuildSummary(s.state, s.engine.Config())
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *QuizScreen) View(width, height int) string {
	st := s.state
	cw := components.ContentWidth(width)

	if s.finished || (st.Current == nil && s.feedback == nil) {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Test over."))
	}

	q := st.Current
	if s.feedback != nil {
		q = &s.feedback.Question
	}

	var sections []string

	results := make([]bool, len(st.Transcript))
	for i, a := range st.Transcript {
		results[i] = a.Correct
	}
	sections = append(sections, components.NewProgressBar(
		fmt.Sprintf("%d/%d", st.Answered(), st.TargetCount), st.TargetCount, results, cw).View())

	meta := s.engine.Config().LevelName(st.CurrentLevel)
	if q.Topic != "" {
		meta += "  ·  " + q.Topic
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Info).Render(meta))

	sections = append(sections, components.FocusCard(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw-4).Render(q.Text), cw))

	sections = append(sections, s.picker.View(cw))

	switch {
	case s.confirmQuit:
		sections = append(sections, components.Card(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render("End the test now? (y/n)"), cw))
	case s.feedback != nil:
		sections = append(sections, s.renderFeedback(cw))
	case s.hint != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.hint))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) renderFeedback(cw int) string {
	fb := s.feedback
	var lines []string

	if fb.Attempt.Correct {
		lines = append(lines, theme.Correct.Render("✓ Correct!"))
	} else {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("✗ The answer is %s) %s",
			fb.Attempt.Answer, fb.Question.OptionText(fb.Attempt.Answer))))
	}

	if fb.Question.Explanation != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-4).
			Render(fb.Question.Explanation))
	}

	if c := fb.LevelChange; c != nil {
		cfg := s.engine.Config()
		text := fmt.Sprintf("Level down: %s → %s", cfg.LevelName(c.From), cfg.LevelName(c.To))
		style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		if c.Promoted() {
			text = fmt.Sprintf("Level up! %s → %s", cfg.LevelName(c.From), cfg.LevelName(c.To))
			style = style.Foreground(theme.Success)
		}
		lines = append(lines, style.Render(text))
	}

	if fb.Done {
		lines = append(lines, theme.Hint.Render("That was the last question. Press any key for your results."))
	}

	return components.Card(strings.Join(lines, "\n"), cw)
}
