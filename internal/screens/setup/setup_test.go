package setup

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/session"
)

func testEngine(t *testing.T) *session.Engine {
	t.Helper()
	var qs []bank.Question
	for _, subject := range []string{"GK", "Math"} {
		for i := 0; i < 5; i++ {
			qs = append(qs, bank.Question{
				ID:      fmt.Sprintf("%s-%d", subject, i),
				Subject: subject,
				Level:   1,
				Text:    fmt.Sprintf("%s question %d", subject, i),
				Options: [4]string{"a", "b", "c", "d"},
				Correct: bank.OptionA,
			})
		}
	}
	set, err := bank.NewSet(qs)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	e, err := session.NewEngine(set, adaptive.DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func press(s *SetupScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func TestSetup_ListsSubjectsAndCounts(t *testing.T) {
	s := New(testEngine(t))
	view := s.View(100, 30)
	for _, want := range []string{"GK", "Math", "30 questions", "50 questions", "100 questions", "START"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSetup_StartWithoutSelection(t *testing.T) {
	s := New(testEngine(t))
	press(s, tab, tab)
	if s.focus != focusStart {
		t.Fatalf("focus = %d, want start", s.focus)
	}

	if cmd := press(s, enter); cmd != nil {
		t.Error("start must not transition without a selection")
	}
	if !strings.Contains(s.View(100, 30), session.ErrMissingSelection.Error()) {
		t.Error("expected missing selection error")
	}
}

func TestSetup_MissingCount(t *testing.T) {
	s := New(testEngine(t))
	press(s, enter, tab)
	if cmd := press(s, enter); cmd != nil {
		t.Error("start must not transition without a count")
	}
	if s.errMsg != session.ErrMissingSelection.Error() {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestSetup_FullFlow(t *testing.T) {
	s := New(testEngine(t))

	// Subject: second entry, enter advances focus to counts.
	press(s, down, enter)
	if s.focus != focusCount {
		t.Fatalf("focus = %d, want count", s.focus)
	}
	// Count: 50, enter advances to start.
	press(s, down, enter)

	sel := s.Selection()
	if sel.Subject != "Math" || sel.Count != 50 {
		t.Fatalf("selection = %+v", sel)
	}
	if !strings.Contains(s.View(100, 30), "50 questions in 50:00") {
		t.Error("expected budget info line")
	}

	cmd := press(s, enter)
	if cmd == nil {
		t.Fatal("expected transition to the quiz")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen, got %T", msg.Screen)
	}
}

func TestSetup_FocusWraps(t *testing.T) {
	s := New(testEngine(t))
	press(s, tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.focus != focusStart {
		t.Errorf("focus = %d, want start after wrapping left", s.focus)
	}
	press(s, tab)
	if s.focus != focusSubject {
		t.Errorf("focus = %d, want subject after wrapping right", s.focus)
	}
}

func TestSetup_Esc(t *testing.T) {
	s := New(testEngine(t))
	cmd := press(s, esc)
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}
