package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/summary"
	"github.com/abhisek/adaptiq/internal/session"
)

type fakeClock struct{ t time.Time }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func key(r rune) tea.KeyPressMsg       { return tea.KeyPressMsg{Code: r, Text: string(r)} }
func special(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func newTestQuiz(t *testing.T, count int) (*QuizScreen, *fakeClock) {
	t.Helper()
	var qs []bank.Question
	for lvl := 1; lvl <= 5; lvl++ {
		for i := 0; i < 4; i++ {
			qs = append(qs, bank.Question{
				ID:          fmt.Sprintf("m-%d-%d", lvl, i),
				Subject:     "Math",
				Topic:       "Arithmetic",
				Level:       bank.Level(lvl),
				Text:        fmt.Sprintf("What is %d + %d?", lvl, i),
				Options:     [4]string{"1", "2", "3", "4"},
				Correct:     bank.OptionB,
				Explanation: "Add the numbers.",
			})
		}
	}
	set, err := bank.NewSet(qs)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}

	clock := newClock()
	e, err := session.NewEngine(set, adaptive.DefaultConfig(),
		session.WithClock(clock.Now),
		session.WithRandSource(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	st, err := e.Start(session.Setup{Subject: "Math", Count: count})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return New(e, st), clock
}

func expectSummary(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
}

func TestQuiz_InitStartsTimer(t *testing.T) {
	s, _ := newTestQuiz(t, 3)
	if s.Init() == nil {
		t.Error("expected a tick command")
	}
	if !strings.Contains(s.Status(), "Q 1/3") {
		t.Errorf("status = %q", s.Status())
	}
	if !strings.Contains(s.Status(), "3:00") {
		t.Errorf("expected full budget in status, got %q", s.Status())
	}
}

func TestQuiz_EnterWithoutAnswer(t *testing.T) {
	s, _ := newTestQuiz(t, 3)
	s.Update(special(tea.KeyEnter))

	if s.feedback != nil {
		t.Fatal("no feedback expected without a choice")
	}
	if !strings.Contains(s.View(100, 30), session.ErrNoAnswer.Error()) {
		t.Error("expected no-answer hint in view")
	}
	if s.state.Answered() != 0 {
		t.Error("state must not change")
	}
}

func TestQuiz_CorrectAnswer(t *testing.T) {
	s, _ := newTestQuiz(t, 3)
	first := s.state.Current.ID

	s.Update(key('b'))
	s.Update(special(tea.KeyEnter))
	if s.feedback == nil || !s.feedback.Attempt.Correct {
		t.Fatal("expected correct feedback")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Correct!") || !strings.Contains(view, "Add the numbers.") {
		t.Error("expected feedback with explanation")
	}

	s.Update(key('x'))
	if s.feedback != nil {
		t.Fatal("any key should advance")
	}
	if s.state.Current == nil || s.state.Current.ID == first {
		t.Error("expected a new question")
	}
	if s.picker.Chosen != "" {
		t.Error("picker should reset")
	}
}

func TestQuiz_DigitAndCursorSelection(t *testing.T) {
	s, _ := newTestQuiz(t, 3)

	s.Update(key('3'))
	if s.picker.Chosen != bank.OptionC {
		t.Errorf("expected C, got %q", s.picker.Chosen)
	}

	s.Update(special(tea.KeyUp))
	s.Update(key(' '))
	if s.picker.Chosen != bank.OptionB {
		t.Errorf("expected B after moving up and pressing space, got %q", s.picker.Chosen)
	}
}

func TestQuiz_WrongAnswerShowsCorrectOption(t *testing.T) {
	s, _ := newTestQuiz(t, 3)
	s.Update(key('a'))
	s.Update(special(tea.KeyEnter))

	if s.feedback == nil || s.feedback.Attempt.Correct {
		t.Fatal("expected wrong feedback")
	}
	if !strings.Contains(s.View(100, 30), "The answer is B) 2") {
		t.Error("expected correct option in feedback")
	}
}

func TestQuiz_LevelChangeNotice(t *testing.T) {
	s, _ := newTestQuiz(t, 6)
	for i := 0; i < 3; i++ {
		s.Update(key('b'))
		s.Update(special(tea.KeyEnter))
		if i < 2 {
			s.Update(key('x'))
		}
	}
	if s.feedback.LevelChange == nil {
		t.Fatal("expected promotion after a perfect block")
	}
	if !strings.Contains(s.View(100, 30), "Level up! Easy → Easy-Medium") {
		t.Error("expected level-up notice")
	}
}

func TestQuiz_LastQuestion(t *testing.T) {
	s, _ := newTestQuiz(t, 1)
	s.Update(key('b'))
	_, cmd := s.Update(special(tea.KeyEnter))
	if cmd != nil {
		t.Error("feedback should be shown before the summary")
	}
	if !s.feedback.Done {
		t.Fatal("expected Done feedback")
	}

	_, cmd = s.Update(key('x'))
	expectSummary(t, cmd)
	if s.state.EndReason != session.EndCompleted {
		t.Errorf("end reason = %q", s.state.EndReason)
	}
}

func TestQuiz_QuitConfirm(t *testing.T) {
	s, _ := newTestQuiz(t, 3)

	s.Update(special(tea.KeyEscape))
	if !s.confirmQuit || !strings.Contains(s.View(100, 30), "End the test now?") {
		t.Fatal("expected quit confirmation")
	}
	s.Update(key('n'))
	if s.confirmQuit || s.state.Ended() {
		t.Fatal("n should cancel")
	}

	s.Update(special(tea.KeyEscape))
	_, cmd := s.Update(key('y'))
	expectSummary(t, cmd)
	if s.state.EndReason != session.EndQuit {
		t.Errorf("end reason = %q", s.state.EndReason)
	}
}

func TestQuiz_TimeoutOnTick(t *testing.T) {
	s, clock := newTestQuiz(t, 3)

	clock.Advance(time.Minute)
	_, cmd := s.Update(timerTickMsg(clock.Now()))
	if cmd == nil {
		t.Fatal("expected the next tick")
	}
	if !strings.Contains(s.Status(), "2:00") {
		t.Errorf("status = %q", s.Status())
	}

	clock.Advance(2 * time.Minute)
	_, cmd = s.Update(timerTickMsg(clock.Now()))
	expectSummary(t, cmd)
	if s.state.EndReason != session.EndTimeout {
		t.Errorf("end reason = %q", s.state.EndReason)
	}

	if _, cmd := s.Update(timerTickMsg(clock.Now())); cmd != nil {
		t.Error("finished screen should ignore messages")
	}
}

func TestQuiz_SubmitAfterTimeout(t *testing.T) {
	s, clock := newTestQuiz(t, 3)
	clock.Advance(4 * time.Minute)

	s.Update(key('b'))
	_, cmd := s.Update(special(tea.KeyEnter))
	expectSummary(t, cmd)
	if s.state.Answered() != 0 {
		t.Error("late answer must be discarded")
	}
	if s.state.EndReason != session.EndTimeout {
		t.Errorf("end reason = %q", s.state.EndReason)
	}
}

func TestQuiz_Close(t *testing.T) {
	s, _ := newTestQuiz(t, 3)
	s.Close()
	if s.state.EndReason != session.EndQuit {
		t.Errorf("end reason = %q", s.state.EndReason)
	}
}
