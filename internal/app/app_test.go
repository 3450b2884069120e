package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/home"
	"github.com/abhisek/adaptiq/internal/screens/quiz"
	"github.com/abhisek/adaptiq/internal/screens/welcome"
	"github.com/abhisek/adaptiq/internal/session"
)

func testEngine(t *testing.T) *session.Engine {
	t.Helper()
	set, err := bank.Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	e, err := session.NewEngine(set, adaptive.DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestInitialStack(t *testing.T) {
	e := testEngine(t)

	stack := initialStack(Options{Engine: e})
	if _, ok := stack[0].(*welcome.WelcomeScreen); !ok || len(stack) != 1 {
		t.Error("expected only the welcome screen by default")
	}

	stack = initialStack(Options{Engine: e, SkipWelcome: true})
	if _, ok := stack[0].(*home.HomeScreen); !ok || len(stack) != 1 {
		t.Error("expected home screen when the splash is skipped")
	}

	st, err := e.Start(session.Setup{Subject: e.Bank().Subjects()[0], Count: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m := newAppModel(initialStack(Options{Engine: e, Initial: quiz.New(e, st)})...)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz on top, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected the quiz timer to start")
	}
}

func TestView_TooSmall(t *testing.T) {
	m := newAppModel(home.New(testEngine(t), nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestView_HeaderStatusAndHints(t *testing.T) {
	e := testEngine(t)
	st, err := e.Start(session.Setup{Subject: e.Bank().Subjects()[0], Count: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m := newAppModel(quiz.New(e, st))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	frame := updated.(AppModel).render()

	for _, want := range []string{"AdaptIQ", "Q 1/30", "30:00", "Submit", "Ctrl+C"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestCtrlC_ClosesActiveScreen(t *testing.T) {
	e := testEngine(t)
	st, err := e.Start(session.Setup{Subject: e.Bank().Subjects()[0], Count: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m := newAppModel(quiz.New(e, st))

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if st.EndReason != session.EndQuit {
		t.Errorf("end reason = %q, want quit", st.EndReason)
	}
}

func TestEscIsHandledByScreens(t *testing.T) {
	var root screen.Screen = home.New(testEngine(t), nil)
	m := newAppModel(root)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc on the home screen must not pop")
		}
	}
}
