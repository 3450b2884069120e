package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/history"
	"github.com/abhisek/adaptiq/internal/screens/setup"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/store"
)

type emptyJournal struct{}

func (emptyJournal) QuerySessions(context.Context, store.QueryOpts) ([]store.SessionRecord, error) {
	return nil, nil
}

func (emptyJournal) SessionAttempts(context.Context, string) ([]store.AttemptRecord, error) {
	return nil, nil
}

func testEngine(t *testing.T) *session.Engine {
	t.Helper()
	cfg, err := adaptive.Preset(adaptive.PresetThreeLevel)
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	set, err := bank.Default(bank.WithLevelNames(cfg.Levels))
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	e, err := session.NewEngine(set, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestHome_View(t *testing.T) {
	h := New(testEngine(t), emptyJournal{})
	view := h.View(120, 40)
	for _, want := range []string{"START TEST", "HISTORY", "QUIT", "SUBJECTS", "QUESTIONS", "THREE-LEVEL"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHome_StartPushesSetup(t *testing.T) {
	h := New(testEngine(t), emptyJournal{})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*setup.SetupScreen); !ok {
		t.Errorf("expected setup screen, got %T", push.Screen)
	}
}

func TestHome_HistoryPushesHistory(t *testing.T) {
	h := New(testEngine(t), emptyJournal{})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", push.Screen)
	}
}

func TestHome_HistoryDisabledWithoutJournal(t *testing.T) {
	h := New(testEngine(t), nil)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := h.menu.Items[h.menu.Selected].Label; got != "QUIT" {
		t.Errorf("expected navigation to skip HISTORY, landed on %q", got)
	}
}

func TestHome_Quit(t *testing.T) {
	h := New(testEngine(t), nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
