package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/summary"
	"github.com/abhisek/adaptiq/internal/store"
)

type fakeJournal struct {
	sessions  []store.SessionRecord
	attempts  map[string][]store.AttemptRecord
	err       error
	requested []string
}

func (f *fakeJournal) QuerySessions(_ context.Context, opts store.QueryOpts) ([]store.SessionRecord, error) {
	if opts.Limit != pageSize {
		return nil, errors.New("unexpected limit")
	}
	return f.sessions, f.err
}

func (f *fakeJournal) SessionAttempts(_ context.Context, id string) ([]store.AttemptRecord, error) {
	f.requested = append(f.requested, id)
	return f.attempts[id], nil
}

func testJournal() *fakeJournal {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return &fakeJournal{
		sessions: []store.SessionRecord{
			{SessionID: "newer", StartedAt: start.Add(time.Hour), Subject: "GK", Policy: "three-level", StartLevel: 1, Ended: true, Answered: 4, Correct: 3, FinalLevel: 2, EndReason: "completed"},
			{SessionID: "older", StartedAt: start, Subject: "Math", Policy: "three-level", StartLevel: 1},
		},
		attempts: map[string][]store.AttemptRecord{
			"newer": {{AttemptEventData: store.AttemptEventData{Number: 1, QuestionID: "gk-1", Level: 1, Chosen: "A", CorrectOption: "A", Correct: true, LevelAfter: 1}}},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistory_Loads(t *testing.T) {
	s := New(testJournal())
	if !strings.Contains(s.View(100, 20), "Loading") {
		t.Error("expected loading state before data arrives")
	}

	load(t, s)
	view := s.View(100, 20)
	for _, want := range []string{"GK", "3/4", "75%", "completed", "unfinished"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(&fakeJournal{})
	load(t, s)
	if !strings.Contains(s.View(100, 20), "No tests yet") {
		t.Error("expected empty state")
	}
}

func TestHistory_Error(t *testing.T) {
	s := New(&fakeJournal{err: errors.New("db locked")})
	load(t, s)
	if !strings.Contains(s.View(100, 20), "db locked") {
		t.Error("expected error message")
	}
}

func TestHistory_EnterOpensSummary(t *testing.T) {
	j := testJournal()
	s := New(j)
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a load command on Enter")
	}
	_, cmd = s.Update(cmd())
	if len(j.requested) != 1 || j.requested[0] != "newer" {
		t.Fatalf("expected attempts of the first session, got %v", j.requested)
	}
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", push.Screen)
	}
}

func TestHistory_NavigateThenEnter(t *testing.T) {
	j := testJournal()
	s := New(j)
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	cmd()
	if len(j.requested) != 1 || j.requested[0] != "older" {
		t.Errorf("expected attempts of the second session, got %v", j.requested)
	}
}

func TestHistory_Esc(t *testing.T) {
	s := New(testJournal())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}
