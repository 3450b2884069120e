package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/adaptiq/ent"
	"github.com/abhisek/adaptiq/ent/attemptevent"
	"github.com/abhisek/adaptiq/ent/llmrequestevent"
	"github.com/abhisek/adaptiq/ent/sessionevent"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A named shared-cache database per test keeps pooled connections on
	// the same data without leaking rows between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{sessionevent.Table, attemptevent.Table, llmrequestevent.Table, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}

	var idx string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='attemptevent_session_id'",
	).Scan(&idx)
	if err != nil {
		t.Fatalf("index attemptevent_session_id: %v", err)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/journal.db"
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: ActionStart, Subject: "GK",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	sessions, err := s.EventRepo().QuerySessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions after reopen = %d, want 1", len(sessions))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	start := SessionEventData{
		SessionID:   "abc-123",
		Action:      ActionStart,
		Subject:     "Aptitude",
		Policy:      "default",
		TargetCount: 30,
		BudgetSecs:  1800,
		StartLevel:  1,
	}
	if err := repo.AppendSessionEvent(ctx, start); err != nil {
		t.Fatalf("append start: %v", err)
	}

	for i, correct := range []bool{true, false} {
		err := repo.AppendAttemptEvent(ctx, AttemptEventData{
			SessionID:     "abc-123",
			Number:        i + 1,
			QuestionID:    fmt.Sprintf("apt-1-0%d", i+1),
			Topic:         "Percentages",
			Level:         1,
			Stage:         "primary",
			Chosen:        "A",
			CorrectOption: "A",
			Correct:       correct,
			TimeMs:        1500,
			LevelAfter:    1,
		})
		if err != nil {
			t.Fatalf("append attempt %d: %v", i, err)
		}
	}

	end := start
	end.Action = ActionEnd
	end.Answered = 2
	end.Correct = 1
	end.FinalLevel = 1
	end.EndReason = "quit"
	end.DurationSecs = 42
	if err := repo.AppendSessionEvent(ctx, end); err != nil {
		t.Fatalf("append end: %v", err)
	}

	sessions, err := repo.QuerySessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.Subject != "Aptitude" || got.TargetCount != 30 || got.Policy != "default" {
		t.Errorf("start fields = %+v", got)
	}
	if !got.Ended || got.Answered != 2 || got.Correct != 1 || got.EndReason != "quit" {
		t.Errorf("end fields = %+v", got)
	}
	if got.Accuracy() != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", got.Accuracy())
	}

	attempts, err := repo.SessionAttempts(ctx, "abc-123")
	if err != nil {
		t.Fatalf("attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if attempts[0].Number != 1 || !attempts[0].Correct {
		t.Errorf("attempt[0] = %+v", attempts[0])
	}
	if attempts[1].Number != 2 || attempts[1].Correct {
		t.Errorf("attempt[1] = %+v", attempts[1])
	}
	if attempts[0].Sequence >= attempts[1].Sequence {
		t.Errorf("sequences not increasing: %d, %d", attempts[0].Sequence, attempts[1].Sequence)
	}
}

func TestQuerySessionsUnfinishedAndOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: ActionStart, Subject: "English",
		}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	sessions, err := repo.QuerySessions(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if sessions[0].SessionID != "third" || sessions[1].SessionID != "second" {
		t.Errorf("order = %s, %s", sessions[0].SessionID, sessions[1].SessionID)
	}
	if sessions[0].Ended {
		t.Error("session without end event reported as ended")
	}
}

func TestResolveSessionID(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"aa11", "aa22", "bb33"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: ActionStart, Subject: "GK",
		}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	id, err := repo.ResolveSessionID(ctx, "bb")
	if err != nil || id != "bb33" {
		t.Errorf("resolve bb = %q, %v", id, err)
	}
	if _, err := repo.ResolveSessionID(ctx, "aa"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("resolve aa err = %v, want ErrAmbiguous", err)
	}
	if _, err := repo.ResolveSessionID(ctx, "zz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("resolve zz err = %v, want ErrNotFound", err)
	}
}

func TestSchemaValidatorRejectsEmptySession(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	err := repo.AppendSessionEvent(context.Background(), SessionEventData{
		Action: ActionStart, Subject: "GK",
	})
	if err == nil {
		t.Fatal("expected error for empty session_id")
	}
	if !ent.IsValidationError(err) {
		t.Errorf("err = %v, want ent validation error", err)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, ok := range []bool{true, false} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Purpose:      "question-gen",
			InputTokens:  100 + i,
			OutputTokens: 50,
			LatencyMs:    1200,
			Success:      ok,
			RequestBody:  `{"prompt":"x"}`,
			ResponseBody: `{"questions":[]}`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Success || events[0].InputTokens != 101 {
		t.Errorf("newest event = %+v", events[0])
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != `{"prompt":"x"}` {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing = %+v, %v", missing, err)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("events after = %d, want 1", len(after))
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future events = %d, want 0", len(future))
	}
}

func TestPurge(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "x", Action: ActionStart, Subject: "GK"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendAttemptEvent(ctx, AttemptEventData{
		SessionID: "x", Number: 1, QuestionID: "q1", Level: 1, Chosen: "A", CorrectOption: "B",
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m", Purpose: "q", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}

	sessions, _ := repo.QuerySessions(ctx, QueryOpts{})
	attempts, _ := repo.SessionAttempts(ctx, "x")
	events, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(sessions) != 0 || len(attempts) != 0 || len(events) != 0 {
		t.Errorf("after purge: %d sessions, %d attempts, %d llm events", len(sessions), len(attempts), len(events))
	}
}
