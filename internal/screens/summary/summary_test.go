package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID:  "0123456789",
		Subject:    "Math",
		Target:     30,
		Answered:   3,
		Score:      2,
		Accuracy:   2.0 / 3.0,
		StartLevel: "Easy",
		FinalLevel: "Easy-Medium",
		EndReason:  session.EndTimeout,
		Duration:   15 * time.Minute,
		ByLevel: []session.GroupResult{
			{Name: "Easy", Asked: 3, Correct: 2},
		},
		Attempts: []session.AttemptRow{
			{Number: 1, Level: "Easy", Topic: "Percentages", Chosen: "A", Answer: "A", Correct: true, Time: 4 * time.Second},
			{Number: 2, Level: "Easy", Topic: "Ratios", Chosen: "B", Answer: "C", Time: 7 * time.Second},
			{Number: 3, Level: "Easy", Topic: "Percentages", Chosen: "D", Answer: "D", Correct: true, Time: 3 * time.Second},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Test Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Test Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 30)
	for _, want := range []string{"Time's up!", "Score: 2 / 3", "67%", "Easy → Easy-Medium", "Ratios", "15:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptyTranscript(t *testing.T) {
	sum := testSummary()
	sum.Attempts = nil
	sum.ByLevel = nil
	view := New(sum).View(100, 30)
	if !strings.Contains(view, "No questions answered.") {
		t.Error("expected empty transcript notice")
	}
}

func TestSummaryScreen_TranscriptRows(t *testing.T) {
	s := New(testSummary())
	if got := len(s.transcript.Rows()); got != 3 {
		t.Fatalf("expected 3 transcript rows, got %d", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.transcript.Cursor() != 1 {
		t.Errorf("expected cursor to move to row 1, got %d", s.transcript.Cursor())
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %s", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg on %s", key.String())
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(nil)
	if s.View(80, 24) != "" {
		t.Error("expected empty view for nil summary")
	}
}
