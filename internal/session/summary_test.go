package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/store"
)

func TestBuildSummary_Groups(t *testing.T) {
	clock := newClock()
	e := testEngine(t, smallBank(t, 4), clock)
	st, err := e.Start(Setup{Subject: "Math", Count: 6})
	require.NoError(t, err)

	for _, ok := range []bool{true, true, true, false, true, false} {
		clock.Advance(3 * time.Second)
		play(t, e, st, ok)
	}
	require.True(t, st.Ended())

	s := BuildSummary(st, e.Config())
	assert.Equal(t, 4, s.Score)
	assert.Equal(t, 6, s.Answered)
	assert.InDelta(t, 4.0/6.0, s.Accuracy, 1e-9)
	assert.Equal(t, "Easy", s.StartLevel)
	assert.Equal(t, "Easy-Medium", s.FinalLevel)
	assert.Equal(t, EndCompleted, s.EndReason)
	assert.Equal(t, 18*time.Second, s.Duration)

	require.Len(t, s.ByLevel, 2)
	assert.Equal(t, GroupResult{Name: "Easy", Asked: 3, Correct: 3}, s.ByLevel[0])
	assert.Equal(t, GroupResult{Name: "Easy-Medium", Asked: 3, Correct: 1}, s.ByLevel[1])

	require.Len(t, s.ByTopic, 1)
	assert.Equal(t, "Arithmetic", s.ByTopic[0].Name)
	assert.Equal(t, 6, s.ByTopic[0].Asked)

	require.Len(t, s.Attempts, 6)
	assert.Equal(t, 3*time.Second, s.Attempts[0].Time)
}

func TestRenderReport(t *testing.T) {
	e := testEngine(t, smallBank(t, 3), newClock())
	st, err := e.Start(Setup{Subject: "Math", Count: 3})
	require.NoError(t, err)
	for !st.Ended() {
		play(t, e, st, true)
	}

	out := RenderReport(BuildSummary(st, e.Config()))
	assert.Contains(t, out, "Math test")
	assert.Contains(t, out, "3 / 3")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Easy -> Easy-Medium")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "Question")
	assert.Contains(t, out, "correct")
}

func TestSummaryFromJournal(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := store.SessionRecord{
		SessionID:    "abcdef123456",
		StartedAt:    start,
		Subject:      "GK",
		Policy:       adaptive.PresetThreeLevel,
		TargetCount:  30,
		StartLevel:   1,
		Ended:        true,
		Answered:     2,
		Correct:      1,
		FinalLevel:   1,
		EndReason:    "quit",
		DurationSecs: 75,
	}
	attempts := []store.AttemptRecord{
		{AttemptEventData: store.AttemptEventData{Number: 1, QuestionID: "gk-1", Topic: "Capitals", Level: 1, Chosen: "A", CorrectOption: "A", Correct: true, TimeMs: 2000, LevelAfter: 1}},
		{AttemptEventData: store.AttemptEventData{Number: 2, QuestionID: "gk-2", Level: 1, Chosen: "B", CorrectOption: "C", TimeMs: 3000, LevelAfter: 1}},
	}

	s := SummaryFromJournal(rec, attempts)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 0.5, s.Accuracy)
	assert.Equal(t, "Easy", s.FinalLevel)
	assert.Equal(t, EndQuit, s.EndReason)
	assert.Equal(t, 75*time.Second, s.Duration)
	require.Len(t, s.ByTopic, 2)

	out := RenderReport(s)
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "1:15")

	rec.Ended = false
	rec.EndReason = ""
	assert.Equal(t, EndReason("unfinished"), SummaryFromJournal(rec, nil).EndReason)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{90 * time.Second, "1:30"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), tt.in.String())
	}
}
