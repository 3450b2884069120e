package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/store"
)

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

// memJournal records journal writes.
type memJournal struct {
	sessions []store.SessionEventData
	attempts []store.AttemptEventData
	fail     error
}

func (j *memJournal) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	if j.fail != nil {
		return j.fail
	}
	j.sessions = append(j.sessions, d)
	return nil
}

func (j *memJournal) AppendAttemptEvent(_ context.Context, d store.AttemptEventData) error {
	if j.fail != nil {
		return j.fail
	}
	j.attempts = append(j.attempts, d)
	return nil
}

// smallBank has n questions per level for levels 1-5 in subject "Math".
func smallBank(t *testing.T, n int) *bank.Set {
	t.Helper()
	var qs []bank.Question
	for lvl := 1; lvl <= 5; lvl++ {
		for i := 0; i < n; i++ {
			qs = append(qs, bank.Question{
				ID:      fmt.Sprintf("m-%d-%d", lvl, i),
				Subject: "Math",
				Topic:   "Arithmetic",
				Level:   bank.Level(lvl),
				Text:    fmt.Sprintf("Question %d at level %d", i, lvl),
				Options: [4]string{"w", "x", "y", "z"},
				Correct: bank.OptionB,
			})
		}
	}
	set, err := bank.NewSet(qs)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func defaultBank(t *testing.T) *bank.Set {
	t.Helper()
	set, err := bank.Default()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	return set
}

func testEngine(t *testing.T, set *bank.Set, clock *fakeClock, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{
		WithClock(clock.Now),
		WithRandSource(rand.NewPCG(1, 2)),
		WithIDFunc(func() string { return "session-0001" }),
	}, opts...)
	e, err := NewEngine(set, adaptive.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func answer(st *SessionState, correct bool) bank.Option {
	if correct {
		return st.Current.Correct
	}
	for _, o := range bank.Options {
		if o != st.Current.Correct {
			return o
		}
	}
	return ""
}

func play(t *testing.T, e *Engine, st *SessionState, correct bool) *Feedback {
	t.Helper()
	fb, err := e.Submit(st, answer(st, correct))
	if err != nil {
		t.Fatalf("submit %d: %v", st.Answered()+1, err)
	}
	if !st.Ended() {
		if err := e.Advance(st); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	return fb
}

func TestStart_Errors(t *testing.T) {
	e := testEngine(t, smallBank(t, 3), newClock())

	tests := []struct {
		name  string
		setup Setup
		want  error
	}{
		{"no subject", Setup{Count: 30}, ErrMissingSelection},
		{"no count", Setup{Subject: "Math"}, ErrMissingSelection},
		{"negative count", Setup{Subject: "Math", Count: -1}, ErrInvalidCount},
		{"unknown subject", Setup{Subject: "History", Count: 30}, ErrUnknownSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := e.Start(tt.setup)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if st != nil {
				t.Error("expected no state on error")
			}
		})
	}
}

func TestStart_PresentsFirstQuestion(t *testing.T) {
	clock := newClock()
	e := testEngine(t, smallBank(t, 3), clock)

	st, err := e.Start(Setup{Subject: "math", Count: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if st.Subject != "Math" {
		t.Errorf("Subject = %q, want canonical %q", st.Subject, "Math")
	}
	if st.Current == nil || st.Current.Level != 1 {
		t.Fatalf("first question = %+v, want level 1", st.Current)
	}
	if st.Budget != 30*time.Minute {
		t.Errorf("Budget = %v, want 30m", st.Budget)
	}
	if st.Phase != PhaseActive {
		t.Errorf("Phase = %q, want active", st.Phase)
	}
	if !st.Asked[st.Current.ID] || len(st.AskOrder) != 1 {
		t.Error("presented question not recorded as asked")
	}
	if st.Policy != adaptive.PresetDefault {
		t.Errorf("Policy = %q", st.Policy)
	}
}

func TestSubmit_NoAnswerLeavesStateUntouched(t *testing.T) {
	e := testEngine(t, smallBank(t, 3), newClock())
	st, err := e.Start(Setup{Subject: "Math", Count: 30})
	if err != nil {
		t.Fatal(err)
	}
	current := st.Current.ID

	for _, choice := range []bank.Option{"", "E", "z"} {
		if _, err := e.Submit(st, choice); !errors.Is(err, ErrNoAnswer) {
			t.Errorf("Submit(%q) err = %v, want ErrNoAnswer", choice, err)
		}
	}
	if st.Answered() != 0 || st.Score != 0 || st.Current.ID != current || st.Phase != PhaseActive {
		t.Errorf("state mutated: answered=%d score=%d phase=%s", st.Answered(), st.Score, st.Phase)
	}
}

func TestSubmit_FeedbackPhase(t *testing.T) {
	clock := newClock()
	e := testEngine(t, smallBank(t, 3), clock)
	st, _ := e.Start(Setup{Subject: "Math", Count: 30})

	clock.Advance(4 * time.Second)
	fb, err := e.Submit(st, answer(st, true))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !fb.Attempt.Correct || fb.Done || fb.LevelChange != nil {
		t.Errorf("feedback = %+v", fb)
	}
	if fb.Attempt.ResponseTime() != 4*time.Second {
		t.Errorf("ResponseTime = %v, want 4s", fb.Attempt.ResponseTime())
	}
	if st.Phase != PhaseFeedback {
		t.Errorf("Phase = %q, want feedback", st.Phase)
	}
	if _, err := e.Submit(st, bank.OptionA); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second submit err = %v", err)
	}

	if err := e.Advance(st); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if st.Phase != PhaseActive || len(st.AskOrder) != 2 {
		t.Errorf("after advance: phase=%s asked=%d", st.Phase, len(st.AskOrder))
	}
}

func TestSession_AllCorrect30(t *testing.T) {
	e := testEngine(t, defaultBank(t), newClock())
	st, err := e.Start(Setup{Subject: "Aptitude", Count: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var last *Feedback
	for !st.Ended() {
		last = play(t, e, st, true)
	}

	if !last.Done {
		t.Error("last feedback not marked done")
	}
	if st.EndReason != EndCompleted {
		t.Errorf("EndReason = %q, want completed", st.EndReason)
	}
	if st.Score != 30 || st.Answered() != 30 {
		t.Errorf("score = %d/%d, want 30/30", st.Score, st.Answered())
	}
	if st.Accuracy() != 1 {
		t.Errorf("accuracy = %v, want 1", st.Accuracy())
	}
	if st.Level() != 5 {
		t.Errorf("final level = %d, want 5", st.Level())
	}
	if !askedUnique(st) {
		t.Error("asked IDs repeated")
	}

	s := BuildSummary(st, e.Config())
	if s.Score != 30 || s.Accuracy != 1 || s.FinalLevel != "Hard" || s.StartLevel != "Easy" {
		t.Errorf("summary = %+v", s)
	}
}

func TestSession_ThreeLevelPresetServesMatchingDifficulty(t *testing.T) {
	cfg, err := adaptive.Preset(adaptive.PresetThreeLevel)
	if err != nil {
		t.Fatal(err)
	}
	set, err := bank.Default(bank.WithLevelNames(cfg.Levels))
	if err != nil {
		t.Fatal(err)
	}
	labels := defaultBank(t)

	clock := newClock()
	e, err := NewEngine(set, cfg, WithClock(clock.Now), WithRandSource(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	st, err := e.Start(Setup{Subject: "Aptitude", Count: 12})
	if err != nil {
		t.Fatal(err)
	}
	for !st.Ended() {
		play(t, e, st, true)
	}

	sawHard := false
	for _, a := range st.Transcript {
		if a.Stage != adaptive.StagePrimary {
			continue
		}
		orig, _ := labels.Get(a.QuestionID)
		name := bank.DefaultLevelNames[orig.Level-1]
		if got := cfg.LevelName(a.Level); got == "Hard" {
			sawHard = true
			if name != "Hard" {
				t.Errorf("question %d served at Hard is labelled %q in the bank", a.Number, name)
			}
		}
	}
	if !sawHard {
		t.Error("never reached the Hard level")
	}
}

func TestSession_LevelChangesOnlyAtBlockBoundaries(t *testing.T) {
	e := testEngine(t, defaultBank(t), newClock())
	st, err := e.Start(Setup{Subject: "Aptitude", Count: 100})
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewPCG(7, 7))
	for !st.Ended() {
		// Runs of identical answers so that promotions and demotions both happen.
		streak := rng.IntN(2) == 0
		for i := 0; i < 3 && !st.Ended(); i++ {
			play(t, e, st, streak || rng.IntN(4) == 0)
		}
	}

	changes := 0
	for _, a := range st.Transcript {
		if a.LevelAfter != a.Level {
			changes++
			if a.Number%3 != 0 {
				t.Errorf("level changed after answer %d", a.Number)
			}
		}
	}
	if changes == 0 {
		t.Error("expected at least one level change")
	}
	for i := 1; i < len(st.Transcript); i++ {
		if st.Transcript[i].Level != st.Transcript[i-1].LevelAfter {
			t.Errorf("answer %d asked at %d, previous left level at %d",
				i+1, st.Transcript[i].Level, st.Transcript[i-1].LevelAfter)
		}
	}
	if !askedUnique(st) {
		t.Error("asked IDs repeated while unasked questions remained")
	}
}

func TestSession_ExhaustedPoolRepeats(t *testing.T) {
	// 5 questions in total, 8 asked: the last 3 must come from the "any" stage.
	e := testEngine(t, smallBank(t, 1), newClock())
	st, _ := e.Start(Setup{Subject: "Math", Count: 8})

	for !st.Ended() {
		play(t, e, st, false)
	}
	seen := make(map[string]bool)
	for i, a := range st.Transcript {
		if i < 5 && seen[a.QuestionID] {
			t.Errorf("repeat at %d before the pool was exhausted", i+1)
		}
		if i >= 5 && a.Stage != adaptive.StageAny {
			t.Errorf("answer %d stage = %s, want any", i+1, a.Stage)
		}
		seen[a.QuestionID] = true
	}
}

func TestSession_Timeout(t *testing.T) {
	clock := newClock()
	journal := &memJournal{}
	e := testEngine(t, smallBank(t, 5), clock, WithJournal(journal))
	st, _ := e.Start(Setup{Subject: "Math", Count: 30})

	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		play(t, e, st, true)
	}

	clock.Advance(29 * time.Minute)
	if e.Tick(st) {
		t.Fatal("tick ended the session before the budget")
	}
	if got := e.Remaining(st); got != 10*time.Second {
		t.Errorf("Remaining = %v, want 10s", got)
	}

	clock.Advance(10 * time.Second)
	if !e.Tick(st) {
		t.Fatal("tick did not end the session at the budget")
	}
	if st.EndReason != EndTimeout || st.Answered() != 5 || len(st.Transcript) != 5 {
		t.Errorf("after timeout: reason=%s answered=%d", st.EndReason, st.Answered())
	}
	if e.Remaining(st) != 0 {
		t.Error("Remaining after end should be 0")
	}
	if e.Tick(st) {
		t.Error("second tick reported ending again")
	}

	if len(journal.sessions) != 2 || journal.sessions[1].EndReason != string(EndTimeout) {
		t.Errorf("journal sessions = %+v", journal.sessions)
	}
	if journal.sessions[1].Answered != 5 || len(journal.attempts) != 5 {
		t.Errorf("journal answered = %d, attempts = %d", journal.sessions[1].Answered, len(journal.attempts))
	}
}

func TestSubmit_AfterBudgetIsDiscarded(t *testing.T) {
	clock := newClock()
	e := testEngine(t, smallBank(t, 3), clock)
	st, _ := e.Start(Setup{Subject: "Math", Count: 2})

	clock.Advance(2 * time.Minute)
	_, err := e.Submit(st, answer(st, true))
	if !errors.Is(err, ErrTimeUp) {
		t.Fatalf("err = %v, want ErrTimeUp", err)
	}
	if st.Answered() != 0 || st.Score != 0 || st.EndReason != EndTimeout {
		t.Errorf("late submission recorded: answered=%d reason=%s", st.Answered(), st.EndReason)
	}
	if _, err := e.Submit(st, bank.OptionA); !errors.Is(err, ErrSessionOver) {
		t.Errorf("submit after end err = %v", err)
	}
}

func TestAdvance_AfterBudget(t *testing.T) {
	clock := newClock()
	e := testEngine(t, smallBank(t, 3), clock)
	st, _ := e.Start(Setup{Subject: "Math", Count: 2})

	if _, err := e.Submit(st, answer(st, true)); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Minute)
	if err := e.Advance(st); !errors.Is(err, ErrTimeUp) {
		t.Fatalf("err = %v, want ErrTimeUp", err)
	}
	if st.Answered() != 1 || st.Elapsed != st.Budget {
		t.Errorf("answered=%d elapsed=%v", st.Answered(), st.Elapsed)
	}
}

func TestQuit(t *testing.T) {
	journal := &memJournal{}
	e := testEngine(t, smallBank(t, 3), newClock(), WithJournal(journal))
	st, _ := e.Start(Setup{Subject: "Math", Count: 30})
	play(t, e, st, true)

	e.Quit(st)
	e.Quit(st)
	if st.EndReason != EndQuit || st.Current != nil {
		t.Errorf("after quit: reason=%s current=%v", st.EndReason, st.Current)
	}
	if err := e.Advance(st); !errors.Is(err, ErrSessionOver) {
		t.Errorf("advance after quit err = %v", err)
	}
	if len(journal.sessions) != 2 {
		t.Errorf("journal sessions = %d, want start and a single end", len(journal.sessions))
	}
}

func TestJournalFailureIsNotFatal(t *testing.T) {
	var warnings []error
	journal := &memJournal{fail: errors.New("disk full")}
	e := testEngine(t, smallBank(t, 3), newClock(),
		WithJournal(journal),
		WithWarn(func(err error) { warnings = append(warnings, err) }))

	st, err := e.Start(Setup{Subject: "Math", Count: 30})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	play(t, e, st, true)

	if len(warnings) != 2 {
		t.Fatalf("warnings = %d, want 2", len(warnings))
	}
	if !strings.Contains(warnings[0].Error(), "disk full") {
		t.Errorf("warning = %v", warnings[0])
	}
}

func TestNewEngine_RejectsInvalidPolicy(t *testing.T) {
	cfg := adaptive.DefaultConfig()
	cfg.BlockSize = 0
	if _, err := NewEngine(smallBank(t, 1), cfg); err == nil {
		t.Error("expected error for invalid policy")
	}
	if _, err := NewEngine(nil, adaptive.DefaultConfig()); !errors.Is(err, adaptive.ErrEmptyPool) {
		t.Errorf("nil bank err = %v", err)
	}
}

func askedUnique(st *SessionState) bool {
	seen := make(map[string]bool, len(st.AskOrder))
	for _, id := range st.AskOrder {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
