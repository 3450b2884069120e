package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/store"
)

// User-facing errors. None of them mutates the session.
var (
	ErrMissingSelection = errors.New("choose a subject and a question count")
	ErrUnknownSubject   = errors.New("unknown subject")
	ErrInvalidCount     = errors.New("question count must be positive")
	ErrNoAnswer         = errors.New("select an answer first")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrTimeUp           = errors.New("time is up")
	ErrSessionOver      = errors.New("session has ended")
)

// CountChoices are the question counts offered in the setup screen.
var CountChoices = []int{30, 50, 100}

// Setup is the user's selection before a session starts.
type Setup struct {
	Subject string
	Count   int
}

// Journal receives session events. store.EventRepo satisfies it.
type Journal interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAttemptEvent(ctx context.Context, data store.AttemptEventData) error
}

// Engine runs sessions over one question set and one policy. It holds no
// per-session data; every method takes the state it acts on. An Engine is
// not safe for concurrent use.
type Engine struct {
	set      *bank.Set
	cfg      adaptive.Config
	selector *adaptive.Selector
	now      func() time.Time
	newID    func() string
	journal  Journal
	warn     func(error)
}

// EngineOption customizes an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	now     func() time.Time
	src     rand.Source
	newID   func() string
	journal Journal
	warn    func(error)
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) { o.now = now }
}

// WithRandSource makes question picks reproducible.
func WithRandSource(src rand.Source) EngineOption {
	return func(o *engineOptions) { o.src = src }
}

// WithIDFunc replaces the session ID generator.
func WithIDFunc(fn func() string) EngineOption {
	return func(o *engineOptions) { o.newID = fn }
}

// WithJournal records sessions and attempts to j.
func WithJournal(j Journal) EngineOption {
	return func(o *engineOptions) { o.journal = j }
}

// WithWarn sets the handler for non-fatal journal errors. The default logs
// them with the standard logger.
func WithWarn(fn func(error)) EngineOption {
	return func(o *engineOptions) { o.warn = fn }
}

// NewEngine creates an engine. cfg must be valid.
func NewEngine(set *bank.Set, cfg adaptive.Config, opts ...EngineOption) (*Engine, error) {
	if set == nil || set.Len() == 0 {
		return nil, fmt.Errorf("new engine: %w", adaptive.ErrEmptyPool)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	o := engineOptions{
		now:   time.Now,
		newID: uuid.NewString,
		warn:  func(err error) { log.Printf("warning: %v", err) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		set:      set,
		cfg:      cfg,
		selector: adaptive.NewSelector(cfg, o.src),
		now:      o.now,
		newID:    o.newID,
		journal:  o.journal,
		warn:     o.warn,
	}, nil
}

// Config returns the engine's policy.
func (e *Engine) Config() adaptive.Config { return e.cfg }

// Bank returns the engine's question set.
func (e *Engine) Bank() *bank.Set { return e.set }

// Start validates the setup, creates a session and presents its first
// question.
func (e *Engine) Start(setup Setup) (*SessionState, error) {
	if setup.Subject == "" || setup.Count == 0 {
		return nil, ErrMissingSelection
	}
	if setup.Count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, setup.Count)
	}
	subject, ok := e.canonicalSubject(setup.Subject)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, setup.Subject)
	}

	now := e.now()
	st := &SessionState{
		ID:          e.newID(),
		Subject:     subject,
		Policy:      e.policyName(),
		TargetCount: setup.Count,
		Budget:      time.Duration(setup.Count*e.cfg.SecondsPerQuestion) * time.Second,
		StartedAt:   now,
		Adaptive:    adaptive.NewState(e.cfg),
		Asked:       make(map[string]bool),
	}
	st.StartLevel = st.Adaptive.Level

	if err := e.present(st, now); err != nil {
		return nil, err
	}

	e.record(func(ctx context.Context) error {
		return e.journal.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:   st.ID,
			Action:      store.ActionStart,
			Subject:     st.Subject,
			Policy:      st.Policy,
			TargetCount: st.TargetCount,
			BudgetSecs:  int(st.Budget / time.Second),
			StartLevel:  int(st.StartLevel),
		})
	})
	return st, nil
}

func (e *Engine) policyName() string {
	if e.cfg.Preset == "" {
		return "custom"
	}
	return e.cfg.Preset
}

func (e *Engine) canonicalSubject(name string) (string, bool) {
	qs := e.set.Subject(name)
	if len(qs) == 0 {
		return "", false
	}
	return qs[0].Subject, true
}

// present selects the next question and makes it current.
func (e *Engine) present(st *SessionState, now time.Time) error {
	sel, err := e.selector.SelectNext(adaptive.Request{
		Subject: st.Subject,
		Pool:    e.set.Subject(st.Subject),
		Level:   st.Adaptive.Level,
		Asked:   st.Asked,
		Block:   st.Adaptive.Block,
		Turn:    len(st.AskOrder),
	})
	if err != nil {
		return fmt.Errorf("select question: %w", err)
	}

	q := sel.Question
	st.Current = &q
	st.CurrentLevel = st.Adaptive.Level
	st.CurrentStage = sel.Stage
	st.ShownAt = now
	st.Asked[q.ID] = true
	st.AskOrder = append(st.AskOrder, q.ID)
	st.Adaptive = adaptive.NoteTopic(st.Adaptive, q.Topic)
	st.Phase = PhaseActive
	st.Elapsed = now.Sub(st.StartedAt)
	return nil
}

// Submit grades choice against the current question. An invalid choice
// returns ErrNoAnswer and leaves st untouched. A submission after the time
// budget is discarded: the session ends with EndTimeout and ErrTimeUp is
// returned.
func (e *Engine) Submit(st *SessionState, choice bank.Option) (*Feedback, error) {
	switch st.Phase {
	case PhaseEnded:
		return nil, ErrSessionOver
	case PhaseFeedback:
		return nil, ErrAlreadyAnswered
	}
	if !choice.Valid() {
		return nil, ErrNoAnswer
	}

	now := e.now()
	if e.expired(st, now) {
		e.end(st, EndTimeout, now)
		return nil, ErrTimeUp
	}

	q := *st.Current
	correct := q.IsCorrect(choice)
	if correct {
		st.Score++
	}

	var change *adaptive.LevelChange
	st.Adaptive, change = adaptive.RecordOutcome(e.cfg, st.Adaptive, correct)

	a := Attempt{
		Number:     len(st.Transcript) + 1,
		QuestionID: q.ID,
		Topic:      q.Topic,
		Level:      st.CurrentLevel,
		Stage:      st.CurrentStage,
		Chosen:     choice,
		Answer:     q.Correct,
		Correct:    correct,
		AskedAt:    st.ShownAt,
		AnsweredAt: now,
		LevelAfter: st.Adaptive.Level,
	}
	st.Transcript = append(st.Transcript, a)
	st.Elapsed = now.Sub(st.StartedAt)

	e.record(func(ctx context.Context) error {
		return e.journal.AppendAttemptEvent(ctx, store.AttemptEventData{
			SessionID:     st.ID,
			Number:        a.Number,
			QuestionID:    a.QuestionID,
			Topic:         a.Topic,
			Level:         int(a.Level),
			Stage:         string(a.Stage),
			Chosen:        string(a.Chosen),
			CorrectOption: string(a.Answer),
			Correct:       a.Correct,
			TimeMs:        int(a.ResponseTime().Milliseconds()),
			LevelAfter:    int(a.LevelAfter),
		})
	})

	fb := &Feedback{
		Attempt:     a,
		Question:    q,
		LevelChange: change,
		Done:        len(st.Transcript) >= st.TargetCount,
	}
	st.LastFeedback = fb
	st.Phase = PhaseFeedback
	if fb.Done {
		e.end(st, EndCompleted, now)
	}
	return fb, nil
}

// Advance leaves the feedback phase and presents the next question. If the
// budget ran out meanwhile the session ends and ErrTimeUp is returned.
func (e *Engine) Advance(st *SessionState) error {
	switch st.Phase {
	case PhaseEnded:
		return ErrSessionOver
	case PhaseActive:
		return nil
	}

	now := e.now()
	if e.expired(st, now) {
		e.end(st, EndTimeout, now)
		return ErrTimeUp
	}
	return e.present(st, now)
}

// Tick refreshes the elapsed time and ends the session on timeout. It
// reports whether this call ended the session.
func (e *Engine) Tick(st *SessionState) bool {
	if st.Phase == PhaseEnded {
		return false
	}
	now := e.now()
	st.Elapsed = now.Sub(st.StartedAt)
	if e.expired(st, now) {
		e.end(st, EndTimeout, now)
		return true
	}
	return false
}

// Quit ends the session early.
func (e *Engine) Quit(st *SessionState) {
	if st.Phase == PhaseEnded {
		return
	}
	e.end(st, EndQuit, e.now())
}

// Remaining returns the time left in the session budget.
func (e *Engine) Remaining(st *SessionState) time.Duration {
	left := st.Budget - e.now().Sub(st.StartedAt)
	if st.Phase == PhaseEnded || left < 0 {
		return 0
	}
	return left
}

func (e *Engine) expired(st *SessionState, now time.Time) bool {
	return now.Sub(st.StartedAt) >= st.Budget
}

func (e *Engine) end(st *SessionState, reason EndReason, now time.Time) {
	st.Phase = PhaseEnded
	st.EndReason = reason
	st.Current = nil
	st.Elapsed = min(now.Sub(st.StartedAt), st.Budget)

	e.record(func(ctx context.Context) error {
		return e.journal.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:    st.ID,
			Action:       store.ActionEnd,
			Subject:      st.Subject,
			Policy:       st.Policy,
			TargetCount:  st.TargetCount,
			BudgetSecs:   int(st.Budget / time.Second),
			StartLevel:   int(st.StartLevel),
			Answered:     len(st.Transcript),
			Correct:      st.Score,
			FinalLevel:   int(st.Adaptive.Level),
			EndReason:    string(reason),
			DurationSecs: int(st.Elapsed / time.Second),
		})
	})
}

// record writes to the journal when one is configured. Journal failures
// never interrupt a session.
func (e *Engine) record(fn func(ctx context.Context) error) {
	if e.journal == nil {
		return
	}
	if err := fn(context.Background()); err != nil {
		e.warn(fmt.Errorf("journal: %w", err))
	}
}
