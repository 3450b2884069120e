package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
)

// TestSessionScenarios runs the session feature scenarios.
func TestSessionScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: InitializeSessionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{"testdata/features"},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSessionScenario wires steps for session scenarios.
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	s := &sessionScenario{}
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		s.reset()
		return c, nil
	})

	ctx.Step(`^the built-in question bank$`, s.givenDefaultBank)
	ctx.Step(`^the "([^"]+)" policy$`, s.givenPolicy)
	ctx.Step(`^the policy starts at level (\d+)$`, s.givenStartLevel)
	ctx.Step(`^I start a (\d+) question "([^"]+)" test$`, s.whenStart)
	ctx.Step(`^I start a test without choosing a subject$`, s.whenStartEmpty)
	ctx.Step(`^I answer every question (correctly|wrongly)$`, s.whenAnswerAll)
	ctx.Step(`^I answer (\d+) questions? (correctly|wrongly)$`, s.whenAnswerN)
	ctx.Step(`^I answer correct, wrong, correct$`, s.whenAnswerMixed)
	ctx.Step(`^(\d+) minutes pass$`, s.whenMinutesPass)
	ctx.Step(`^the session ends as "([^"]+)"$`, s.thenEndReason)
	ctx.Step(`^the score is (\d+) out of (\d+)$`, s.thenScore)
	ctx.Step(`^the accuracy is (\d+)%$`, s.thenAccuracy)
	ctx.Step(`^the current level is (\d+)$`, s.thenLevel)
	ctx.Step(`^the transcript has (\d+) attempts$`, s.thenTranscript)
	ctx.Step(`^no question was asked twice$`, s.thenNoRepeats)
	ctx.Step(`^I am told to make a selection$`, s.thenMissingSelection)
}

type sessionScenario struct {
	set    *bank.Set
	cfg    adaptive.Config
	clock  *fakeClock
	engine *Engine
	state  *SessionState
	err    error
}

// reset clears scenario state.
func (s *sessionScenario) reset() {
	*s = sessionScenario{clock: newClock(), cfg: adaptive.DefaultConfig()}
}

func (s *sessionScenario) givenDefaultBank() error {
	set, err := bank.Default()
	if err != nil {
		return err
	}
	s.set = set
	return nil
}

func (s *sessionScenario) givenPolicy(name string) error {
	cfg, err := adaptive.Preset(name)
	if err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *sessionScenario) givenStartLevel(level int) error {
	s.cfg.StartLevel = level
	return nil
}

func (s *sessionScenario) start(setup Setup) error {
	e, err := NewEngine(s.set, s.cfg,
		WithClock(s.clock.Now),
		WithRandSource(rand.NewPCG(11, 13)))
	if err != nil {
		return err
	}
	s.engine = e
	s.state, s.err = e.Start(setup)
	return nil
}

func (s *sessionScenario) whenStart(count int, subject string) error {
	if err := s.start(Setup{Subject: subject, Count: count}); err != nil {
		return err
	}
	return s.err
}

func (s *sessionScenario) whenStartEmpty() error {
	return s.start(Setup{Count: 30})
}

func (s *sessionScenario) answer(correct bool) error {
	s.clock.Advance(5 * time.Second)
	if _, err := s.engine.Submit(s.state, answer(s.state, correct)); err != nil {
		return err
	}
	if s.state.Ended() {
		return nil
	}
	return s.engine.Advance(s.state)
}

func (s *sessionScenario) whenAnswerAll(how string) error {
	for !s.state.Ended() {
		if err := s.answer(how == "correctly"); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionScenario) whenAnswerN(n int, how string) error {
	for i := 0; i < n; i++ {
		if err := s.answer(how == "correctly"); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionScenario) whenAnswerMixed() error {
	for _, ok := range []bool{true, false, true} {
		if err := s.answer(ok); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionScenario) whenMinutesPass(n int) error {
	s.clock.Advance(time.Duration(n) * time.Minute)
	s.engine.Tick(s.state)
	return nil
}

func (s *sessionScenario) thenEndReason(reason string) error {
	if s.state.EndReason != EndReason(reason) {
		return fmt.Errorf("end reason = %q, want %q", s.state.EndReason, reason)
	}
	return nil
}

func (s *sessionScenario) thenScore(score, total int) error {
	if s.state.Score != score || s.state.Answered() != total {
		return fmt.Errorf("score = %d/%d, want %d/%d", s.state.Score, s.state.Answered(), score, total)
	}
	return nil
}

func (s *sessionScenario) thenAccuracy(pct int) error {
	if got := int(s.state.Accuracy() * 100); got != pct {
		return fmt.Errorf("accuracy = %d%%, want %d%%", got, pct)
	}
	return nil
}

func (s *sessionScenario) thenLevel(level int) error {
	if s.state.Level() != bank.Level(level) {
		return fmt.Errorf("level = %d, want %d", s.state.Level(), level)
	}
	return nil
}

func (s *sessionScenario) thenTranscript(n int) error {
	if len(s.state.Transcript) != n {
		return fmt.Errorf("transcript = %d attempts, want %d", len(s.state.Transcript), n)
	}
	return nil
}

func (s *sessionScenario) thenNoRepeats() error {
	if !askedUnique(s.state) {
		return errors.New("a question was asked twice")
	}
	return nil
}

func (s *sessionScenario) thenMissingSelection() error {
	if !errors.Is(s.err, ErrMissingSelection) {
		return fmt.Errorf("err = %v, want ErrMissingSelection", s.err)
	}
	if s.state != nil {
		return errors.New("a session was created")
	}
	return nil
}
