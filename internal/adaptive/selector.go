package adaptive

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/adaptiq/internal/bank"
)

// ErrEmptyPool is matched by EmptyPoolError.
var ErrEmptyPool = errors.New("no questions available")

// EmptyPoolError is returned only when the subject has no questions at all.
// Every other shortage is absorbed by the fallback chain.
type EmptyPoolError struct {
	Subject string
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("subject %q: %v", e.Subject, ErrEmptyPool)
}

func (e *EmptyPoolError) Unwrap() error { return ErrEmptyPool }

// Request is the input of one selection.
type Request struct {
	Subject string

	// Pool holds every question of the subject.
	Pool []bank.Question

	Level bank.Level
	Asked map[string]bool
	Block Block

	// Turn is the number of questions already presented this session.
	Turn int
}

// Selection is the picked question and the stage whose pool it came from.
type Selection struct {
	Question bank.Question
	Stage    Stage
}

// Selector picks questions according to a Config. It keeps no session
// state; the caller records what was asked. A Selector is not safe for
// concurrent use because of its random source.
type Selector struct {
	cfg Config
	rng *rand.Rand
}

// NewSelector creates a selector. A nil src seeds from the runtime.
func NewSelector(cfg Config, src rand.Source) *Selector {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Selector{cfg: cfg, rng: rand.New(src)}
}

// Config returns the policy the selector applies.
func (s *Selector) Config() Config { return s.cfg }

// SelectNext picks the next question. It never returns an asked question
// while an unasked one exists in the pool.
func (s *Selector) SelectNext(req Request) (Selection, error) {
	if len(req.Pool) == 0 {
		return Selection{}, &EmptyPoolError{Subject: req.Subject}
	}

	unasked := func(q bank.Question) bool { return !req.Asked[q.ID] }
	atLevel := func(q bank.Question) bool { return q.Level == req.Level }

	primary := filter(req.Pool, func(q bank.Question) bool {
		return unasked(q) && atLevel(q) && s.refine(req, q)
	})
	if len(primary) > 0 {
		return s.pick(primary, StagePrimary), nil
	}

	for _, stage := range s.cfg.Fallback {
		var pool []bank.Question
		switch stage {
		case StageLevel:
			pool = filter(req.Pool, func(q bank.Question) bool { return unasked(q) && atLevel(q) })
		case StageUnasked:
			pool = filter(req.Pool, unasked)
		case StageAny:
			pool = req.Pool
		}
		if len(pool) > 0 {
			return s.pick(pool, stage), nil
		}
	}
	// Unreachable with a validated config: the chain ends with "any".
	return s.pick(req.Pool, StageAny), nil
}

func (s *Selector) pick(pool []bank.Question, stage Stage) Selection {
	return Selection{Question: pool[s.rng.IntN(len(pool))], Stage: stage}
}

// refine applies the optional primary-pool restrictions.
func (s *Selector) refine(req Request, q bank.Question) bool {
	if tr := s.cfg.TopicRotation; tr != nil && int(req.Level) == tr.Level {
		want := tr.Topics[req.Turn%len(tr.Topics)]
		if !strings.EqualFold(q.Topic, want) {
			return false
		}
	}
	if s.cfg.RotateTopicsInBlock && q.Topic != "" {
		for _, used := range req.Block.Topics {
			if strings.EqualFold(used, q.Topic) {
				return false
			}
		}
	}
	if w := s.cfg.Warmup; w != nil && req.Turn < w.Questions {
		if !w.Plain(q) {
			return false
		}
	}
	return true
}

var numberRe = regexp.MustCompile(`\d+`)

// Plain reports whether q is short, free of excluded terms and uses no
// number above MaxNumber. Zero limits are not enforced.
func (w Warmup) Plain(q bank.Question) bool {
	if w.MaxTextLength > 0 && utf8.RuneCountInString(q.Text) > w.MaxTextLength {
		return false
	}
	text := strings.ToLower(q.Text)
	for _, term := range w.ExcludeTerms {
		if term != "" && strings.Contains(text, strings.ToLower(term)) {
			return false
		}
	}
	if w.MaxNumber > 0 {
		for _, m := range numberRe.FindAllString(q.Text, -1) {
			n, err := strconv.Atoi(m)
			if err != nil || n > w.MaxNumber {
				return false
			}
		}
	}
	return true
}

func filter(qs []bank.Question, keep func(bank.Question) bool) []bank.Question {
	var out []bank.Question
	for _, q := range qs {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
