package plain

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func testEngine(t *testing.T, clock *fakeClock) *session.Engine {
	t.Helper()
	var qs []bank.Question
	for _, subject := range []string{"GK", "Math"} {
		for lvl := 1; lvl <= 5; lvl++ {
			for i := 0; i < 3; i++ {
				qs = append(qs, bank.Question{
					ID:          fmt.Sprintf("%s-%d-%d", subject, lvl, i),
					Subject:     subject,
					Level:       bank.Level(lvl),
					Text:        fmt.Sprintf("%s question %d/%d", subject, lvl, i),
					Options:     [4]string{"one", "two", "three", "four"},
					Correct:     bank.OptionC,
					Explanation: "Three is right.",
				})
			}
		}
	}
	set, err := bank.NewSet(qs)
	require.NoError(t, err)

	e, err := session.NewEngine(set, adaptive.DefaultConfig(),
		session.WithClock(clock.Now),
		session.WithRandSource(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	return e
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestChooseSetup(t *testing.T) {
	var out bytes.Buffer
	r := New(testEngine(t, newClock()), strings.NewReader("7\n2\nabc\n50\n"), &out)

	setup, err := r.ChooseSetup(session.Setup{})
	require.NoError(t, err)
	assert.Equal(t, session.Setup{Subject: "Math", Count: 50}, setup)
	assert.Contains(t, out.String(), "1) GK")
	assert.Contains(t, out.String(), "(30/50/100)")
}

func TestChooseSetup_ByNameAndPreset(t *testing.T) {
	r := New(testEngine(t, newClock()), strings.NewReader("gk\n"), &bytes.Buffer{})
	setup, err := r.ChooseSetup(session.Setup{Count: 7})
	require.NoError(t, err)
	assert.Equal(t, "gk", setup.Subject)
	assert.Equal(t, 7, setup.Count)
}

func TestChooseSetup_InputClosed(t *testing.T) {
	r := New(testEngine(t, newClock()), strings.NewReader(""), &bytes.Buffer{})
	_, err := r.ChooseSetup(session.Setup{})
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestRun_Completes(t *testing.T) {
	e := testEngine(t, newClock())
	st, err := e.Start(session.Setup{Subject: "Math", Count: 3})
	require.NoError(t, err)

	var out bytes.Buffer
	sum, err := New(e, strings.NewReader("x\nc\n3\na\n"), &out).Run(st)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Score)
	assert.Equal(t, session.EndCompleted, sum.EndReason)

	text := out.String()
	assert.Contains(t, text, "Q 1/3  [Easy]")
	assert.Contains(t, text, session.ErrNoAnswer.Error())
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, "Wrong. The answer is C) three")
	assert.Contains(t, text, "Three is right.")
	assert.Contains(t, text, "2 / 3")
	assert.NotContains(t, text, "\x1b[", "colors are stripped for non-terminal writers")
}

func TestRun_QuitAndEOF(t *testing.T) {
	for _, input := range []string{"c\nq\n", "c\n"} {
		e := testEngine(t, newClock())
		st, err := e.Start(session.Setup{Subject: "GK", Count: 5})
		require.NoError(t, err)

		sum, err := New(e, strings.NewReader(input), &bytes.Buffer{}).Run(st)
		require.NoError(t, err)
		assert.Equal(t, session.EndQuit, sum.EndReason, "input %q", input)
		assert.Equal(t, 1, sum.Answered)
	}
}

func TestRun_Timeout(t *testing.T) {
	clock := newClock()
	e := testEngine(t, clock)
	st, err := e.Start(session.Setup{Subject: "GK", Count: 2})
	require.NoError(t, err)

	clock.t = clock.t.Add(5 * time.Minute)
	var out bytes.Buffer
	sum, err := New(e, strings.NewReader("c\n"), &out).Run(st)
	require.NoError(t, err)
	assert.Equal(t, session.EndTimeout, sum.EndReason)
	assert.Equal(t, 0, sum.Answered)
	assert.Contains(t, out.String(), "Time is up.")
}
